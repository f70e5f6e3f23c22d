package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/edudesk/edudesk-backend/config"
	"github.com/edudesk/edudesk-backend/internal/app/controller"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/app/service"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/edudesk/edudesk-backend/internal/router"
	"github.com/edudesk/edudesk-backend/internal/scheduler"
	"github.com/edudesk/edudesk-backend/internal/storage"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"github.com/edudesk/edudesk-backend/pkg/redis"
	"github.com/edudesk/edudesk-backend/pkg/util"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting EduDesk Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; token revocation is skipped without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize storage
	localStorage, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("Failed to initialize upload directory", err)
	}
	var s3Storage *storage.S3Storage
	if cfg.S3.Bucket != "" {
		s3Storage = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
		logger.Info("S3 storage configured", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
			"region": cfg.S3.Region,
		})
	}

	mailer := util.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.FromEmail,
		cfg.SMTP.Password,
		cfg.Server.FrontendURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())
	calendarRepo := repository.NewCalendarRepository(db.GetDB())
	moodRepo := repository.NewMoodRepository(db.GetDB())
	journalRepo := repository.NewJournalRepository(db.GetDB())
	goalRepo := repository.NewGoalRepository(db.GetDB())
	studyRepo := repository.NewStudyRepository(db.GetDB())
	blogRepo := repository.NewBlogRepository(db.GetDB())
	alarmRepo := repository.NewAlarmRepository(db.GetDB())
	docRepo := repository.NewDocumentRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	passwordResetService := service.NewPasswordResetService(resetRepo, userRepo, mailer)
	calendarService := service.NewCalendarService(calendarRepo)
	moodService := service.NewMoodService(moodRepo)
	journalService := service.NewJournalService(journalRepo)
	goalService := service.NewGoalService(goalRepo)
	studyService := service.NewStudyService(studyRepo)
	blogService := service.NewBlogService(blogRepo)
	alarmService := service.NewAlarmService(alarmRepo)
	documentService := service.NewDocumentService(docRepo, localStorage, s3Storage, cfg.Upload.MaxFileSize)
	analyticsService := service.NewAnalyticsService(
		goalService,
		studyService,
		journalRepo,
		moodRepo,
		studyRepo,
		calendarRepo,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService)
	calendarController := controller.NewCalendarController(calendarService)
	moodController := controller.NewMoodController(moodService)
	journalController := controller.NewJournalController(journalService)
	goalController := controller.NewGoalController(goalService)
	studyController := controller.NewStudyController(studyService)
	blogController := controller.NewBlogController(blogService)
	alarmController := controller.NewAlarmController(alarmService)
	documentController := controller.NewDocumentController(documentService)
	analyticsController := controller.NewAnalyticsController(analyticsService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the reset token cleanup scheduler
	cleanupScheduler := scheduler.NewCleanupScheduler(resetRepo)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Fatal("Failed to start cleanup scheduler", err)
	}
	defer cleanupScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		calendarController,
		moodController,
		journalController,
		goalController,
		studyController,
		blogController,
		alarmController,
		documentController,
		analyticsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
