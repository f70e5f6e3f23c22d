package router

import (
	"github.com/edudesk/edudesk-backend/config"
	"github.com/edudesk/edudesk-backend/internal/app/controller"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	calendarController  *controller.CalendarController
	moodController      *controller.MoodController
	journalController   *controller.JournalController
	goalController      *controller.GoalController
	studyController     *controller.StudyController
	blogController      *controller.BlogController
	alarmController     *controller.AlarmController
	documentController  *controller.DocumentController
	analyticsController *controller.AnalyticsController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	calendarController *controller.CalendarController,
	moodController *controller.MoodController,
	journalController *controller.JournalController,
	goalController *controller.GoalController,
	studyController *controller.StudyController,
	blogController *controller.BlogController,
	alarmController *controller.AlarmController,
	documentController *controller.DocumentController,
	analyticsController *controller.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		calendarController:  calendarController,
		moodController:      moodController,
		journalController:   journalController,
		goalController:      goalController,
		studyController:     studyController,
		blogController:      blogController,
		alarmController:     alarmController,
		documentController:  documentController,
		analyticsController: analyticsController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "EduDesk API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
			auth.PUT("/change-password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		calendar := v1.Group("/calendar")
		calendar.Use(r.authMiddleware.Authenticate())
		{
			calendar.GET("/events", r.calendarController.ListEvents)
			calendar.GET("/events/search", r.calendarController.SearchEvents)
			calendar.GET("/events/:id", r.calendarController.GetEvent)
			calendar.POST("/events", r.calendarController.CreateEvent)
			calendar.PUT("/events/:id", r.calendarController.UpdateEvent)
			calendar.DELETE("/events/:id", r.calendarController.DeleteEvent)
		}

		mood := v1.Group("/mood")
		mood.Use(r.authMiddleware.Authenticate())
		{
			mood.GET("", r.moodController.ListEntries)
			mood.GET("/analytics", r.moodController.Analytics)
			mood.GET("/today", r.moodController.Today)
			mood.GET("/streak", r.moodController.Streak)
			mood.GET("/:id", r.moodController.GetEntry)
			mood.POST("", r.moodController.CreateEntry)
			mood.PUT("/:id", r.moodController.UpdateEntry)
			mood.DELETE("/:id", r.moodController.DeleteEntry)
		}

		journal := v1.Group("/journal")
		journal.Use(r.authMiddleware.Authenticate())
		{
			journal.GET("", r.journalController.ListEntries)
			journal.GET("/search", r.journalController.SearchEntries)
			journal.GET("/stats", r.journalController.Stats)
			journal.GET("/:id", r.journalController.GetEntry)
			journal.POST("", r.journalController.CreateEntry)
			journal.PUT("/:id", r.journalController.UpdateEntry)
			journal.DELETE("/:id", r.journalController.DeleteEntry)
		}

		goals := v1.Group("/goals")
		goals.Use(r.authMiddleware.Authenticate())
		{
			goals.GET("", r.goalController.ListGoals)
			goals.GET("/stats", r.goalController.Stats)
			goals.GET("/categories", r.goalController.Categories)
			goals.GET("/:id", r.goalController.GetGoal)
			goals.POST("", r.goalController.CreateGoal)
			goals.PUT("/:id", r.goalController.UpdateGoal)
			goals.PUT("/:id/progress", r.goalController.UpdateProgress)
			goals.DELETE("/:id", r.goalController.DeleteGoal)
		}

		study := v1.Group("/study")
		study.Use(r.authMiddleware.Authenticate())
		{
			study.GET("", r.studyController.ListSessions)
			study.GET("/stats", r.studyController.Stats)
			study.GET("/:id", r.studyController.GetSession)
			study.POST("", r.studyController.CreateSession)
			study.PUT("/:id", r.studyController.UpdateSession)
			study.DELETE("/:id", r.studyController.DeleteSession)
		}

		blog := v1.Group("/blog")
		{
			blog.GET("/public", r.blogController.ListPublicPosts)

			blog.GET("", r.authMiddleware.Authenticate(), r.blogController.ListPosts)
			blog.GET("/tags", r.authMiddleware.Authenticate(), r.blogController.Tags)
			blog.GET("/stats", r.authMiddleware.Authenticate(), r.blogController.Stats)
			blog.GET("/:id", r.authMiddleware.Authenticate(), r.blogController.GetPost)
			blog.POST("", r.authMiddleware.Authenticate(), r.blogController.CreatePost)
			blog.PUT("/:id", r.authMiddleware.Authenticate(), r.blogController.UpdatePost)
			blog.PUT("/:id/publish", r.authMiddleware.Authenticate(), r.blogController.TogglePublish)
			blog.DELETE("/:id", r.authMiddleware.Authenticate(), r.blogController.DeletePost)
		}

		alarms := v1.Group("/alarms")
		alarms.Use(r.authMiddleware.Authenticate())
		{
			alarms.GET("", r.alarmController.ListAlarms)
			alarms.GET("/upcoming", r.alarmController.Upcoming)
			alarms.GET("/stats", r.alarmController.Stats)
			alarms.GET("/:id", r.alarmController.GetAlarm)
			alarms.POST("", r.alarmController.CreateAlarm)
			alarms.PUT("/:id", r.alarmController.UpdateAlarm)
			alarms.PUT("/:id/toggle", r.alarmController.ToggleAlarm)
			alarms.DELETE("/:id", r.alarmController.DeleteAlarm)
		}

		documents := v1.Group("/documents")
		documents.Use(r.authMiddleware.Authenticate())
		{
			documents.GET("", r.documentController.ListDocuments)
			documents.GET("/categories", r.documentController.Categories)
			documents.GET("/stats", r.documentController.Stats)
			documents.GET("/:id", r.documentController.GetDocument)
			documents.GET("/:id/download", r.documentController.Download)
			documents.POST("/upload", r.documentController.Upload)
			documents.POST("/presign", r.documentController.Presign)
			documents.PUT("/:id", r.documentController.UpdateDocument)
			documents.DELETE("/:id", r.documentController.DeleteDocument)
		}

		analytics := v1.Group("/analytics")
		analytics.Use(r.authMiddleware.Authenticate())
		{
			analytics.GET("/dashboard", r.analyticsController.Dashboard)
			analytics.GET("/productivity", r.analyticsController.Productivity)
			analytics.GET("/export", r.analyticsController.Export)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
