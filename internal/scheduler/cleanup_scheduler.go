package scheduler

import (
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CleanupScheduler purges expired and consumed password reset tokens
type CleanupScheduler struct {
	cron      *cron.Cron
	resetRepo repository.PasswordResetRepository
}

func NewCleanupScheduler(resetRepo repository.PasswordResetRepository) *CleanupScheduler {
	return &CleanupScheduler{
		cron:      cron.New(),
		resetRepo: resetRepo,
	}
}

// Start schedules the daily cleanup run
func (s *CleanupScheduler) Start() error {
	// Daily at 03:00, when traffic is lowest
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled password reset cleanup", nil)

		deleted, err := s.resetRepo.DeleteExpired()
		if err != nil {
			logger.Error("Failed to clean up password reset tokens", err)
			return
		}

		logger.Info("Password reset cleanup finished", map[string]interface{}{
			"deleted": deleted,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for reset token cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cleanup scheduler started successfully (daily at 3:00 AM)", nil)

	return nil
}

// Stop halts the scheduler
func (s *CleanupScheduler) Stop() {
	logger.Info("Stopping cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cleanup scheduler stopped", nil)
}
