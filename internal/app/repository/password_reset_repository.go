package repository

import (
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(reset *model.PasswordReset) error
	FindByToken(token string) (*model.PasswordReset, error)
	Consume(resetID, userID uint, passwordHash string) error
	DeleteExpired() (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(reset *model.PasswordReset) error {
	logger.Debug("Creating password reset in database", map[string]interface{}{
		"email": reset.Email,
	})

	if err := r.db.Create(reset).Error; err != nil {
		logger.Error("Failed to create password reset in database", err, map[string]interface{}{
			"email": reset.Email,
		})
		return err
	}

	logger.Debug("Password reset created in database", map[string]interface{}{
		"id":    reset.ID,
		"email": reset.Email,
	})
	return nil
}

func (r *passwordResetRepository) FindByToken(token string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := r.db.Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// Consume marks the reset row as used and applies the new password hash in a
// single transaction. The used flag update is conditional on used = false, so
// of two concurrent submissions of the same token exactly one wins; the loser
// gets gorm.ErrRecordNotFound and the transaction rolls back.
func (r *passwordResetRepository) Consume(resetID, userID uint, passwordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PasswordReset{}).
			Where("id = ? AND used = ?", resetID, false).
			Update("used", true)
		if result.Error != nil {
			logger.Error("Failed to mark password reset as used", result.Error, map[string]interface{}{
				"reset_id": resetID,
			})
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("password_hash", passwordHash).Error; err != nil {
			logger.Error("Failed to update password hash", err, map[string]interface{}{
				"user_id": userID,
			})
			return err
		}
		return nil
	})
}

// DeleteExpired removes expired and already-consumed reset rows.
// Housekeeping only; validity checks never depend on this running.
func (r *passwordResetRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ? OR used = ?", time.Now(), true).
		Delete(&model.PasswordReset{})
	if result.Error != nil {
		logger.Error("Failed to delete expired password resets from database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Expired password resets deleted from database", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
