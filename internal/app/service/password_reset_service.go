package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"github.com/edudesk/edudesk-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	// ErrInvalidResetToken covers every way a token can be unusable:
	// unknown, expired, already consumed, or issued for an account that no
	// longer exists. Callers must not distinguish these cases.
	ErrInvalidResetToken = errors.New("invalid or expired token")
	ErrInvalidEmail      = errors.New("invalid email address")
)

const (
	// ResetTokenExpiry is the duration for which a reset token is valid
	ResetTokenExpiry = 1 * time.Hour

	// maxTokenAttempts bounds regeneration on a token collision. With 256
	// random bits a collision is effectively impossible, but the unique
	// index makes the insert fail safe rather than silent.
	maxTokenAttempts = 3
)

// Mailer delivers transactional email. Satisfied by util.SMTPMailer.
type Mailer interface {
	SendPasswordResetEmail(toEmail, resetToken string) error
}

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(token, newPassword string) error
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	userRepo  repository.UserRepository
	mailer    Mailer
}

func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
	mailer Mailer,
) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
		mailer:    mailer,
	}
}

// RequestReset issues a reset token for the account and mails the reset link.
// It returns nil for unknown emails as well, so callers cannot tell
// registered and unregistered addresses apart.
func (s *passwordResetService) RequestReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for non-existent email", map[string]interface{}{
				"email": email,
			})
			// Silent success prevents user enumeration
			return nil
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	reset, err := s.createResetRecord(user.Email)
	if err != nil {
		return err
	}

	// Mail delivery is fire-and-forget; a failure is logged, never surfaced
	go func(toEmail, token string) {
		if err := s.mailer.SendPasswordResetEmail(toEmail, token); err != nil {
			logger.Error("Failed to send password reset email", err, map[string]interface{}{
				"email": toEmail,
			})
		}
	}(user.Email, reset.Token)

	logger.Info("Password reset token issued", map[string]interface{}{
		"email":      email,
		"user_id":    user.ID,
		"expires_at": reset.ExpiresAt,
	})

	return nil
}

// createResetRecord generates a token and persists the reset row. Expiry is
// derived from a single clock read so the window is exactly ResetTokenExpiry.
// Older tokens for the same account are left untouched and stay valid.
func (s *passwordResetService) createResetRecord(email string) (*model.PasswordReset, error) {
	var lastErr error
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := util.GenerateResetToken()
		if err != nil {
			logger.Error("Failed to generate reset token", err, map[string]interface{}{
				"email": email,
			})
			return nil, err
		}

		now := time.Now()
		reset := &model.PasswordReset{
			Email:     email,
			Token:     token,
			ExpiresAt: now.Add(ResetTokenExpiry),
			Used:      false,
			CreatedAt: now,
		}

		err = s.resetRepo.Create(reset)
		if err == nil {
			return reset, nil
		}
		lastErr = err

		if !isUniqueViolation(err) {
			return nil, err
		}
		logger.Warn("Reset token collision, regenerating", map[string]interface{}{
			"email":   email,
			"attempt": attempt + 1,
		})
	}
	return nil, lastErr
}

// ResetPassword validates the new password, then atomically consumes the
// token and applies the new credential.
func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	logger.Info("Processing password reset with token")

	// Policy check comes before any token work so a weak password gets the
	// precise rule message rather than burning a valid token
	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Invalid reset token provided", nil)
			return ErrInvalidResetToken
		}
		logger.Error("Failed to find reset record", err, nil)
		return err
	}

	if time.Now().After(reset.ExpiresAt) {
		logger.Warn("Reset token has expired", map[string]interface{}{
			"email":      reset.Email,
			"expires_at": reset.ExpiresAt,
		})
		return ErrInvalidResetToken
	}

	if reset.Used {
		logger.Warn("Reset token has already been used", map[string]interface{}{
			"email": reset.Email,
		})
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByEmail(reset.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Account deleted after the token was issued
			logger.Warn("Reset token refers to a missing account", map[string]interface{}{
				"email": reset.Email,
			})
			return ErrInvalidResetToken
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": reset.Email,
		})
		return err
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	// Consume runs the used-flag CAS and the credential update in one
	// transaction; the loser of a double submit lands here
	if err := s.resetRepo.Consume(reset.ID, user.ID, hashedPassword); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Reset token consumed concurrently", map[string]interface{}{
				"email": reset.Email,
			})
			return ErrInvalidResetToken
		}
		logger.Error("Failed to consume reset token", err, map[string]interface{}{
			"reset_id": reset.ID,
		})
		return err
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
