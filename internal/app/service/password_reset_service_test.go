package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/edudesk/edudesk-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// captureMailer records sent reset tokens for inspection
type captureMailer struct {
	mu     sync.Mutex
	sent   []string
	retErr error
}

func (m *captureMailer) SendPasswordResetEmail(toEmail, resetToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, resetToken)
	return m.retErr
}

func setupPasswordResetTest(t *testing.T) (PasswordResetService, *gorm.DB, *captureMailer) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	resetRepo := repository.NewPasswordResetRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	mailer := &captureMailer{}

	return NewPasswordResetService(resetRepo, userRepo, mailer), testDB, mailer
}

func createTestUser(t *testing.T, testDB *gorm.DB, email, password string) *model.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func latestReset(t *testing.T, testDB *gorm.DB) *model.PasswordReset {
	t.Helper()
	var reset model.PasswordReset
	require.NoError(t, testDB.Order("id DESC").First(&reset).Error)
	return &reset
}

func TestRequestReset(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("student@example.com"))

	reset := latestReset(t, testDB)
	assert.Equal(t, "student@example.com", reset.Email)
	assert.False(t, reset.Used)
	assert.Len(t, reset.Token, util.ResetTokenLength*2)

	// Expiry is exactly one hour from issuance
	assert.WithinDuration(t, reset.CreatedAt.Add(ResetTokenExpiry), reset.ExpiresAt, time.Second)
}

func TestRequestResetUnknownEmail(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)

	// Unknown email succeeds without creating a token
	require.NoError(t, svc.RequestReset("nobody@example.com"))

	var count int64
	require.NoError(t, testDB.Model(&model.PasswordReset{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRequestResetMalformedEmail(t *testing.T) {
	svc, _, _ := setupPasswordResetTest(t)

	assert.ErrorIs(t, svc.RequestReset("not-an-email"), ErrInvalidEmail)
	assert.ErrorIs(t, svc.RequestReset(""), ErrInvalidEmail)
}

func TestRequestResetNormalizesEmail(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("  Student@Example.COM  "))

	reset := latestReset(t, testDB)
	assert.Equal(t, "student@example.com", reset.Email)
}

func TestRequestResetKeepsOlderTokensValid(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("student@example.com"))
	first := latestReset(t, testDB)

	require.NoError(t, svc.RequestReset("student@example.com"))
	second := latestReset(t, testDB)
	require.NotEqual(t, first.ID, second.ID)

	// The first token still works
	require.NoError(t, svc.ResetPassword(first.Token, "NewPassword1"))
}

func TestRequestResetMailerFailureIsSilent(t *testing.T) {
	svc, testDB, mailer := setupPasswordResetTest(t)
	createTestUser(t, testDB, "student@example.com", "OldPassword1")
	mailer.retErr = errors.New("smtp down")

	// Delivery failure never surfaces to the caller
	require.NoError(t, svc.RequestReset("student@example.com"))
}

func TestResetPassword(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	user := createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("student@example.com"))
	reset := latestReset(t, testDB)

	require.NoError(t, svc.ResetPassword(reset.Token, "NewPassword1"))

	// Credential updated
	var updated model.User
	require.NoError(t, testDB.First(&updated, user.ID).Error)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, "NewPassword1"))
	assert.False(t, util.VerifyPassword(updated.PasswordHash, "OldPassword1"))

	// Token marked used
	consumed := latestReset(t, testDB)
	assert.True(t, consumed.Used)
}

func TestResetPasswordSingleUse(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	user := createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("student@example.com"))
	reset := latestReset(t, testDB)

	require.NoError(t, svc.ResetPassword(reset.Token, "NewPassword1"))

	// Second consumption fails and leaves the first credential in place
	err := svc.ResetPassword(reset.Token, "AnotherPassword1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	var updated model.User
	require.NoError(t, testDB.First(&updated, user.ID).Error)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, "NewPassword1"))
}

func TestResetPasswordUnknownToken(t *testing.T) {
	svc, _, _ := setupPasswordResetTest(t)

	err := svc.ResetPassword("deadbeef", "NewPassword1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	user := createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("student@example.com"))
	reset := latestReset(t, testDB)

	require.NoError(t, testDB.Model(reset).Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err := svc.ResetPassword(reset.Token, "NewPassword1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// Credential untouched
	var updated model.User
	require.NoError(t, testDB.First(&updated, user.ID).Error)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, "OldPassword1"))
}

func TestResetPasswordPolicyCheckedFirst(t *testing.T) {
	svc, _, _ := setupPasswordResetTest(t)

	// A weak password reports the rule even with a bogus token, so the
	// message never leaks whether the token was real
	err := svc.ResetPassword("not-a-real-token", "short")
	assert.ErrorIs(t, err, util.ErrPasswordTooShort)
	assert.True(t, util.IsPolicyViolation(err))
}

func TestResetPasswordPolicyDoesNotBurnToken(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("student@example.com"))
	reset := latestReset(t, testDB)

	err := svc.ResetPassword(reset.Token, "weakpass")
	assert.True(t, util.IsPolicyViolation(err))

	// The token survives the failed attempt
	require.NoError(t, svc.ResetPassword(reset.Token, "NewPassword1"))
}

func TestResetPasswordOrphanedAccount(t *testing.T) {
	svc, testDB, _ := setupPasswordResetTest(t)
	user := createTestUser(t, testDB, "student@example.com", "OldPassword1")

	require.NoError(t, svc.RequestReset("student@example.com"))
	reset := latestReset(t, testDB)

	// Hard-delete the account after the token was issued
	require.NoError(t, testDB.Unscoped().Delete(user).Error)

	err := svc.ResetPassword(reset.Token, "NewPassword1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
