package repository

import (
	"testing"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupResetRepoTest(t *testing.T) (PasswordResetRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewPasswordResetRepository(testDB), testDB
}

func seedUser(t *testing.T, testDB *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Email:        "student@example.com",
		PasswordHash: "old-hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func seedReset(t *testing.T, testDB *gorm.DB, token string, expiresAt time.Time, used bool) *model.PasswordReset {
	t.Helper()
	reset := &model.PasswordReset{
		Email:     "student@example.com",
		Token:     token,
		ExpiresAt: expiresAt,
		Used:      used,
	}
	require.NoError(t, testDB.Create(reset).Error)
	return reset
}

func TestPasswordResetCreateAndFind(t *testing.T) {
	repo, testDB := setupResetRepoTest(t)

	seedReset(t, testDB, "token-a", time.Now().Add(time.Hour), false)

	found, err := repo.FindByToken("token-a")
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", found.Email)
	assert.False(t, found.Used)

	_, err = repo.FindByToken("token-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPasswordResetTokenUnique(t *testing.T) {
	repo, testDB := setupResetRepoTest(t)

	seedReset(t, testDB, "token-a", time.Now().Add(time.Hour), false)

	err := repo.Create(&model.PasswordReset{
		Email:     "other@example.com",
		Token:     "token-a",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestConsume(t *testing.T) {
	repo, testDB := setupResetRepoTest(t)
	user := seedUser(t, testDB)
	reset := seedReset(t, testDB, "token-a", time.Now().Add(time.Hour), false)

	require.NoError(t, repo.Consume(reset.ID, user.ID, "new-hash"))

	// Both sides of the transaction applied
	var updatedReset model.PasswordReset
	require.NoError(t, testDB.First(&updatedReset, reset.ID).Error)
	assert.True(t, updatedReset.Used)

	var updatedUser model.User
	require.NoError(t, testDB.First(&updatedUser, user.ID).Error)
	assert.Equal(t, "new-hash", updatedUser.PasswordHash)
}

func TestConsumeIsSingleUse(t *testing.T) {
	repo, testDB := setupResetRepoTest(t)
	user := seedUser(t, testDB)
	reset := seedReset(t, testDB, "token-a", time.Now().Add(time.Hour), false)

	require.NoError(t, repo.Consume(reset.ID, user.ID, "first-hash"))

	// The conditional update matches zero rows the second time
	err := repo.Consume(reset.ID, user.ID, "second-hash")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The losing call must not have touched the credential
	var updatedUser model.User
	require.NoError(t, testDB.First(&updatedUser, user.ID).Error)
	assert.Equal(t, "first-hash", updatedUser.PasswordHash)
}

func TestConsumeAlreadyUsedRow(t *testing.T) {
	repo, testDB := setupResetRepoTest(t)
	user := seedUser(t, testDB)
	reset := seedReset(t, testDB, "token-a", time.Now().Add(time.Hour), true)

	err := repo.Consume(reset.ID, user.ID, "new-hash")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteExpired(t *testing.T) {
	repo, testDB := setupResetRepoTest(t)

	seedReset(t, testDB, "expired", time.Now().Add(-time.Hour), false)
	seedReset(t, testDB, "consumed", time.Now().Add(time.Hour), true)
	seedReset(t, testDB, "live", time.Now().Add(time.Hour), false)

	deleted, err := repo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// Only the live token remains
	var remaining []model.PasswordReset
	require.NoError(t, testDB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].Token)
}
