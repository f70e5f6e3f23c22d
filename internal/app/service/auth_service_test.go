package service

import (
	"testing"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/edudesk/edudesk-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(
		userRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestAuthServiceRegister(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			userName: "Test Student",
			email:    "test@example.com",
			password: "Password123",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			userName: "Another Student",
			email:    "test@example.com",
			password: "Password456",
			wantErr:  ErrEmailAlreadyExists,
		},
		{
			name:     "Duplicate email different case",
			userName: "Another Student",
			email:    "TEST@example.com",
			password: "Password456",
			wantErr:  ErrEmailAlreadyExists,
		},
		{
			name:     "Name too short",
			userName: "A",
			email:    "short@example.com",
			password: "Password123",
			wantErr:  ErrNameTooShort,
		},
		{
			name:     "Weak password",
			userName: "Test Student",
			email:    "weak@example.com",
			password: "password",
			wantErr:  util.ErrPasswordNoUpper,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEmpty(t, tokens.AccessToken)

				// The raw password is never stored
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.True(t, util.VerifyPassword(user.PasswordHash, tt.password))
			}
		})
	}
}

func TestAuthServiceLogin(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("Test Student", "test@example.com", "Password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid login",
			email:    "test@example.com",
			password: "Password123",
			wantErr:  nil,
		},
		{
			name:     "Case insensitive email",
			email:    "TEST@EXAMPLE.COM",
			password: "Password123",
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    "test@example.com",
			password: "WrongPassword1",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: "Password123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
			}
		})
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("Test Student", "test@example.com", "Password123")
	require.NoError(t, err)

	t.Run("Wrong current password", func(t *testing.T) {
		err := authService.ChangePassword(user.ID, "NotTheOldOne1", "NewPassword1")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("Weak new password", func(t *testing.T) {
		err := authService.ChangePassword(user.ID, "Password123", "weak")
		assert.True(t, util.IsPolicyViolation(err))
	})

	t.Run("Successful change", func(t *testing.T) {
		require.NoError(t, authService.ChangePassword(user.ID, "Password123", "NewPassword1"))

		_, _, err := authService.Login("test@example.com", "NewPassword1")
		assert.NoError(t, err)

		_, _, err = authService.Login("test@example.com", "Password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("Test Student", "test@example.com", "Password123")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "Renamed Student")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Student", updated.Name)

	_, err = authService.UpdateProfile(user.ID, "x")
	assert.ErrorIs(t, err, ErrNameTooShort)

	_, err = authService.UpdateProfile(9999, "Valid Name")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
