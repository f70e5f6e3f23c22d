package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "Password123",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  false, // bcrypt can hash empty strings
		},
		{
			name:     "Long password",
			password: "this-Is-A-very-long-password-with-special-chars-123!@#$%^&*()",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, hash)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, hash)
				assert.NotEqual(t, tt.password, hash)

				// Verify that the hash starts with bcrypt prefix
				assert.Contains(t, hash, "$2a$")
			}
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "MySecurePassword123"
	hash, err := HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		hashedPassword string
		password       string
		want           bool
	}{
		{
			name:           "Correct password",
			hashedPassword: hash,
			password:       password,
			want:           true,
		},
		{
			name:           "Wrong password",
			hashedPassword: hash,
			password:       "WrongPassword123",
			want:           false,
		},
		{
			name:           "Empty password",
			hashedPassword: hash,
			password:       "",
			want:           false,
		},
		{
			name:           "Invalid hash",
			hashedPassword: "not-a-hash",
			password:       password,
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hashedPassword, tt.password))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "Valid password",
			password: "Password123",
			wantErr:  nil,
		},
		{
			name:     "Exactly eight characters",
			password: "Passwd12",
			wantErr:  nil,
		},
		{
			name:     "Too short",
			password: "Pw1",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "Missing uppercase",
			password: "password123",
			wantErr:  ErrPasswordNoUpper,
		},
		{
			name:     "Missing lowercase",
			password: "PASSWORD123",
			wantErr:  ErrPasswordNoLower,
		},
		{
			name:     "Missing digit",
			password: "PasswordOnly",
			wantErr:  ErrPasswordNoDigit,
		},
		{
			name:     "Length checked before composition",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsPolicyViolation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPolicyViolation(t *testing.T) {
	assert.True(t, IsPolicyViolation(ErrPasswordTooShort))
	assert.True(t, IsPolicyViolation(ErrPasswordNoDigit))
	assert.False(t, IsPolicyViolation(assert.AnError))
	assert.False(t, IsPolicyViolation(nil))
}
