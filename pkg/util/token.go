package util

import (
	"crypto/rand"
	"encoding/hex"
)

// ResetTokenLength is the byte length of a password reset token.
// 32 bytes gives 256 bits of entropy; hex encoding keeps the token safe
// to embed in a link query parameter without escaping.
const ResetTokenLength = 32

// GenerateResetToken creates a cryptographically secure random token
func GenerateResetToken() (string, error) {
	bytes := make([]byte, ResetTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
