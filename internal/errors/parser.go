package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo holds a parsed error code and user-facing message
type ErrorInfo struct {
	Code    string // error code (see codes.go)
	Message string // user-friendly message
}

// ParseError converts a raw error into a code and a user-friendly message.
// Sensitive internals are hidden, but the user gets enough to act on.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL errors

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Referenced data could not be found",
		}
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 3. Network/connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	// 4. Default internal server error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError maps unique constraint violations to resource-specific messages
func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Email already registered",
		}
	}

	if strings.Contains(errLower, "token") || strings.Contains(errLower, "idx_password_resets_token") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Please retry the request",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

// getNotFoundMessage picks a Not Found message for the given context
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	if strings.Contains(contextLower, "event") || strings.Contains(contextLower, "calendar") {
		return "Event not found"
	}
	if strings.Contains(contextLower, "mood") {
		return "Mood entry not found"
	}
	if strings.Contains(contextLower, "journal") {
		return "Journal entry not found"
	}
	if strings.Contains(contextLower, "goal") {
		return "Goal not found"
	}
	if strings.Contains(contextLower, "session") || strings.Contains(contextLower, "study") {
		return "Study session not found"
	}
	if strings.Contains(contextLower, "post") || strings.Contains(contextLower, "blog") {
		return "Post not found"
	}
	if strings.Contains(contextLower, "alarm") {
		return "Alarm not found"
	}
	if strings.Contains(contextLower, "document") {
		return "Document not found"
	}

	return "Requested data could not be found"
}

// getDefaultErrorMessage picks a default error message for the given context
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Failed to create the record. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Failed to update the record. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Failed to delete the record. Please try again later"
	}
	if strings.Contains(contextLower, "upload") {
		return "Failed to store the file. Please try again later"
	}

	return "An unexpected error occurred. Please try again later"
}

// ParseAndRespond parses an error and writes the standard response.
// Convenience helper for controllers.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error: errorInfo.Message,
		Code:  errorInfo.Code,
	})
}
