package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these codes to
// localized messages; the message field is the fallback.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"       // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // session token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or revoked session token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID" // invalid or expired reset token
	AuthPasswordPolicy     = "AUTH_PASSWORD_POLICY"     // password failed policy check
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD"      // current password mismatch

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric path id
	ValidationInvalidDate  = "VALIDATION_INVALID_DATE"  // unparseable date parameter
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // row missing or not owned
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // unique constraint hit

	// ==================== Uploads (UPLOAD_) ====================
	UploadNoFile             = "UPLOAD_NO_FILE"             // multipart file part missing
	UploadInvalidFileType    = "UPLOAD_INVALID_FILE_TYPE"   // extension not allowed
	UploadFileTooLarge       = "UPLOAD_FILE_TOO_LARGE"      // over the size cap
	UploadStorageUnavailable = "UPLOAD_STORAGE_UNAVAILABLE" // object storage not configured
	UploadFailed             = "UPLOAD_FAILED"              // storage write failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unclassified failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store unavailable
)
