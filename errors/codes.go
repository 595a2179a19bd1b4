package errors

// ErrorCode identifies an error category in API responses
type ErrorCode string

const (
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS   ErrorCode = "ALREADY_EXISTS"
	ErrorCode_UNAUTHENTICATED  ErrorCode = "UNAUTHENTICATED"
	ErrorCode_FORBIDDEN        ErrorCode = "FORBIDDEN"
	ErrorCode_INVALID_PAYLOAD  ErrorCode = "INVALID_PAYLOAD"

	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = "AUTH_INVALID_TOKEN"
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = "AUTH_TOKEN_EXPIRED"
	ErrorCode_AUTH_INVALID_CREDENTIALS   ErrorCode = "AUTH_INVALID_CREDENTIALS"
	ErrorCode_AUTH_USER_NOT_FOUND        ErrorCode = "AUTH_USER_NOT_FOUND"
	ErrorCode_AUTH_USER_ALREADY_EXISTS   ErrorCode = "AUTH_USER_ALREADY_EXISTS"
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = "AUTH_INVALID_REFRESH_TOKEN"

	ErrorCode_AUDIO_VALIDATION_FAILED    ErrorCode = "AUDIO_VALIDATION_FAILED"
	ErrorCode_ENGINE_UNAVAILABLE         ErrorCode = "ENGINE_UNAVAILABLE"
	ErrorCode_ENGINE_CALL_FAILED         ErrorCode = "ENGINE_CALL_FAILED"
	ErrorCode_REPORT_GENERATION_FAILED   ErrorCode = "REPORT_GENERATION_FAILED"
	ErrorCode_PROCESSING_FAILED          ErrorCode = "PROCESSING_FAILED"
	ErrorCode_UPLOAD_TOO_LARGE           ErrorCode = "UPLOAD_TOO_LARGE"
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT   ErrorCode = "UNSUPPORTED_AUDIO_FORMAT"
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = "INTEGRATION_STORAGE_FAILED"

	ErrorCode_DB_CONNECTION_FAILED ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_QUERY_FAILED      ErrorCode = "DB_QUERY_FAILED"
)

// String returns the string representation of the error code
func (c ErrorCode) String() string {
	return string(c)
}
