package apperror

const (
	// Client errors (4xx)
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeInvalidID  = "INVALID_ID"
	CodeConflict   = "CONFLICT"
	CodeValidation = "VALIDATION_ERROR"

	// Server errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
)
