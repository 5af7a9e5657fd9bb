package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)

	ErrInvalidID = New(
		CodeInvalidID,
		"Identifier is not a valid object id",
		http.StatusBadRequest,
	)

	ErrConflict = New(
		CodeConflict,
		"The request conflicts with existing state",
		http.StatusConflict,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
)

// NotFound returns a NotFound error with an entity-specific message.
func NotFound(entity string) *AppError {
	return New(CodeNotFound, entity+" not found", http.StatusNotFound)
}

// Forbidden returns a Forbidden error with a specific message.
func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

// Validation returns a ValidationError with a specific message.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
