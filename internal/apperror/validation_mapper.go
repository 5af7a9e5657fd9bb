package apperror

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MapValidationError converts a gin binding failure into a ValidationError.
// Only the first offending field is reported.
func MapValidationError(err error) *AppError {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		switch e.Tag() {
		case "required":
			return Validation(e.Field() + " is required")
		case "email":
			return Validation(e.Field() + " must be a valid email address")
		case "oneof":
			return Validation(e.Field() + " must be one of: " + e.Param())
		default:
			return Validation(e.Field() + " is invalid")
		}
	}

	return New(CodeValidation, "Invalid request body", http.StatusBadRequest)
}
