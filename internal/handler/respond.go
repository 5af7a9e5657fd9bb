package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"collabhub/internal/apperror"
	"collabhub/internal/model"
)

// respondError maps a service error to its HTTP response. Taxonomy errors
// carry their own status; anything else falls back to ErrInternal.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.ErrInternal
	}
	c.JSON(appErr.HTTPStatus, model.NewErrorResponse(appErr.Message, appErr.Code))
}

// respondBindError maps a gin body-binding failure to a validation response.
func respondBindError(c *gin.Context, err error) {
	appErr := apperror.MapValidationError(err)
	c.JSON(appErr.HTTPStatus, model.NewErrorResponse(appErr.Message, appErr.Code))
}
