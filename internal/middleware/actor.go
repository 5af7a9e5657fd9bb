package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"collabhub/internal/apperror"
	"collabhub/internal/model"
	"collabhub/internal/service"
)

const actorKey = "actor"

// RequireActor resolves the acting user from the X-User-ID header (or the
// user_id query parameter) and stores the record in the request context.
// There is no session state: identity is re-resolved on every request.
func RequireActor(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-User-ID")
		if actorID == "" {
			actorID = c.Query("user_id")
		}
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				model.NewErrorResponse("Actor identity required", apperror.CodeValidation))
			return
		}

		actor, err := users.GetByID(c.Request.Context(), actorID)
		if err != nil {
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				appErr = apperror.ErrInternal
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus,
				model.NewErrorResponse(appErr.Message, appErr.Code))
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the resolved acting user, or nil if RequireActor did not run.
func Actor(c *gin.Context) *model.User {
	if v, ok := c.Get(actorKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
