package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collabhub/internal/apperror"
	"collabhub/internal/model"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("taxonomy error keeps its status and code", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, apperror.NotFound("Project"))

		require.Equal(t, http.StatusNotFound, w.Code)
		var resp model.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, apperror.CodeNotFound, resp.Code)
	})

	t.Run("unknown error falls back to the internal envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, errors.New("mongo went away"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var resp model.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, apperror.CodeInternalError, resp.Code)
		assert.Equal(t, apperror.ErrInternal.Message, resp.Error)
	})
}
