package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vialsa/backend/internal/interfaces/http/dto"
)

type seleccionForm struct {
	SedeID string `json:"sede_id" binding:"required,uuid"`
	Fecha  string `json:"fecha" binding:"required"`
	Motivo string `json:"motivo" binding:"omitempty,max=10"`
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/entregas", func(c *gin.Context) {
		var form seleccionForm
		if err := c.ShouldBindJSON(&form); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("reports missing fields by json tag name", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/entregas", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)

		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "sede_id")
		assert.Contains(t, fields, "fecha")
	})

	t.Run("reports invalid uuid", func(t *testing.T) {
		body := `{"sede_id":"no-uuid","fecha":"2026-08-28"}`
		req := httptest.NewRequest("POST", "/entregas", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "sede_id", resp.Error.Details[0].Field)
		assert.Equal(t, "Invalid UUID format", resp.Error.Details[0].Message)
	})

	t.Run("reports max length violation", func(t *testing.T) {
		body := `{"sede_id":"f47ac10b-58cc-0372-8567-0e02b2c3d479","fecha":"2026-08-28","motivo":"demasiado largo para el limite"}`
		req := httptest.NewRequest("POST", "/entregas", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "motivo", resp.Error.Details[0].Field)
		assert.Contains(t, resp.Error.Details[0].Message, "at most 10")
	})

	t.Run("includes request id when present", func(t *testing.T) {
		r := gin.New()
		r.POST("/entregas", func(c *gin.Context) {
			c.Set(RequestIDKey, "req-abc")
			var form seleccionForm
			if err := c.ShouldBindJSON(&form); err != nil {
				HandleValidationError(c, err)
				return
			}
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("POST", "/entregas", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "req-abc", resp.Error.RequestID)
	})
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}
