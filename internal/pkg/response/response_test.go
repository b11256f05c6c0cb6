package response

import (
	"Inkpost/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	type payload struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(payload{})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validator", validationErr, 400, "参数错误"},
		{"json type", &json.UnmarshalTypeError{Value: "string", Type: nil}, 400, "Json错误"},
		{"sentinel", service.ErrBlogNotFound, 404, service.ErrBlogNotFound.Error()},
		{"wrapped sentinel", fmt.Errorf("load: %w", service.ErrSlugConflict), 409, service.ErrSlugConflict.Error()},
		{"unauthorized", service.ErrTokenInvalid, 401, service.ErrTokenInvalid.Error()},
		{"unmapped", errors.New("dial tcp: refused"), 500, service.UnExpectedError.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestSuccessCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessCreated(c, gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"code":201`)
}
