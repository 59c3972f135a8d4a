package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/interfaces/http/dto"
	"github.com/horologe/storefront/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// newTestRouter returns a router with the request id middleware installed
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "not found",
			err:         shared.NewNotFoundError("order", "abc"),
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantMessage: "order abc not found",
		},
		{
			name:        "validation",
			err:         shared.NewValidationError("total must match"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeValidation,
			wantMessage: "total must match",
		},
		{
			name:        "invalid state wrapped",
			err:         fmt.Errorf("update: %w", shared.ErrInvalidState),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeInvalidState,
			wantMessage: shared.ErrInvalidState.Message,
		},
		{
			name:        "already exists",
			err:         shared.ErrAlreadyExists,
			wantStatus:  http.StatusConflict,
			wantCode:    dto.ErrCodeAlreadyExists,
			wantMessage: shared.ErrAlreadyExists.Message,
		},
		{
			name:        "unauthorized",
			err:         shared.ErrUnauthorized,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    dto.ErrCodeUnauthorized,
			wantMessage: shared.ErrUnauthorized.Message,
		},
		{
			name:        "persistence hides details",
			err:         shared.NewPersistenceError("find order", errors.New("dial tcp: refused")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrCodeInternal,
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrCodeInternal,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := newTestRouter()
			r.GET("/x", func(c *gin.Context) { h.HandleError(c, tt.err) })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(middleware.RequestIDHeader, "req-123")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
			assert.Equal(t, "req-123", resp.Error.RequestID)
		})
	}
}

func TestHandleError_NilIsNoop(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_SuccessWritesRawBody(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, []string{"a", "b"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["a","b"]`, w.Body.String())
}

func TestBaseHandler_Created(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Created(c, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"1"}`, w.Body.String())
}
