package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(secret), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := utils.GenerateJWT("u-1", secret, time.Hour, "test")
	require.NoError(t, err)
	expired, err := utils.GenerateJWT("u-1", secret, -time.Minute, "test")
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT("u-1", "other-secret", time.Hour, "test")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "u-1"},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantBody: "u-1"},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized, wantBody: "Authorization header required"},
		{name: "bad format", header: "Token " + valid, wantStatus: http.StatusUnauthorized, wantBody: "Bearer {token}"},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantBody: "Token has expired"},
		{name: "wrong secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
	}

	r := authRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
			}
		})
	}
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	t.Run("propagates request id", func(t *testing.T) {
		buf.Reset()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"request_id":"req-123"`)
		assert.Contains(t, lines[1], `"status":204`)
	})

	t.Run("generates request id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestGetLoggerFromCtx_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/x", middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/x", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewMemoryLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("ten per minute")
	assert.Error(t, err)
}
