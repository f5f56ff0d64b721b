package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/handlers"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	router := newTestRouter(t)
	svc := new(MockUserService)
	handlers.RegisterUserRoutes(router.Group("/client", middleware.AuthMiddleware(testJWTSecret)), svc)
	token := generateTestToken(t, "u-1")

	svc.On("GetUserByID", mock.Anything, "u-1").
		Return(&domain.User{UserID: "u-1", FullName: "Ada", Email: "ada@example.com"}, nil).Once()

	get := func(path string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := get("/client/general/user/u-1")
	require.Equal(t, http.StatusOK, w.Code)
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "ada@example.com", user.Email)

	w = get("/client/general/user/u-2")
	assert.Equal(t, http.StatusForbidden, w.Code)

	svc.AssertExpectations(t)
}
