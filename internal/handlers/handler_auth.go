package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvc) *AuthHandler {
	return &AuthHandler{authService: as}
}

// RegisterAuthRoutes sets up the public authentication routes. The limiter
// middleware, when given, applies to every route in the group.
func RegisterAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc, limit gin.HandlerFunc) {
	h := NewAuthHandler(authService)

	auth := r.Group("/api/auth")
	if limit != nil {
		auth.Use(limit)
	}
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates a user and returns a bearer token for it
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or email already registered"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	token, user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Signup with registered email")
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(apperrors.Kind(err), "User already exists"))
			return
		}
		respondError(c, logger, err, "Failed to register user")
		return
	}

	logger.Info("User signed up", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid password"
// @Failure 404 {object} dto.ErrorResponse "Unknown email"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)})
}
