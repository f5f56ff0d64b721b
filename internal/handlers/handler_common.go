package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope for err. Server-side failures are
// logged at error level and hidden behind fallbackMsg.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, dto.NewErrorResponse("internal_error", fallbackMsg))
		return
	}
	logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.NewErrorResponse(apperrors.Kind(err), err.Error()))
}

// respondBindError reports a request that failed JSON, query or binding-tag validation.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("validation_error", "Invalid request: "+err.Error()))
}

// requireUserID returns the authenticated caller, writing a 401 when the
// context has none.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("unauthorized", "Unauthorized"))
		return "", false
	}
	return userID, true
}
