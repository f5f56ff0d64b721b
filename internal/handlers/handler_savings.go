package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type savingsHandler struct {
	goalService portssvc.SavingsGoalSvcFacade
	now         func() time.Time
}

// RegisterSavingsRoutes registers routes related to savings goals.
func RegisterSavingsRoutes(rg *gin.RouterGroup, goalService portssvc.SavingsGoalSvcFacade) {
	h := &savingsHandler{goalService: goalService, now: func() time.Time { return time.Now().UTC() }}

	savings := rg.Group("/savings")
	{
		savings.POST("", h.createGoal)
		savings.GET("", h.listGoals)
		savings.GET("/:id", h.getGoal)
		savings.PUT("/:id", h.updateGoal)
		savings.DELETE("/:id", h.deleteGoal)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create savings goal"
// @Security BearerAuth
// @Router /savings [post]
func (h *savingsHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create savings goal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal, h.now()))
}

// listGoals godoc
// @Summary List savings goals
// @Description Goals are ordered by priority, then end date
// @Tags savings
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListSavingsGoalsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list savings goals"
// @Security BearerAuth
// @Router /savings [get]
func (h *savingsHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list savings goals")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSavingsGoalsResponse(goals, h.now()))
}

// getGoal godoc
// @Summary Get a savings goal by ID
// @Tags savings
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve savings goal"
// @Security BearerAuth
// @Router /savings/{id} [get]
func (h *savingsHandler) getGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve savings goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal, h.now()))
}

// updateGoal godoc
// @Summary Update a savings goal
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   goal body dto.UpdateSavingsGoalRequest true "Fields to change"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update savings goal"
// @Security BearerAuth
// @Router /savings/{id} [put]
func (h *savingsHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")
	var req dto.UpdateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, req)
	if err != nil {
		respondError(c, logger.With(slog.String("goal_id", goalID)), err, "Failed to update savings goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal, h.now()))
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Tags savings
// @Param   id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete savings goal"
// @Security BearerAuth
// @Router /savings/{id} [delete]
func (h *savingsHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		respondError(c, logger.With(slog.String("goal_id", goalID)), err, "Failed to delete savings goal")
		return
	}

	c.Status(http.StatusNoContent)
}
