package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

// RegisterIncomeRoutes registers routes related to incomes.
func RegisterIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := &incomeHandler{incomeService: incomeService}

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/:id", h.getIncome)
		incomes.PUT("/:id", h.updateIncome)
		incomes.DELETE("/:id", h.deleteIncome)
	}
}

// createIncome godoc
// @Summary Record an income
// @Description Creates an income and credits its account in the same transaction
// @Tags incomes
// @Accept  json
// @Produce  json
// @Param   income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create income"
// @Security BearerAuth
// @Router /incomes [post]
func (h *incomeHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	income, err := h.incomeService.CreateIncome(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create income")
		return
	}

	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

// listIncomes godoc
// @Summary List incomes
// @Tags incomes
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListIncomesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list incomes"
// @Security BearerAuth
// @Router /incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
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

	incomes, err := h.incomeService.ListIncomes(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list incomes")
		return
	}

	c.JSON(http.StatusOK, dto.ToListIncomesResponse(incomes))
}

// getIncome godoc
// @Summary Get an income by ID
// @Tags incomes
// @Produce  json
// @Param   id path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Income not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve income"
// @Security BearerAuth
// @Router /incomes/{id} [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	income, err := h.incomeService.GetIncome(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve income")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// updateIncome godoc
// @Summary Update an income
// @Description Applies the difference between the old and new amount, or moves the amount when the account changes
// @Tags incomes
// @Accept  json
// @Produce  json
// @Param   id path string true "Income ID"
// @Param   income body dto.UpdateIncomeRequest true "Fields to change"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Income or account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update income"
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("id")
	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("income_id", incomeID))
	income, err := h.incomeService.UpdateIncome(c.Request.Context(), userID, incomeID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update income")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// deleteIncome godoc
// @Summary Delete an income
// @Description Deletes the income and debits its amount back from the account
// @Tags incomes
// @Param   id path string true "Income ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Income not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete income"
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *incomeHandler) deleteIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("income_id", incomeID))
	if err := h.incomeService.DeleteIncome(c.Request.Context(), userID, incomeID); err != nil {
		respondError(c, logger, err, "Failed to delete income")
		return
	}

	c.Status(http.StatusNoContent)
}
