package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type analysisHandler struct {
	analysisService  portssvc.AnalysisSvcFacade
	analyticsService portssvc.AnalyticsSvc
}

// RegisterAnalysisRoutes registers the analysis document, market price and
// analytics summary routes.
func RegisterAnalysisRoutes(rg *gin.RouterGroup, analysisService portssvc.AnalysisSvcFacade, analyticsService portssvc.AnalyticsSvc) {
	h := &analysisHandler{analysisService: analysisService, analyticsService: analyticsService}

	analysis := rg.Group("/analysis")
	{
		analysis.POST("", h.saveAnalysis)
		analysis.GET("/:userId", h.getAnalysis)
		analysis.PUT("/:userId", h.updateAnalysis)
		analysis.DELETE("/:userId", h.deleteAnalysis)
	}
	rg.GET("/market-prices", h.marketPrices)
	rg.GET("/analytics/summary", h.summary)
}

// ownerFromPath returns the caller when the :userId path segment names them.
func ownerFromPath(c *gin.Context) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return "", false
	}
	if c.Param("userId") != userID {
		respondError(c, logger, fmt.Errorf("%w: cannot access another user's analysis", apperrors.ErrForbidden), "Forbidden")
		return "", false
	}
	return userID, true
}

// saveAnalysis godoc
// @Summary Save the analysis document
// @Description Creates or replaces the caller's analysis. The loan installment and payoff date are recomputed.
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   analysis body dto.SaveAnalysisRequest true "Analysis document"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to save analysis"
// @Security BearerAuth
// @Router /analysis [post]
func (h *analysisHandler) saveAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	analysis, err := h.analysisService.SaveAnalysis(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to save analysis")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalysisResponse(analysis))
}

// getAnalysis godoc
// @Summary Get the analysis document
// @Tags analysis
// @Produce  json
// @Param   userId path string true "Must be the caller's user ID"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "No analysis saved"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve analysis"
// @Security BearerAuth
// @Router /analysis/{userId} [get]
func (h *analysisHandler) getAnalysis(c *gin.Context) {
	userID, ok := ownerFromPath(c)
	if !ok {
		return
	}

	analysis, err := h.analysisService.GetAnalysis(c.Request.Context(), userID)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to retrieve analysis")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalysisResponse(analysis))
}

// updateAnalysis godoc
// @Summary Update the analysis document
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   userId path string true "Must be the caller's user ID"
// @Param   analysis body dto.SaveAnalysisRequest true "Analysis document"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "No analysis saved"
// @Failure 500 {object} dto.ErrorResponse "Failed to update analysis"
// @Security BearerAuth
// @Router /analysis/{userId} [put]
func (h *analysisHandler) updateAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := ownerFromPath(c)
	if !ok {
		return
	}

	var req dto.SaveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	analysis, err := h.analysisService.UpdateAnalysis(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update analysis")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalysisResponse(analysis))
}

// deleteAnalysis godoc
// @Summary Delete the analysis document
// @Tags analysis
// @Param   userId path string true "Must be the caller's user ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "No analysis saved"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete analysis"
// @Security BearerAuth
// @Router /analysis/{userId} [delete]
func (h *analysisHandler) deleteAnalysis(c *gin.Context) {
	userID, ok := ownerFromPath(c)
	if !ok {
		return
	}

	if err := h.analysisService.DeleteAnalysis(c.Request.Context(), userID); err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to delete analysis")
		return
	}

	c.Status(http.StatusNoContent)
}

// marketPrices godoc
// @Summary Reference market prices
// @Tags analysis
// @Produce  json
// @Success 200 {object} domain.MarketPrices
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /market-prices [get]
func (h *analysisHandler) marketPrices(c *gin.Context) {
	c.JSON(http.StatusOK, h.analysisService.MarketPrices(c.Request.Context()))
}

// summary godoc
// @Summary Analytics summary
// @Description Net worth, totals, tax estimate, category breakdowns, loan schedules and a health score, derived from current records
// @Tags analytics
// @Produce  json
// @Param   taxRate query string false "Tax rate between 0 and 1 overriding the configured rate"
// @Param   loanTermMonths query int false "Loan term overriding each loan account's own term"
// @Success 200 {object} domain.AnalyticsSummary
// @Failure 400 {object} dto.ErrorResponse "Invalid override"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to build summary"
// @Security BearerAuth
// @Router /analytics/summary [get]
func (h *analysisHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.AnalyticsSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	opts := portssvc.SummaryOptions{LoanTermMonths: params.LoanTermMonths}
	if params.TaxRate != nil {
		rate, err := decimal.NewFromString(*params.TaxRate)
		if err != nil {
			respondError(c, logger, fmt.Errorf("%w: taxRate must be a number", apperrors.ErrValidation), "Invalid taxRate")
			return
		}
		opts.TaxRate = &rate
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), userID, opts)
	if err != nil {
		respondError(c, logger, err, "Failed to build summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
