package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// SaveAnalysisRequest is the body of an analysis create or replace.
type SaveAnalysisRequest struct {
	LiquidBalance domain.LiquidBalance `json:"liquidBalance"`
	Investments   []domain.Holding     `json:"investments"`
	LoanDetails   domain.LoanDetails   `json:"loanDetails"`
}

// AnalysisResponse is the stored analysis document.
type AnalysisResponse struct {
	UserID        string               `json:"userId"`
	LiquidBalance domain.LiquidBalance `json:"liquidBalance"`
	Investments   []domain.Holding     `json:"investments"`
	LoanDetails   domain.LoanDetails   `json:"loanDetails"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

func ToAnalysisResponse(a *domain.Analysis) AnalysisResponse {
	investments := a.Investments
	if investments == nil {
		investments = []domain.Holding{}
	}
	return AnalysisResponse{
		UserID:        a.UserID,
		LiquidBalance: a.LiquidBalance,
		Investments:   investments,
		LoanDetails:   a.LoanDetails,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// AnalyticsSummaryParams are the optional overrides for the summary endpoint.
type AnalyticsSummaryParams struct {
	TaxRate        *string `form:"taxRate"`
	LoanTermMonths *int    `form:"loanTermMonths" binding:"omitempty,min=1,max=600"`
}
