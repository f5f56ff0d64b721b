package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// AnalysisSvcFacade manages the saved per-user analysis document.
type AnalysisSvcFacade interface {
	// SaveAnalysis creates or replaces the caller's document.
	SaveAnalysis(ctx context.Context, userID string, req dto.SaveAnalysisRequest) (*domain.Analysis, error)
	GetAnalysis(ctx context.Context, userID string) (*domain.Analysis, error)
	// UpdateAnalysis replaces an existing document and fails if there is none.
	UpdateAnalysis(ctx context.Context, userID string, req dto.SaveAnalysisRequest) (*domain.Analysis, error)
	DeleteAnalysis(ctx context.Context, userID string) error
	MarketPrices(ctx context.Context) domain.MarketPrices
}

// SummaryOptions overrides the configured analytics defaults for one request.
type SummaryOptions struct {
	TaxRate        *decimal.Decimal
	LoanTermMonths *int
}

// AnalyticsSvc derives analytics from the user's current records.
type AnalyticsSvc interface {
	Summary(ctx context.Context, userID string, opts SummaryOptions) (*domain.AnalyticsSummary, error)
}
