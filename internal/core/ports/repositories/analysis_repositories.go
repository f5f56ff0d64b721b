package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// AnalysisRepositoryFacade persists one analysis document per user.
type AnalysisRepositoryFacade interface {
	// UpsertAnalysis inserts or replaces the user's document.
	UpsertAnalysis(ctx context.Context, analysis domain.Analysis) error
	FindAnalysis(ctx context.Context, userID string) (*domain.Analysis, error)
	DeleteAnalysis(ctx context.Context, userID string) error
}
