package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// SavingsGoalRepositoryFacade defines persistence for savings goals.
type SavingsGoalRepositoryFacade interface {
	SaveGoal(ctx context.Context, goal domain.SavingsGoal) error
	FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error)
	// ListGoals orders by priority, then end date.
	ListGoals(ctx context.Context, userID string, limit int, offset int) ([]domain.SavingsGoal, error)
	UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}
