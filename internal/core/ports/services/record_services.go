package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// IncomeSvcFacade records incomes and keeps their account balances in step.
type IncomeSvcFacade interface {
	CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error)
	GetIncome(ctx context.Context, userID string, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, userID string, limit int, offset int) ([]domain.Income, error)
	UpdateIncome(ctx context.Context, userID string, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error)
	DeleteIncome(ctx context.Context, userID string, incomeID string) error

	// RecordIncome persists an already-built income and applies its balance effect.
	RecordIncome(ctx context.Context, income domain.Income) error
}

// ExpenseSvcFacade records expenses and keeps their account balances in step.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	GetExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID string, expenseID string) error

	// RecordExpense persists an already-built expense and applies its balance effect.
	RecordExpense(ctx context.Context, expense domain.Expense) error
}

// SavingsGoalSvcFacade manages savings goals.
type SavingsGoalSvcFacade interface {
	CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error)
	GetGoal(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error)
	ListGoals(ctx context.Context, userID string, limit int, offset int) ([]domain.SavingsGoal, error)
	UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error)
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}
