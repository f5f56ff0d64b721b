package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// IncomeReader defines read operations for incomes
type IncomeReader interface {
	FindIncomeByID(ctx context.Context, userID string, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, userID string, limit int, offset int) ([]domain.Income, error)
	FindAllIncomes(ctx context.Context, userID string) ([]domain.Income, error)

	// ListRecurringIncomes returns recurring income templates across all users.
	ListRecurringIncomes(ctx context.Context) ([]domain.Income, error)
}

// IncomeWriter defines transactional write operations for incomes
type IncomeWriter interface {
	// FindIncomeByIDForUpdate loads and locks an income row.
	FindIncomeByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, incomeID string) (*domain.Income, error)
	SaveIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error
	UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error
	DeleteIncomeInTx(ctx context.Context, tx pgx.Tx, userID string, incomeID string) error
	MarkIncomeRecurredInTx(ctx context.Context, tx pgx.Tx, incomeID string, at time.Time) error
}

// IncomeRepositoryFacade combines all income repository interfaces
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
}

// ExpenseReader defines read operations for expenses
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error)
	FindAllExpenses(ctx context.Context, userID string) ([]domain.Expense, error)

	// ListRecurringExpenses returns recurring expense templates across all users.
	ListRecurringExpenses(ctx context.Context) ([]domain.Expense, error)
}

// ExpenseWriter defines transactional write operations for expenses
type ExpenseWriter interface {
	// FindExpenseByIDForUpdate loads and locks an expense row.
	FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, expenseID string) (*domain.Expense, error)
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, userID string, expenseID string) error
	MarkExpenseRecurredInTx(ctx context.Context, tx pgx.Tx, expenseID string, at time.Time) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
