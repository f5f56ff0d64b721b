package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	AccountID   string                 `json:"accountId" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"decimal_gt0"`
	Category    domain.ExpenseCategory `json:"category"` // defaults to Other
	DateSpent   time.Time              `json:"dateSpent" binding:"required"`
	Description string                 `json:"description" binding:"max=1000"`
	IsRecurring bool                   `json:"isRecurring"`
	Frequency   domain.Frequency       `json:"frequency" binding:"required_if=IsRecurring true"`
}

// UpdateExpenseRequest carries the fields to change on an expense.
type UpdateExpenseRequest struct {
	AccountID   *string                 `json:"accountId" binding:"omitempty,min=1"`
	Amount      *decimal.Decimal        `json:"amount" binding:"omitempty,decimal_gt0"`
	Category    *domain.ExpenseCategory `json:"category"`
	DateSpent   *time.Time              `json:"dateSpent"`
	Description *string                 `json:"description" binding:"omitempty,max=1000"`
	IsRecurring *bool                   `json:"isRecurring"`
	Frequency   *domain.Frequency       `json:"frequency"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID      string                 `json:"expenseID"`
	AccountID      string                 `json:"accountID"`
	Amount         decimal.Decimal        `json:"amount"`
	Category       domain.ExpenseCategory `json:"category"`
	DateSpent      time.Time              `json:"dateSpent"`
	Description    string                 `json:"description"`
	IsRecurring    bool                   `json:"isRecurring"`
	Frequency      domain.Frequency       `json:"frequency,omitempty"`
	LastRecurredAt *time.Time             `json:"lastRecurredAt,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:      e.ExpenseID,
		AccountID:      e.AccountID,
		Amount:         e.Amount,
		Category:       e.Category,
		DateSpent:      e.DateSpent,
		Description:    e.Description,
		IsRecurring:    e.IsRecurring,
		Frequency:      e.Frequency,
		LastRecurredAt: e.LastRecurredAt,
		CreatedAt:      e.CreatedAt,
		LastUpdatedAt:  e.LastUpdatedAt,
	}
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: res}
}
