package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record an income.
type CreateIncomeRequest struct {
	AccountID    string                `json:"accountId" binding:"required"`
	Amount       decimal.Decimal       `json:"amount" binding:"decimal_gt0"`
	Source       domain.IncomeSource   `json:"source" binding:"required"`
	Category     domain.IncomeCategory `json:"category"` // defaults to Other
	DateReceived time.Time             `json:"dateReceived" binding:"required"`
	Description  string                `json:"description" binding:"max=1000"`
	IsRecurring  bool                  `json:"isRecurring"`
	Frequency    domain.Frequency      `json:"frequency" binding:"required_if=IsRecurring true"`
}

// UpdateIncomeRequest carries the fields to change on an income.
type UpdateIncomeRequest struct {
	AccountID    *string                `json:"accountId" binding:"omitempty,min=1"`
	Amount       *decimal.Decimal       `json:"amount" binding:"omitempty,decimal_gt0"`
	Source       *domain.IncomeSource   `json:"source"`
	Category     *domain.IncomeCategory `json:"category"`
	DateReceived *time.Time             `json:"dateReceived"`
	Description  *string                `json:"description" binding:"omitempty,max=1000"`
	IsRecurring  *bool                  `json:"isRecurring"`
	Frequency    *domain.Frequency      `json:"frequency"`
}

// IncomeResponse defines the data returned for an income.
type IncomeResponse struct {
	IncomeID       string                `json:"incomeID"`
	AccountID      string                `json:"accountID"`
	Amount         decimal.Decimal       `json:"amount"`
	Source         domain.IncomeSource   `json:"source"`
	Category       domain.IncomeCategory `json:"category"`
	DateReceived   time.Time             `json:"dateReceived"`
	Description    string                `json:"description"`
	IsRecurring    bool                  `json:"isRecurring"`
	Frequency      domain.Frequency      `json:"frequency,omitempty"`
	LastRecurredAt *time.Time            `json:"lastRecurredAt,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse DTO
func ToIncomeResponse(i *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:       i.IncomeID,
		AccountID:      i.AccountID,
		Amount:         i.Amount,
		Source:         i.Source,
		Category:       i.Category,
		DateReceived:   i.DateReceived,
		Description:    i.Description,
		IsRecurring:    i.IsRecurring,
		Frequency:      i.Frequency,
		LastRecurredAt: i.LastRecurredAt,
		CreatedAt:      i.CreatedAt,
		LastUpdatedAt:  i.LastUpdatedAt,
	}
}

// ListIncomesResponse wraps the list of incomes.
type ListIncomesResponse struct {
	Incomes []IncomeResponse `json:"incomes"`
}

func ToListIncomesResponse(incomes []domain.Income) ListIncomesResponse {
	res := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		res[i] = ToIncomeResponse(&incomes[i])
	}
	return ListIncomesResponse{Incomes: res}
}
