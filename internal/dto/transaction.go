package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines an audit-trail entry.
type CreateTransactionRequest struct {
	AccountID        string                 `json:"accountId" binding:"required"`
	Amount           decimal.Decimal        `json:"amount" binding:"decimal_gt0"`
	Type             domain.TransactionType `json:"type" binding:"required,oneof=Income Expense"`
	Category         string                 `json:"category" binding:"required,max=50"`
	Date             *time.Time             `json:"date"` // defaults to now
	Description      string                 `json:"description" binding:"max=200"`
	TransactionRefID string                 `json:"transactionRefId" binding:"required"`
}

// UpdateTransactionRequest carries the fields to change on an entry.
type UpdateTransactionRequest struct {
	AccountID        *string                 `json:"accountId" binding:"omitempty,min=1"`
	Amount           *decimal.Decimal        `json:"amount" binding:"omitempty,decimal_gt0"`
	Type             *domain.TransactionType `json:"type" binding:"omitempty,oneof=Income Expense"`
	Category         *string                 `json:"category" binding:"omitempty,min=1,max=50"`
	Date             *time.Time              `json:"date"`
	Description      *string                 `json:"description" binding:"omitempty,max=200"`
	TransactionRefID *string                 `json:"transactionRefId" binding:"omitempty,min=1"`
}

// ListTransactionsParams defines query parameters for cursor pagination.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for an audit-trail entry.
type TransactionResponse struct {
	TransactionID    string                 `json:"transactionID"`
	AccountID        string                 `json:"accountID"`
	Amount           decimal.Decimal        `json:"amount"`
	Type             domain.TransactionType `json:"type"`
	Category         string                 `json:"category"`
	Date             time.Time              `json:"date"`
	Description      string                 `json:"description"`
	TransactionRefID string                 `json:"transactionRefID"`
	CreatedAt        time.Time              `json:"createdAt"`
	LastUpdatedAt    time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		AccountID:        t.AccountID,
		Amount:           t.Amount,
		Type:             t.Type,
		Category:         t.Category,
		Date:             t.Date,
		Description:      t.Description,
		TransactionRefID: t.TransactionRefID,
		CreatedAt:        t.CreatedAt,
		LastUpdatedAt:    t.LastUpdatedAt,
	}
}

// ListTransactionsResponse wraps a page of entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
