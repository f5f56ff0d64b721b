package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// TransactionSvcFacade manages audit-trail entries. Entries never move balances.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}
