package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionFilter narrows a transaction listing. Empty fields match everything.
type TransactionFilter struct {
	Type      domain.TransactionType
	AccountID string
}

// TransactionReader defines read operations for audit-trail entries
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions pages newest first. nextToken is opaque and nil on the last page.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for audit-trail entries
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
