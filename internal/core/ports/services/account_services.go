package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves one of the user's accounts.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of the user's accounts.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with its opening balance.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account and the records that reference it.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

// AccountFundsSvc moves money into, out of and between accounts.
type AccountFundsSvc interface {
	Deposit(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error)

	// Transfer debits from and credits to atomically. It returns both accounts after the move.
	Transfer(ctx context.Context, userID string, fromAccountID string, toAccountID string, amount decimal.Decimal) (*domain.Account, *domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountFundsSvc
}
