package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account owned by userID.
	FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of the user's accounts ordered by name.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)

	// FindAllAccounts retrieves every account the user owns.
	FindAllAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an account's descriptive fields. Balance is not touched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account and, by cascade, its records.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

// BalanceMutator applies signed deltas to account balances.
type BalanceMutator interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx atomically increments balances within the given transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, userID string, changes []domain.BalanceChange, now time.Time) error

	// ApplyBalanceChanges is ApplyBalanceChangesInTx in its own transaction.
	ApplyBalanceChanges(ctx context.Context, userID string, changes []domain.BalanceChange) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	BalanceMutator
}
