package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, name, account_type, balance, currency, interest_rate,
	minimum_balance, withdrawal_limit, loan_term_months, created_at, created_by, last_updated_at, last_updated_by`

const (
	balanceUpdateQuery = `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND user_id = $2;
	`
	// The guard makes the funds check and the increment a single atomic statement.
	guardedBalanceUpdateQuery = `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND user_id = $2 AND COALESCE(balance, 0) + $3 >= 0;
	`
)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		UserID:          d.UserID,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		Balance:         d.Balance,
		Currency:        d.Currency,
		InterestRate:    d.InterestRate,
		MinimumBalance:  d.MinimumBalance,
		WithdrawalLimit: d.WithdrawalLimit,
		LoanTermMonths:  d.LoanTermMonths,
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		Balance:         m.Balance,
		Currency:        m.Currency,
		InterestRate:    m.InterestRate,
		MinimumBalance:  m.MinimumBalance,
		WithdrawalLimit: m.WithdrawalLimit,
		LoanTermMonths:  m.LoanTermMonths,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.Currency,
		&m.InterestRate,
		&m.MinimumBalance,
		&m.WithdrawalLimit,
		&m.LoanTermMonths,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return toDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Name,
		m.AccountType,
		m.Balance,
		m.Currency,
		m.InterestRate,
		m.MinimumBalance,
		m.WithdrawalLimit,
		m.LoanTermMonths,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, scoped to its owner.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND user_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// ListAccounts retrieves a paginated list of the user's accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	limit, offset = normalizePage(limit, offset)
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY name, account_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	return collectAccounts(rows)
}

// FindAllAccounts retrieves every account the user owns.
func (r *PgxAccountRepository) FindAllAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY name, account_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	return collectAccounts(rows)
}

// UpdateAccount updates an existing account's descriptive fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $3, account_type = $4, currency = $5, interest_rate = $6, minimum_balance = $7,
		    withdrawal_limit = $8, loan_term_months = $9, last_updated_at = $10, last_updated_by = $11
		WHERE account_id = $1 AND user_id = $2;
	`
	// Balance is deliberately absent: it only moves through ApplyBalanceChanges.
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Name,
		m.AccountType,
		m.Currency,
		m.InterestRate,
		m.MinimumBalance,
		m.WithdrawalLimit,
		m.LoanTermMonths,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// DeleteAccount removes the account. Incomes, expenses and audit entries go with it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1 AND user_id = $2;`, accountID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Rows are locked in account_id order so concurrent transfers cannot deadlock.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1) AND user_id = $2
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}

	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}

	missing := []string{}
	for _, id := range accountIDs {
		if _, found := accountsMap[id]; !found {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// ApplyBalanceChangesInTx increments balances for multiple accounts within a transaction.
// Changes to the same account are merged first. A guarded change that would take
// the balance below zero fails with apperrors.ErrInsufficientFunds.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, userID string, changes []domain.BalanceChange, now time.Time) error {
	merged := domain.MergeBalanceChanges(changes)
	if len(merged) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, ch := range merged {
		query := balanceUpdateQuery
		if ch.RequireSufficientFunds && ch.Delta.IsNegative() {
			query = guardedBalanceUpdateQuery
		}
		batch.Queue(query, ch.AccountID, userID, ch.Delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	rejected := -1
	for i := range merged {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", merged[i].AccountID, err)
			}
		} else if ct.RowsAffected() == 0 && rejected < 0 {
			rejected = i
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	if rejected >= 0 {
		return r.explainRejectedChange(ctx, tx, userID, merged[rejected])
	}
	return nil
}

// explainRejectedChange tells a missing account apart from a failed funds guard.
func (r *PgxAccountRepository) explainRejectedChange(ctx context.Context, tx pgx.Tx, userID string, ch domain.BalanceChange) error {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1 AND user_id = $2;`, ch.AccountID, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, ch.AccountID)
	}
	if err != nil {
		return fmt.Errorf("failed to check account %s after rejected balance update: %w", ch.AccountID, err)
	}
	return fmt.Errorf("%w: account %s has %s, needs %s", apperrors.ErrInsufficientFunds, ch.AccountID, balance.StringFixed(2), ch.Delta.Neg().StringFixed(2))
}

// ApplyBalanceChanges runs ApplyBalanceChangesInTx in its own transaction.
func (r *PgxAccountRepository) ApplyBalanceChanges(ctx context.Context, userID string, changes []domain.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.ApplyBalanceChangesInTx(ctx, tx, userID, changes, time.Now().UTC()); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
