package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, account_id, amount, type, category, txn_date, description,
	transaction_ref_id, created_at, created_by, last_updated_at, last_updated_by`

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    d.TransactionID,
		UserID:           d.UserID,
		AccountID:        d.AccountID,
		Amount:           d.Amount,
		Type:             string(d.Type),
		Category:         d.Category,
		Date:             d.Date,
		Description:      d.Description,
		TransactionRefID: d.TransactionRefID,
		AuditFields:      toModelAudit(d.AuditFields),
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		UserID:           m.UserID,
		AccountID:        m.AccountID,
		Amount:           m.Amount,
		Type:             domain.TransactionType(m.Type),
		Category:         m.Category,
		Date:             m.Date,
		Description:      m.Description,
		TransactionRefID: m.TransactionRefID,
		AuditFields:      toDomainAudit(m.AuditFields),
	}
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.Amount,
		&m.Type,
		&m.Category,
		&m.Date,
		&m.Description,
		&m.TransactionRefID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return toDomainTransaction(m), nil
}

func (r *PgxTransactionRepository) insert(ctx context.Context, q queryer, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := q.Exec(ctx, query,
		m.TransactionID, m.UserID, m.AccountID, m.Amount, m.Type, m.Category, m.Date, m.Description,
		m.TransactionRefID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		}
		return apperrors.NewAppError(500, "failed to save transaction "+m.TransactionID, err)
	}
	return nil
}

// SaveTransaction inserts an audit-trail entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.insert(ctx, r.Pool, txn)
}

// SaveTransactionInTx inserts an audit-trail entry within tx.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return r.insert(ctx, tx, txn)
}

// FindTransactionByID retrieves an entry owned by userID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	return &txn, nil
}

// ListTransactions retrieves a page of entries using keyset pagination on (txn_date, transaction_id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.Type != "" {
		addCondition("type = ?", string(filter.Type))
	}
	if filter.AccountID != "" {
		addCondition("account_id = ?", filter.AccountID)
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, cursor.Date, cursor.ID)
		conditions = append(conditions, fmt.Sprintf("(txn_date, transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY txn_date DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for user "+userID, err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	if len(transactions) > limit {
		// The token points to the last item included in this page.
		last := transactions[limit-1]
		token := pagination.EncodeCursor(last.Date, last.TransactionID)
		nextTokenVal = &token
		transactions = transactions[:limit]
	}
	return transactions, nextTokenVal, nil
}

// UpdateTransaction overwrites an entry's mutable fields.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $3, amount = $4, type = $5, category = $6, txn_date = $7, description = $8,
		    transaction_ref_id = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.UserID, m.AccountID, m.Amount, m.Type, m.Category, m.Date, m.Description,
		m.TransactionRefID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		}
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return nil
}

// DeleteTransaction removes an entry. Account balances are not affected.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}
