package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(pool *pgxpool.Pool) *PgxIncomeRepository {
	return &PgxIncomeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

const incomeColumns = `income_id, user_id, account_id, amount, source, category, date_received, description,
	is_recurring, frequency, last_recurred_at, created_at, created_by, last_updated_at, last_updated_by`

func toModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:       d.IncomeID,
		UserID:         d.UserID,
		AccountID:      d.AccountID,
		Amount:         d.Amount,
		Source:         string(d.Source),
		Category:       string(d.Category),
		DateReceived:   d.DateReceived,
		Description:    d.Description,
		IsRecurring:    d.IsRecurring,
		Frequency:      toNullFrequency(d.Recurrence),
		LastRecurredAt: toNullTime(d.LastRecurredAt),
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

func toDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:     m.IncomeID,
		UserID:       m.UserID,
		AccountID:    m.AccountID,
		Amount:       m.Amount,
		Source:       domain.IncomeSource(m.Source),
		Category:     domain.IncomeCategory(m.Category),
		DateReceived: m.DateReceived,
		Description:  m.Description,
		Recurrence:   toDomainRecurrence(m.IsRecurring, m.Frequency, m.LastRecurredAt),
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

func scanIncome(row pgx.Row) (domain.Income, error) {
	var m models.Income
	err := row.Scan(
		&m.IncomeID,
		&m.UserID,
		&m.AccountID,
		&m.Amount,
		&m.Source,
		&m.Category,
		&m.DateReceived,
		&m.Description,
		&m.IsRecurring,
		&m.Frequency,
		&m.LastRecurredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Income{}, err
	}
	return toDomainIncome(m), nil
}

func (r *PgxIncomeRepository) queryIncomes(ctx context.Context, q queryer, query string, args ...any) ([]domain.Income, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	incomes := []domain.Income{}
	for rows.Next() {
		inc, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income rows: %w", err)
	}
	return incomes, nil
}

func (r *PgxIncomeRepository) findIncome(ctx context.Context, q queryer, query, userID, incomeID string) (*domain.Income, error) {
	inc, err := scanIncome(q.QueryRow(ctx, query, incomeID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: income %s", apperrors.ErrNotFound, incomeID)
		}
		return nil, fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}
	return &inc, nil
}

// FindIncomeByID retrieves an income owned by userID.
func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, userID string, incomeID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1 AND user_id = $2;`
	return r.findIncome(ctx, r.Pool, query, userID, incomeID)
}

// FindIncomeByIDForUpdate retrieves and locks an income within tx.
func (r *PgxIncomeRepository) FindIncomeByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, incomeID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1 AND user_id = $2 FOR UPDATE;`
	return r.findIncome(ctx, tx, query, userID, incomeID)
}

// ListIncomes returns a page of incomes, newest first.
func (r *PgxIncomeRepository) ListIncomes(ctx context.Context, userID string, limit int, offset int) ([]domain.Income, error) {
	limit, offset = normalizePage(limit, offset)
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE user_id = $1
		ORDER BY date_received DESC, income_id DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryIncomes(ctx, r.Pool, query, userID, limit, offset)
}

// FindAllIncomes returns every income the user has recorded.
func (r *PgxIncomeRepository) FindAllIncomes(ctx context.Context, userID string) ([]domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE user_id = $1 ORDER BY date_received DESC, income_id DESC;`
	return r.queryIncomes(ctx, r.Pool, query, userID)
}

// ListRecurringIncomes returns every recurring income template.
func (r *PgxIncomeRepository) ListRecurringIncomes(ctx context.Context) ([]domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE is_recurring = TRUE AND frequency IS NOT NULL ORDER BY user_id, income_id;`
	return r.queryIncomes(ctx, r.Pool, query)
}

// SaveIncomeInTx inserts a new income within tx.
func (r *PgxIncomeRepository) SaveIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	m := toModelIncome(income)
	query := `
		INSERT INTO incomes (` + incomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.IncomeID, m.UserID, m.AccountID, m.Amount, m.Source, m.Category, m.DateReceived, m.Description,
		m.IsRecurring, m.Frequency, m.LastRecurredAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: income with ID %s already exists", apperrors.ErrDuplicate, m.IncomeID)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		}
		return fmt.Errorf("failed to save income %s: %w", m.IncomeID, err)
	}
	return nil
}

// UpdateIncomeInTx overwrites the mutable fields of an income within tx.
func (r *PgxIncomeRepository) UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	m := toModelIncome(income)
	query := `
		UPDATE incomes
		SET account_id = $3, amount = $4, source = $5, category = $6, date_received = $7, description = $8,
		    is_recurring = $9, frequency = $10, last_updated_at = $11, last_updated_by = $12
		WHERE income_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.IncomeID, m.UserID, m.AccountID, m.Amount, m.Source, m.Category, m.DateReceived, m.Description,
		m.IsRecurring, m.Frequency, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		}
		return fmt.Errorf("failed to update income %s: %w", m.IncomeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: income %s", apperrors.ErrNotFound, m.IncomeID)
	}
	return nil
}

// DeleteIncomeInTx removes an income within tx.
func (r *PgxIncomeRepository) DeleteIncomeInTx(ctx context.Context, tx pgx.Tx, userID string, incomeID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM incomes WHERE income_id = $1 AND user_id = $2;`, incomeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income %s: %w", incomeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: income %s", apperrors.ErrNotFound, incomeID)
	}
	return nil
}

// MarkIncomeRecurredInTx stamps the last materialized occurrence of a recurring income.
func (r *PgxIncomeRepository) MarkIncomeRecurredInTx(ctx context.Context, tx pgx.Tx, incomeID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `UPDATE incomes SET last_recurred_at = $2 WHERE income_id = $1;`, incomeID, at)
	if err != nil {
		return fmt.Errorf("failed to mark income %s recurred: %w", incomeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: income %s", apperrors.ErrNotFound, incomeID)
	}
	return nil
}
