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

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, account_id, amount, category, date_spent, description,
	is_recurring, frequency, last_recurred_at, created_at, created_by, last_updated_at, last_updated_by`

func toModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:      d.ExpenseID,
		UserID:         d.UserID,
		AccountID:      d.AccountID,
		Amount:         d.Amount,
		Category:       string(d.Category),
		DateSpent:      d.DateSpent,
		Description:    d.Description,
		IsRecurring:    d.IsRecurring,
		Frequency:      toNullFrequency(d.Recurrence),
		LastRecurredAt: toNullTime(d.LastRecurredAt),
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

func toDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Category:    domain.ExpenseCategory(m.Category),
		DateSpent:   m.DateSpent,
		Description: m.Description,
		Recurrence:  toDomainRecurrence(m.IsRecurring, m.Frequency, m.LastRecurredAt),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.AccountID,
		&m.Amount,
		&m.Category,
		&m.DateSpent,
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
		return domain.Expense{}, err
	}
	return toDomainExpense(m), nil
}

func (r *PgxExpenseRepository) queryExpenses(ctx context.Context, q queryer, query string, args ...any) ([]domain.Expense, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) findExpense(ctx context.Context, q queryer, query, userID, expenseID string) (*domain.Expense, error) {
	exp, err := scanExpense(q.QueryRow(ctx, query, expenseID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return &exp, nil
}

// FindExpenseByID retrieves an expense owned by userID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND user_id = $2;`
	return r.findExpense(ctx, r.Pool, query, userID, expenseID)
}

// FindExpenseByIDForUpdate retrieves and locks an expense within tx.
func (r *PgxExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND user_id = $2 FOR UPDATE;`
	return r.findExpense(ctx, tx, query, userID, expenseID)
}

// ListExpenses returns a page of expenses, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error) {
	limit, offset = normalizePage(limit, offset)
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY date_spent DESC, expense_id DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryExpenses(ctx, r.Pool, query, userID, limit, offset)
}

// FindAllExpenses returns every expense the user has recorded.
func (r *PgxExpenseRepository) FindAllExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY date_spent DESC, expense_id DESC;`
	return r.queryExpenses(ctx, r.Pool, query, userID)
}

// ListRecurringExpenses returns every recurring expense template.
func (r *PgxExpenseRepository) ListRecurringExpenses(ctx context.Context) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE is_recurring = TRUE AND frequency IS NOT NULL ORDER BY user_id, expense_id;`
	return r.queryExpenses(ctx, r.Pool, query)
}

// SaveExpenseInTx inserts a new expense within tx.
func (r *PgxExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := toModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.ExpenseID, m.UserID, m.AccountID, m.Amount, m.Category, m.DateSpent, m.Description,
		m.IsRecurring, m.Frequency, m.LastRecurredAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: expense with ID %s already exists", apperrors.ErrDuplicate, m.ExpenseID)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// UpdateExpenseInTx overwrites the mutable fields of an expense within tx.
func (r *PgxExpenseRepository) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := toModelExpense(expense)
	query := `
		UPDATE expenses
		SET account_id = $3, amount = $4, category = $5, date_spent = $6, description = $7,
		    is_recurring = $8, frequency = $9, last_updated_at = $10, last_updated_by = $11
		WHERE expense_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ExpenseID, m.UserID, m.AccountID, m.Amount, m.Category, m.DateSpent, m.Description,
		m.IsRecurring, m.Frequency, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		}
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, m.ExpenseID)
	}
	return nil
}

// DeleteExpenseInTx removes an expense within tx.
func (r *PgxExpenseRepository) DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, userID string, expenseID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND user_id = $2;`, expenseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return nil
}

// MarkExpenseRecurredInTx stamps the last materialized occurrence of a recurring expense.
func (r *PgxExpenseRepository) MarkExpenseRecurredInTx(ctx context.Context, tx pgx.Tx, expenseID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `UPDATE expenses SET last_recurred_at = $2 WHERE expense_id = $1;`, expenseID, at)
	if err != nil {
		return fmt.Errorf("failed to mark expense %s recurred: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return nil
}
