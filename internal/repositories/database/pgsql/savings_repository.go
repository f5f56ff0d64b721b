package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSavingsGoalRepository struct {
	BaseRepository
}

func newPgxSavingsGoalRepository(pool *pgxpool.Pool) *PgxSavingsGoalRepository {
	return &PgxSavingsGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*PgxSavingsGoalRepository)(nil)

const goalColumns = `goal_id, user_id, goal_name, target_amount, saved_amount, priority, start_date, end_date,
	status, notes, created_at, created_by, last_updated_at, last_updated_by`

func toModelGoal(d domain.SavingsGoal) models.SavingsGoal {
	return models.SavingsGoal{
		GoalID:       d.GoalID,
		UserID:       d.UserID,
		GoalName:     d.GoalName,
		TargetAmount: d.TargetAmount,
		SavedAmount:  d.SavedAmount,
		Priority:     d.Priority,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Status:       string(d.Status),
		Notes:        d.Notes,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

func toDomainGoal(m models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		GoalID:       m.GoalID,
		UserID:       m.UserID,
		GoalName:     m.GoalName,
		TargetAmount: m.TargetAmount,
		SavedAmount:  m.SavedAmount,
		Priority:     m.Priority,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Status:       domain.GoalStatus(m.Status),
		Notes:        m.Notes,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

func scanGoal(row pgx.Row) (domain.SavingsGoal, error) {
	var m models.SavingsGoal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.GoalName,
		&m.TargetAmount,
		&m.SavedAmount,
		&m.Priority,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.SavingsGoal{}, err
	}
	return toDomainGoal(m), nil
}

// SaveGoal inserts a new savings goal.
func (r *PgxSavingsGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m := toModelGoal(goal)
	query := `
		INSERT INTO savings_goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.UserID, m.GoalName, m.TargetAmount, m.SavedAmount, m.Priority, m.StartDate, m.EndDate,
		m.Status, m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: savings goal with ID %s already exists", apperrors.ErrDuplicate, m.GoalID)
		}
		return fmt.Errorf("failed to save savings goal %s: %w", m.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves a goal owned by userID.
func (r *PgxSavingsGoalRepository) FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE goal_id = $1 AND user_id = $2;`
	goal, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, goalID)
		}
		return nil, fmt.Errorf("failed to find savings goal %s: %w", goalID, err)
	}
	return &goal, nil
}

// ListGoals returns a page of goals, highest priority first.
func (r *PgxSavingsGoalRepository) ListGoals(ctx context.Context, userID string, limit int, offset int) ([]domain.SavingsGoal, error) {
	limit, offset = normalizePage(limit, offset)
	query := `
		SELECT ` + goalColumns + `
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY priority, end_date, goal_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings goals for user %s: %w", userID, err)
	}
	defer rows.Close()

	goals := []domain.SavingsGoal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan savings goal row: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings goal rows: %w", err)
	}
	return goals, nil
}

// UpdateGoal overwrites a goal's mutable fields.
func (r *PgxSavingsGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m := toModelGoal(goal)
	query := `
		UPDATE savings_goals
		SET goal_name = $3, target_amount = $4, saved_amount = $5, priority = $6, start_date = $7,
		    end_date = $8, status = $9, notes = $10, last_updated_at = $11, last_updated_by = $12
		WHERE goal_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.UserID, m.GoalName, m.TargetAmount, m.SavedAmount, m.Priority, m.StartDate,
		m.EndDate, m.Status, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings goal %s: %w", m.GoalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, m.GoalID)
	}
	return nil
}

// DeleteGoal removes a goal.
func (r *PgxSavingsGoalRepository) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM savings_goals WHERE goal_id = $1 AND user_id = $2;`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete savings goal %s: %w", goalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, goalID)
	}
	return nil
}
