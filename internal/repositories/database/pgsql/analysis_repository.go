package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAnalysisRepository struct {
	BaseRepository
}

func newPgxAnalysisRepository(pool *pgxpool.Pool) *PgxAnalysisRepository {
	return &PgxAnalysisRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AnalysisRepositoryFacade = (*PgxAnalysisRepository)(nil)

// analysisDocument is the JSONB body of an analyses row.
type analysisDocument struct {
	LiquidBalance domain.LiquidBalance `json:"liquidBalance"`
	Investments   []domain.Holding     `json:"investments"`
	LoanDetails   domain.LoanDetails   `json:"loanDetails"`
}

func toModelAnalysis(d domain.Analysis) (models.Analysis, error) {
	doc, err := json.Marshal(analysisDocument{
		LiquidBalance: d.LiquidBalance,
		Investments:   d.Investments,
		LoanDetails:   d.LoanDetails,
	})
	if err != nil {
		return models.Analysis{}, err
	}
	return models.Analysis{UserID: d.UserID, Document: doc, AuditFields: toModelAudit(d.AuditFields)}, nil
}

func toDomainAnalysis(m models.Analysis) (domain.Analysis, error) {
	var doc analysisDocument
	if err := json.Unmarshal(m.Document, &doc); err != nil {
		return domain.Analysis{}, err
	}
	if doc.Investments == nil {
		doc.Investments = []domain.Holding{}
	}
	return domain.Analysis{
		UserID:        m.UserID,
		LiquidBalance: doc.LiquidBalance,
		Investments:   doc.Investments,
		LoanDetails:   doc.LoanDetails,
		AuditFields:   toDomainAudit(m.AuditFields),
	}, nil
}

// UpsertAnalysis inserts the user's analysis or replaces the existing document.
// The original creation audit fields are kept on replace.
func (r *PgxAnalysisRepository) UpsertAnalysis(ctx context.Context, analysis domain.Analysis) error {
	m, err := toModelAnalysis(analysis)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode analysis document", err)
	}
	query := `
		INSERT INTO analyses (user_id, document, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			document = EXCLUDED.document,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = r.Pool.Exec(ctx, query, m.UserID, m.Document, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save analysis for user "+m.UserID, err)
	}
	return nil
}

// FindAnalysis retrieves the user's analysis document.
func (r *PgxAnalysisRepository) FindAnalysis(ctx context.Context, userID string) (*domain.Analysis, error) {
	query := `
		SELECT user_id, document, created_at, created_by, last_updated_at, last_updated_by
		FROM analyses
		WHERE user_id = $1;
	`
	var m models.Analysis
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.Document,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: analysis for user %s", apperrors.ErrNotFound, userID)
		}
		return nil, apperrors.NewAppError(500, "failed to find analysis for user "+userID, err)
	}

	analysis, err := toDomainAnalysis(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode analysis document", err)
	}
	return &analysis, nil
}

// DeleteAnalysis removes the user's analysis document.
func (r *PgxAnalysisRepository) DeleteAnalysis(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM analyses WHERE user_id = $1;`, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete analysis for user "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: analysis for user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}
