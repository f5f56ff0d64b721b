package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// incomeService records incomes and applies their balance effects in the
// same database transaction.
type incomeService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	incomeRepo portsrepo.IncomeRepositoryFacade
	balances   portsrepo.BalanceMutator
	auditRepo  portsrepo.TransactionWriter
	clock      func() time.Time
}

// RecordServiceOption configures the income and expense services.
type RecordServiceOption func(*recordOptions)

type recordOptions struct {
	auditRepo portsrepo.TransactionWriter
	clock     func() time.Time
}

// WithAuditTrail makes record creation also write an audit-trail entry.
func WithAuditTrail(repo portsrepo.TransactionWriter) RecordServiceOption {
	return func(o *recordOptions) {
		o.auditRepo = repo
	}
}

// WithRecordClock overrides the time source used for audit stamps.
func WithRecordClock(clock func() time.Time) RecordServiceOption {
	return func(o *recordOptions) {
		o.clock = clock
	}
}

func buildRecordOptions(options []RecordServiceOption) recordOptions {
	o := recordOptions{clock: func() time.Time { return time.Now().UTC() }}
	for _, option := range options {
		option(&o)
	}
	return o
}

// NewIncomeService creates a new income service.
func NewIncomeService(txManager portsrepo.TransactionManager, incomeRepo portsrepo.IncomeRepositoryFacade, balances portsrepo.BalanceMutator, options ...RecordServiceOption) portssvc.IncomeSvcFacade {
	o := buildRecordOptions(options)
	return &incomeService{
		txManager:  txManager,
		incomeRepo: incomeRepo,
		balances:   balances,
		auditRepo:  o.auditRepo,
		clock:      o.clock,
	}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

func (s *incomeService) CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	category := req.Category
	if category == "" {
		category = domain.IncomeOther
	}

	income := domain.Income{
		IncomeID:     uuid.NewString(),
		UserID:       userID,
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		Source:       req.Source,
		Category:     category,
		DateReceived: req.DateReceived.UTC(),
		Description:  req.Description,
		Recurrence:   domain.Recurrence{IsRecurring: req.IsRecurring},
		AuditFields:  domain.NewAuditFields(userID, s.clock()),
	}
	if req.IsRecurring {
		income.Frequency = req.Frequency
	}

	if err := s.RecordIncome(ctx, income); err != nil {
		return nil, err
	}
	return &income, nil
}

func (s *incomeService) RecordIncome(ctx context.Context, income domain.Income) error {
	if err := income.Validate(); err != nil {
		return err
	}

	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		return recordIncomeInTx(ctx, tx, s.balances, s.incomeRepo, s.auditRepo, income)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record income",
				slog.String("income_id", income.IncomeID),
				slog.String("account_id", income.AccountID))
		}
		return err
	}

	s.LogInfo(ctx, "Income recorded",
		slog.String("income_id", income.IncomeID),
		slog.String("account_id", income.AccountID),
		slog.String("amount", income.Amount.String()))
	return nil
}

// recordIncomeInTx credits the account, stores the income and, when audit
// is set, writes the matching audit entry.
func recordIncomeInTx(ctx context.Context, tx pgx.Tx, balances portsrepo.BalanceMutator, incomes portsrepo.IncomeWriter, audit portsrepo.TransactionWriter, income domain.Income) error {
	if err := balances.ApplyBalanceChangesInTx(ctx, tx, income.UserID, []domain.BalanceChange{income.BalanceEffect()}, income.CreatedAt); err != nil {
		return err
	}
	if err := incomes.SaveIncomeInTx(ctx, tx, income); err != nil {
		return err
	}
	if audit != nil {
		if err := audit.SaveTransactionInTx(ctx, tx, domain.AuditEntryForIncome(income, uuid.NewString())); err != nil {
			return fmt.Errorf("failed to write audit entry: %w", err)
		}
	}
	return nil
}

func (s *incomeService) GetIncome(ctx context.Context, userID string, incomeID string) (*domain.Income, error) {
	income, err := s.incomeRepo.FindIncomeByID(ctx, userID, incomeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find income", slog.String("income_id", incomeID))
		}
		return nil, err
	}
	return income, nil
}

func (s *incomeService) ListIncomes(ctx context.Context, userID string, limit int, offset int) ([]domain.Income, error) {
	incomes, err := s.incomeRepo.ListIncomes(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list incomes")
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	if incomes == nil {
		return []domain.Income{}, nil
	}
	return incomes, nil
}

func (s *incomeService) UpdateIncome(ctx context.Context, userID string, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error) {
	var updated domain.Income
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.incomeRepo.FindIncomeByIDForUpdate(ctx, tx, userID, incomeID)
		if err != nil {
			return err
		}

		updated = applyIncomeUpdate(*current, req)
		if err := updated.Validate(); err != nil {
			return err
		}

		now := s.clock()
		updated.Touch(userID, now)
		if err := s.balances.ApplyBalanceChangesInTx(ctx, tx, userID, current.UpdateEffects(updated), now); err != nil {
			return err
		}
		return s.incomeRepo.UpdateIncomeInTx(ctx, tx, updated)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update income", slog.String("income_id", incomeID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Income updated", slog.String("income_id", incomeID))
	return &updated, nil
}

func applyIncomeUpdate(income domain.Income, req dto.UpdateIncomeRequest) domain.Income {
	if req.AccountID != nil {
		income.AccountID = *req.AccountID
	}
	if req.Amount != nil {
		income.Amount = *req.Amount
	}
	if req.Source != nil {
		income.Source = *req.Source
	}
	if req.Category != nil {
		income.Category = *req.Category
	}
	if req.DateReceived != nil {
		income.DateReceived = req.DateReceived.UTC()
	}
	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.IsRecurring != nil {
		income.IsRecurring = *req.IsRecurring
	}
	if req.Frequency != nil {
		income.Frequency = *req.Frequency
	}
	if !income.IsRecurring {
		income.Frequency = ""
		income.LastRecurredAt = nil
	}
	return income
}

func (s *incomeService) DeleteIncome(ctx context.Context, userID string, incomeID string) error {
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		income, err := s.incomeRepo.FindIncomeByIDForUpdate(ctx, tx, userID, incomeID)
		if err != nil {
			return err
		}
		if err := s.balances.ApplyBalanceChangesInTx(ctx, tx, userID, []domain.BalanceChange{income.ReversalEffect()}, s.clock()); err != nil {
			return err
		}
		return s.incomeRepo.DeleteIncomeInTx(ctx, tx, userID, incomeID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete income", slog.String("income_id", incomeID))
		}
		return err
	}

	s.LogInfo(ctx, "Income deleted", slog.String("income_id", incomeID))
	return nil
}
