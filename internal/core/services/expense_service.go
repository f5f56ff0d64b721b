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

// expenseService records expenses and applies their balance effects in the
// same database transaction.
type expenseService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	expenseRepo portsrepo.ExpenseRepositoryFacade
	balances    portsrepo.BalanceMutator
	auditRepo   portsrepo.TransactionWriter
	clock       func() time.Time
}

// NewExpenseService creates a new expense service.
func NewExpenseService(txManager portsrepo.TransactionManager, expenseRepo portsrepo.ExpenseRepositoryFacade, balances portsrepo.BalanceMutator, options ...RecordServiceOption) portssvc.ExpenseSvcFacade {
	o := buildRecordOptions(options)
	return &expenseService{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		balances:    balances,
		auditRepo:   o.auditRepo,
		clock:       o.clock,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	category := req.Category
	if category == "" {
		category = domain.ExpenseOther
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Category:    category,
		DateSpent:   req.DateSpent.UTC(),
		Description: req.Description,
		Recurrence:  domain.Recurrence{IsRecurring: req.IsRecurring},
		AuditFields: domain.NewAuditFields(userID, s.clock()),
	}
	if req.IsRecurring {
		expense.Frequency = req.Frequency
	}

	if err := s.RecordExpense(ctx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *expenseService) RecordExpense(ctx context.Context, expense domain.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}

	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		return recordExpenseInTx(ctx, tx, s.balances, s.expenseRepo, s.auditRepo, expense)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogWarn(ctx, "Expense rejected for insufficient funds",
				slog.String("account_id", expense.AccountID),
				slog.String("amount", expense.Amount.String()))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record expense",
				slog.String("expense_id", expense.ExpenseID),
				slog.String("account_id", expense.AccountID))
		}
		return err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("account_id", expense.AccountID),
		slog.String("amount", expense.Amount.String()))
	return nil
}

// recordExpenseInTx debits the account, refusing to overdraw it, stores the
// expense and, when audit is set, writes the matching audit entry.
func recordExpenseInTx(ctx context.Context, tx pgx.Tx, balances portsrepo.BalanceMutator, expenses portsrepo.ExpenseWriter, audit portsrepo.TransactionWriter, expense domain.Expense) error {
	if err := balances.ApplyBalanceChangesInTx(ctx, tx, expense.UserID, []domain.BalanceChange{expense.BalanceEffect()}, expense.CreatedAt); err != nil {
		return err
	}
	if err := expenses.SaveExpenseInTx(ctx, tx, expense); err != nil {
		return err
	}
	if audit != nil {
		if err := audit.SaveTransactionInTx(ctx, tx, domain.AuditEntryForExpense(expense, uuid.NewString())); err != nil {
			return fmt.Errorf("failed to write audit entry: %w", err)
		}
	}
	return nil
}

func (s *expenseService) GetExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	var updated domain.Expense
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, userID, expenseID)
		if err != nil {
			return err
		}

		updated = applyExpenseUpdate(*current, req)
		if err := updated.Validate(); err != nil {
			return err
		}

		now := s.clock()
		updated.Touch(userID, now)
		if err := s.balances.ApplyBalanceChangesInTx(ctx, tx, userID, current.UpdateEffects(updated), now); err != nil {
			return err
		}
		return s.expenseRepo.UpdateExpenseInTx(ctx, tx, updated)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return &updated, nil
}

func applyExpenseUpdate(expense domain.Expense, req dto.UpdateExpenseRequest) domain.Expense {
	if req.AccountID != nil {
		expense.AccountID = *req.AccountID
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.DateSpent != nil {
		expense.DateSpent = req.DateSpent.UTC()
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.IsRecurring != nil {
		expense.IsRecurring = *req.IsRecurring
	}
	if req.Frequency != nil {
		expense.Frequency = *req.Frequency
	}
	if !expense.IsRecurring {
		expense.Frequency = ""
		expense.LastRecurredAt = nil
	}
	return expense
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) error {
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		expense, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, userID, expenseID)
		if err != nil {
			return err
		}
		if err := s.balances.ApplyBalanceChangesInTx(ctx, tx, userID, []domain.BalanceChange{expense.ReversalEffect()}, s.clock()); err != nil {
			return err
		}
		return s.expenseRepo.DeleteExpenseInTx(ctx, tx, userID, expenseID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		}
		return err
	}

	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
