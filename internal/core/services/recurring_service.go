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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// maxOccurrencesPerTemplate bounds how far one pass catches up a template
// that has not run for a long time.
const maxOccurrencesPerTemplate = 366

// recurringService materializes due occurrences of recurring incomes and
// expenses. Each occurrence is recorded and its template stamped in one tx.
type recurringService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	incomeRepo  portsrepo.IncomeRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	balances    portsrepo.BalanceMutator
	auditRepo   portsrepo.TransactionWriter
}

// NewRecurringService creates the recurring scheduler service. auditRepo may be nil.
func NewRecurringService(txManager portsrepo.TransactionManager, incomeRepo portsrepo.IncomeRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, balances portsrepo.BalanceMutator, auditRepo portsrepo.TransactionWriter) portssvc.RecurringSvc {
	return &recurringService{
		txManager:   txManager,
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		balances:    balances,
		auditRepo:   auditRepo,
	}
}

var _ portssvc.RecurringSvc = (*recurringService)(nil)

func (s *recurringService) Run(ctx context.Context, now time.Time) (portssvc.RecurringReport, error) {
	var report portssvc.RecurringReport

	incomes, err := s.incomeRepo.ListRecurringIncomes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring incomes")
		return report, fmt.Errorf("failed to list recurring incomes: %w", err)
	}
	expenses, err := s.expenseRepo.ListRecurringExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring expenses")
		return report, fmt.Errorf("failed to list recurring expenses: %w", err)
	}

	for _, tmpl := range incomes {
		s.runIncome(ctx, tmpl, now, &report)
	}
	for _, tmpl := range expenses {
		s.runExpense(ctx, tmpl, now, &report)
	}

	s.LogInfo(ctx, "Recurring pass finished",
		slog.Int("incomes_created", report.IncomesCreated),
		slog.Int("expenses_created", report.ExpensesCreated),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed))
	return report, nil
}

func (s *recurringService) runIncome(ctx context.Context, tmpl domain.Income, now time.Time, report *portssvc.RecurringReport) {
	due, k := tmpl.NextDue(tmpl.DateReceived)
	for n := 0; n < maxOccurrencesPerTemplate && !due.IsZero() && !due.After(now); n++ {
		occurrence := tmpl
		occurrence.IncomeID = uuid.NewString()
		occurrence.DateReceived = due
		occurrence.Recurrence = domain.Recurrence{}
		occurrence.AuditFields = domain.NewAuditFields(tmpl.UserID, now)

		err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
			if err := recordIncomeInTx(ctx, tx, s.balances, s.incomeRepo, s.auditRepo, occurrence); err != nil {
				return err
			}
			return s.incomeRepo.MarkIncomeRecurredInTx(ctx, tx, tmpl.IncomeID, due)
		})
		if err != nil {
			report.Failed++
			s.LogError(ctx, err, "Failed to materialize recurring income",
				slog.String("template_id", tmpl.IncomeID),
				slog.Time("due", due))
			return
		}

		report.IncomesCreated++
		k++
		due = tmpl.Frequency.At(tmpl.DateReceived, k)
	}
}

func (s *recurringService) runExpense(ctx context.Context, tmpl domain.Expense, now time.Time, report *portssvc.RecurringReport) {
	due, k := tmpl.NextDue(tmpl.DateSpent)
	for n := 0; n < maxOccurrencesPerTemplate && !due.IsZero() && !due.After(now); n++ {
		occurrence := tmpl
		occurrence.ExpenseID = uuid.NewString()
		occurrence.DateSpent = due
		occurrence.Recurrence = domain.Recurrence{}
		occurrence.AuditFields = domain.NewAuditFields(tmpl.UserID, now)

		skipped := false
		err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
			err := recordExpenseInTx(ctx, tx, s.balances, s.expenseRepo, s.auditRepo, occurrence)
			switch {
			case errors.Is(err, apperrors.ErrInsufficientFunds):
				// The rejected debit wrote nothing, so the template is still
				// stamped and the occurrence is not retried.
				skipped = true
			case err != nil:
				return err
			}
			return s.expenseRepo.MarkExpenseRecurredInTx(ctx, tx, tmpl.ExpenseID, due)
		})
		switch {
		case err != nil:
			report.Failed++
			s.LogError(ctx, err, "Failed to materialize recurring expense",
				slog.String("template_id", tmpl.ExpenseID),
				slog.Time("due", due))
			return
		case skipped:
			report.Skipped++
			s.LogWarn(ctx, "Skipped recurring expense for insufficient funds",
				slog.String("template_id", tmpl.ExpenseID),
				slog.String("account_id", tmpl.AccountID),
				slog.Time("due", due))
		default:
			report.ExpensesCreated++
		}
		k++
		due = tmpl.Frequency.At(tmpl.DateSpent, k)
	}
}
