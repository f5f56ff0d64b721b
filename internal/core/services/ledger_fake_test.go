package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// fakeLedger is an in-memory store for accounts, incomes and expenses. Balance
// changes are applied all-or-nothing, matching one database transaction, and
// every applied change is recorded.
type fakeLedger struct {
	accounts map[string]domain.Account
	incomes  map[string]domain.Income
	expenses map[string]domain.Expense
	applied  []domain.BalanceChange
}

var (
	_ portsrepo.AccountRepositoryFacade = (*fakeLedger)(nil)
	_ portsrepo.IncomeRepositoryFacade  = (*fakeLedger)(nil)
	_ portsrepo.ExpenseRepositoryFacade = (*fakeLedger)(nil)
)

func newFakeLedger(accounts ...domain.Account) *fakeLedger {
	l := &fakeLedger{
		accounts: map[string]domain.Account{},
		incomes:  map[string]domain.Income{},
		expenses: map[string]domain.Expense{},
	}
	for _, acc := range accounts {
		l.accounts[acc.AccountID] = acc
	}
	return l
}

func (l *fakeLedger) balance(accountID string) decimal.Decimal {
	return l.accounts[accountID].Balance
}

// --- accounts ---

func (l *fakeLedger) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	acc, ok := l.accounts[accountID]
	if !ok || acc.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (l *fakeLedger) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	return l.FindAllAccounts(ctx, userID)
}

func (l *fakeLedger) FindAllAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	out := []domain.Account{}
	for _, acc := range l.accounts {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (l *fakeLedger) SaveAccount(ctx context.Context, account domain.Account) error {
	l.accounts[account.AccountID] = account
	return nil
}

func (l *fakeLedger) UpdateAccount(ctx context.Context, account domain.Account) error {
	if _, ok := l.accounts[account.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	account.Balance = l.accounts[account.AccountID].Balance
	l.accounts[account.AccountID] = account
	return nil
}

func (l *fakeLedger) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := l.FindAccountByID(ctx, userID, accountID); err != nil {
		return err
	}
	delete(l.accounts, accountID)
	return nil
}

func (l *fakeLedger) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		acc, err := l.FindAccountByID(ctx, userID, id)
		if err != nil {
			return nil, fmt.Errorf("%w: missing %s", apperrors.ErrNotFound, id)
		}
		out[id] = *acc
	}
	return out, nil
}

func (l *fakeLedger) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, userID string, changes []domain.BalanceChange, now time.Time) error {
	merged := domain.MergeBalanceChanges(changes)
	for _, ch := range merged {
		acc, err := l.FindAccountByID(ctx, userID, ch.AccountID)
		if err != nil {
			return err
		}
		if ch.RequireSufficientFunds && ch.Delta.IsNegative() && acc.Balance.Add(ch.Delta).IsNegative() {
			return apperrors.ErrInsufficientFunds
		}
	}
	for _, ch := range merged {
		acc := l.accounts[ch.AccountID]
		acc.Balance = acc.Balance.Add(ch.Delta)
		acc.LastUpdatedAt = now
		l.accounts[ch.AccountID] = acc
		l.applied = append(l.applied, ch)
	}
	return nil
}

func (l *fakeLedger) ApplyBalanceChanges(ctx context.Context, userID string, changes []domain.BalanceChange) error {
	return l.ApplyBalanceChangesInTx(ctx, nil, userID, changes, time.Now())
}

// --- incomes ---

func (l *fakeLedger) FindIncomeByID(ctx context.Context, userID string, incomeID string) (*domain.Income, error) {
	inc, ok := l.incomes[incomeID]
	if !ok || inc.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &inc, nil
}

func (l *fakeLedger) ListIncomes(ctx context.Context, userID string, limit int, offset int) ([]domain.Income, error) {
	return l.FindAllIncomes(ctx, userID)
}

func (l *fakeLedger) FindAllIncomes(ctx context.Context, userID string) ([]domain.Income, error) {
	out := []domain.Income{}
	for _, inc := range l.incomes {
		if inc.UserID == userID {
			out = append(out, inc)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListRecurringIncomes(ctx context.Context) ([]domain.Income, error) {
	out := []domain.Income{}
	for _, inc := range l.incomes {
		if inc.IsRecurring {
			out = append(out, inc)
		}
	}
	return out, nil
}

func (l *fakeLedger) FindIncomeByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, incomeID string) (*domain.Income, error) {
	return l.FindIncomeByID(ctx, userID, incomeID)
}

func (l *fakeLedger) SaveIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	l.incomes[income.IncomeID] = income
	return nil
}

func (l *fakeLedger) UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	l.incomes[income.IncomeID] = income
	return nil
}

func (l *fakeLedger) DeleteIncomeInTx(ctx context.Context, tx pgx.Tx, userID string, incomeID string) error {
	delete(l.incomes, incomeID)
	return nil
}

func (l *fakeLedger) MarkIncomeRecurredInTx(ctx context.Context, tx pgx.Tx, incomeID string, at time.Time) error {
	inc := l.incomes[incomeID]
	inc.LastRecurredAt = &at
	l.incomes[incomeID] = inc
	return nil
}

// --- expenses ---

func (l *fakeLedger) FindExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	exp, ok := l.expenses[expenseID]
	if !ok || exp.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &exp, nil
}

func (l *fakeLedger) ListExpenses(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error) {
	return l.FindAllExpenses(ctx, userID)
}

func (l *fakeLedger) FindAllExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	out := []domain.Expense{}
	for _, exp := range l.expenses {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListRecurringExpenses(ctx context.Context) ([]domain.Expense, error) {
	out := []domain.Expense{}
	for _, exp := range l.expenses {
		if exp.IsRecurring {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (l *fakeLedger) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, expenseID string) (*domain.Expense, error) {
	return l.FindExpenseByID(ctx, userID, expenseID)
}

func (l *fakeLedger) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	l.expenses[expense.ExpenseID] = expense
	return nil
}

func (l *fakeLedger) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	l.expenses[expense.ExpenseID] = expense
	return nil
}

func (l *fakeLedger) DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, userID string, expenseID string) error {
	delete(l.expenses, expenseID)
	return nil
}

func (l *fakeLedger) MarkExpenseRecurredInTx(ctx context.Context, tx pgx.Tx, expenseID string, at time.Time) error {
	exp := l.expenses[expenseID]
	exp.LastRecurredAt = &at
	l.expenses[expenseID] = exp
	return nil
}
