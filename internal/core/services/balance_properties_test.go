package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerID = "user-1"

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func ptr[T any](v T) *T { return &v }

func testAccount(id string, t domain.AccountType, balance string) domain.Account {
	return domain.Account{
		AccountID:   id,
		UserID:      ownerID,
		Name:        id,
		AccountType: t,
		Balance:     d(balance),
		Currency:    "USD",
	}
}

type ledgerServices struct {
	ledger  *fakeLedger
	tm      *fakeTxManager
	income  portssvc.IncomeSvcFacade
	expense portssvc.ExpenseSvcFacade
}

func newLedgerServices(accounts ...domain.Account) ledgerServices {
	ledger := newFakeLedger(accounts...)
	tm := &fakeTxManager{}
	return ledgerServices{
		ledger:  ledger,
		tm:      tm,
		income:  services.NewIncomeService(tm, ledger, ledger),
		expense: services.NewExpenseService(tm, ledger, ledger),
	}
}

func incomeReq(accountID, amount string) dto.CreateIncomeRequest {
	return dto.CreateIncomeRequest{
		AccountID:    accountID,
		Amount:       d(amount),
		Source:       domain.SourceJob,
		Category:     domain.IncomeSalary,
		DateReceived: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func expenseReq(accountID, amount string) dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		AccountID: accountID,
		Amount:    d(amount),
		Category:  domain.ExpenseGroceries,
		DateSpent: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestBalance_SequenceOfRecords(t *testing.T) {
	ctx := context.Background()
	svc := newLedgerServices(testAccount("acc", domain.Checking, "1000"))

	ops := []struct {
		income bool
		amount string
	}{
		{true, "250.10"}, {false, "99.99"}, {true, "0.01"}, {false, "300"}, {false, "12.50"}, {true, "1500"},
	}

	want := d("1000")
	for _, op := range ops {
		if op.income {
			_, err := svc.income.CreateIncome(ctx, ownerID, incomeReq("acc", op.amount))
			require.NoError(t, err)
			want = want.Add(d(op.amount))
		} else {
			_, err := svc.expense.CreateExpense(ctx, ownerID, expenseReq("acc", op.amount))
			require.NoError(t, err)
			want = want.Sub(d(op.amount))
		}
	}

	assert.True(t, want.Equal(svc.ledger.balance("acc")), "want %s got %s", want, svc.ledger.balance("acc"))
	assert.Equal(t, "2337.62", svc.ledger.balance("acc").StringFixed(2))
	assert.Equal(t, len(ops), svc.tm.commits)
}

func TestBalance_DeleteRestores(t *testing.T) {
	ctx := context.Background()
	svc := newLedgerServices(testAccount("acc", domain.Savings, "500"))

	exp, err := svc.expense.CreateExpense(ctx, ownerID, expenseReq("acc", "120"))
	require.NoError(t, err)
	inc, err := svc.income.CreateIncome(ctx, ownerID, incomeReq("acc", "75"))
	require.NoError(t, err)
	require.Equal(t, "455", svc.ledger.balance("acc").String())

	require.NoError(t, svc.expense.DeleteExpense(ctx, ownerID, exp.ExpenseID))
	assert.Equal(t, "575", svc.ledger.balance("acc").String(), "expense delete gives back +A")

	require.NoError(t, svc.income.DeleteIncome(ctx, ownerID, inc.IncomeID))
	assert.Equal(t, "500", svc.ledger.balance("acc").String(), "income delete takes back -A")

	_, err = svc.ledger.FindExpenseByID(ctx, ownerID, exp.ExpenseID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBalance_UpdateAppliesDifference(t *testing.T) {
	ctx := context.Background()
	svc := newLedgerServices(testAccount("acc", domain.Checking, "200"))

	exp, err := svc.expense.CreateExpense(ctx, ownerID, expenseReq("acc", "50"))
	require.NoError(t, err)
	require.Equal(t, "150", svc.ledger.balance("acc").String())

	svc.ledger.applied = nil
	updated, err := svc.expense.UpdateExpense(ctx, ownerID, exp.ExpenseID, dto.UpdateExpenseRequest{Amount: ptr(d("80"))})
	require.NoError(t, err)

	assert.Equal(t, "80", updated.Amount.String())
	assert.Equal(t, "120", svc.ledger.balance("acc").String())
	require.Len(t, svc.ledger.applied, 1)
	assert.Equal(t, "-30", svc.ledger.applied[0].Delta.String())
}

func TestBalance_UpdateReassignsAccount(t *testing.T) {
	ctx := context.Background()
	svc := newLedgerServices(testAccount("a", domain.Checking, "100"), testAccount("b", domain.Savings, "100"))

	inc, err := svc.income.CreateIncome(ctx, ownerID, incomeReq("a", "40"))
	require.NoError(t, err)

	_, err = svc.income.UpdateIncome(ctx, ownerID, inc.IncomeID, dto.UpdateIncomeRequest{
		AccountID: ptr("b"),
		Amount:    ptr(d("60")),
	})
	require.NoError(t, err)

	assert.Equal(t, "100", svc.ledger.balance("a").String())
	assert.Equal(t, "160", svc.ledger.balance("b").String())
}

func TestBalance_UpdateDoesNotCheckFunds(t *testing.T) {
	ctx := context.Background()
	svc := newLedgerServices(testAccount("acc", domain.Checking, "60"))

	exp, err := svc.expense.CreateExpense(ctx, ownerID, expenseReq("acc", "50"))
	require.NoError(t, err)

	_, err = svc.expense.UpdateExpense(ctx, ownerID, exp.ExpenseID, dto.UpdateExpenseRequest{Amount: ptr(d("500"))})
	require.NoError(t, err)
	assert.Equal(t, "-440", svc.ledger.balance("acc").String())
}

func TestBalance_ExpenseInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	svc := newLedgerServices(testAccount("acc", domain.Checking, "30"))

	_, err := svc.expense.CreateExpense(ctx, ownerID, expenseReq("acc", "30.01"))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, "30", svc.ledger.balance("acc").String())
	assert.Empty(t, svc.ledger.expenses)
	assert.Zero(t, svc.tm.commits)
}

func TestBalance_RecordOnMissingAccount(t *testing.T) {
	ctx := context.Background()
	svc := newLedgerServices()

	_, err := svc.income.CreateIncome(ctx, ownerID, incomeReq("ghost", "10"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, svc.ledger.incomes)
}

func TestTransfer_Property(t *testing.T) {
	ctx := context.Background()

	for _, amount := range []string{"0.01", "1", "37.5", "99.99", "100"} {
		t.Run(amount, func(t *testing.T) {
			ledger := newFakeLedger(testAccount("x", domain.Checking, "100"), testAccount("y", domain.Savings, "50"))
			svc := services.NewAccountService(&fakeTxManager{}, ledger)

			from, to, err := svc.Transfer(ctx, ownerID, "x", "y", d(amount))
			require.NoError(t, err)

			assert.True(t, d("100").Sub(d(amount)).Equal(ledger.balance("x")))
			assert.True(t, d("50").Add(d(amount)).Equal(ledger.balance("y")))
			assert.True(t, from.Balance.Equal(ledger.balance("x")))
			assert.True(t, to.Balance.Equal(ledger.balance("y")))
		})
	}

	for _, amount := range []string{"100.01", "250"} {
		t.Run("rejects "+amount, func(t *testing.T) {
			ledger := newFakeLedger(testAccount("x", domain.Checking, "100"), testAccount("y", domain.Savings, "50"))
			svc := services.NewAccountService(&fakeTxManager{}, ledger)

			_, _, err := svc.Transfer(ctx, ownerID, "x", "y", d(amount))
			assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
			assert.Equal(t, "100", ledger.balance("x").String())
			assert.Equal(t, "50", ledger.balance("y").String())
			assert.Empty(t, ledger.applied)
		})
	}
}
