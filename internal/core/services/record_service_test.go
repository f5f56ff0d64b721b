package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateIncome_DefaultsCategory(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(testAccount("acc", domain.Checking, "0"))
	svc := services.NewIncomeService(&fakeTxManager{}, ledger, ledger)

	req := incomeReq("acc", "10")
	req.Category = ""
	inc, err := svc.CreateIncome(ctx, ownerID, req)

	require.NoError(t, err)
	assert.Equal(t, domain.IncomeOther, inc.Category)
	assert.False(t, inc.IsRecurring)
	assert.Empty(t, inc.Frequency)
}

func TestCreateIncome_ValidationStopsBeforeTx(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(testAccount("acc", domain.Checking, "0"))
	tm := &fakeTxManager{}
	svc := services.NewIncomeService(tm, ledger, ledger)

	req := incomeReq("acc", "10")
	req.IsRecurring = true
	req.Frequency = domain.Daily

	_, err := svc.CreateIncome(ctx, ownerID, req)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Zero(t, tm.begins)
	assert.True(t, ledger.balance("acc").IsZero())
}

func TestCreateRecords_RejectAmountsBeyondStoredScale(t *testing.T) {
	ctx := context.Background()
	for _, amount := range []string{"0.00001", "10.12345"} {
		t.Run(amount, func(t *testing.T) {
			ledger := newFakeLedger(testAccount("acc", domain.Checking, "100"))
			tm := &fakeTxManager{}

			_, err := services.NewIncomeService(tm, ledger, ledger).CreateIncome(ctx, ownerID, incomeReq("acc", amount))
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			_, err = services.NewExpenseService(tm, ledger, ledger).CreateExpense(ctx, ownerID, expenseReq("acc", amount))
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			assert.Zero(t, tm.begins)
			assert.Equal(t, "100", ledger.balance("acc").String())
		})
	}
}

func TestCreateExpense_WritesAuditEntry(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(testAccount("acc", domain.Checking, "100"))
	audit := new(MockTransactionRepository)
	svc := services.NewExpenseService(&fakeTxManager{}, ledger, ledger, services.WithAuditTrail(audit))

	audit.On("SaveTransactionInTx", ctx, mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TransactionExpense &&
			txn.AccountID == "acc" &&
			txn.Amount.Equal(d("40")) &&
			txn.Category == string(domain.ExpenseGroceries) &&
			txn.TransactionRefID != ""
	})).Return(nil).Once()

	exp, err := svc.CreateExpense(ctx, ownerID, expenseReq("acc", "40"))

	require.NoError(t, err)
	assert.Equal(t, "60", ledger.balance("acc").String())
	assert.Contains(t, ledger.expenses, exp.ExpenseID)
	audit.AssertExpectations(t)
}

func TestCreateIncome_AuditFailureFailsCreate(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(testAccount("acc", domain.Checking, "0"))
	audit := new(MockTransactionRepository)
	tm := &fakeTxManager{}
	svc := services.NewIncomeService(tm, ledger, ledger, services.WithAuditTrail(audit))

	audit.On("SaveTransactionInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(assert.AnError).Once()

	_, err := svc.CreateIncome(ctx, ownerID, incomeReq("acc", "10"))

	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, tm.commits)
}

func TestUpdateIncome_NotFound(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewIncomeService(&fakeTxManager{}, ledger, ledger)

	_, err := svc.UpdateIncome(context.Background(), ownerID, "nope", dto.UpdateIncomeRequest{Amount: ptr(d("5"))})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateExpense_ClearsRecurrence(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(testAccount("acc", domain.Checking, "100"))
	svc := services.NewExpenseService(&fakeTxManager{}, ledger, ledger)

	req := expenseReq("acc", "10")
	req.IsRecurring = true
	req.Frequency = domain.Weekly
	exp, err := svc.CreateExpense(ctx, ownerID, req)
	require.NoError(t, err)

	updated, err := svc.UpdateExpense(ctx, ownerID, exp.ExpenseID, dto.UpdateExpenseRequest{IsRecurring: ptr(false)})

	require.NoError(t, err)
	assert.False(t, updated.IsRecurring)
	assert.Empty(t, updated.Frequency)
	assert.Equal(t, "90", ledger.balance("acc").String(), "no balance change without amount change")
}

func TestGetExpense_OtherUser(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(testAccount("acc", domain.Checking, "100"))
	svc := services.NewExpenseService(&fakeTxManager{}, ledger, ledger)

	exp, err := svc.CreateExpense(ctx, ownerID, expenseReq("acc", "10"))
	require.NoError(t, err)

	_, err = svc.GetExpense(ctx, "someone-else", exp.ExpenseID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
