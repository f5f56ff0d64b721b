package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsFixture() *fakeLedger {
	ledger := newFakeLedger(
		testAccount("checking", domain.Checking, "500"),
		testAccount("brokerage", domain.Investment, "1000"),
		testAccount("car-loan", domain.Loan, "200"),
	)
	ledger.incomes["i1"] = domain.Income{IncomeID: "i1", UserID: ownerID, Amount: d("1000"), Category: domain.IncomeSalary}
	ledger.expenses["e1"] = domain.Expense{ExpenseID: "e1", UserID: ownerID, Amount: d("100"), Category: domain.ExpenseRent}
	ledger.expenses["e2"] = domain.Expense{ExpenseID: "e2", UserID: ownerID, Amount: d("50"), Category: domain.ExpenseDiningOut}
	return ledger
}

func TestAnalyticsSummary(t *testing.T) {
	ledger := analyticsFixture()
	svc := services.NewAnalyticsService(ledger, ledger, ledger, d("0.25"), map[string]bool{"Rent": true})

	summary, err := svc.Summary(context.Background(), ownerID, portssvc.SummaryOptions{})
	require.NoError(t, err)

	assert.Equal(t, "1300", summary.NetWorth.String())
	assert.Equal(t, "500", summary.LiquidBalance.String())
	assert.Equal(t, "1000", summary.Investments.String())
	assert.Equal(t, "200", summary.Loans.String())
	assert.Equal(t, "150", summary.TotalExpenses.String())
	assert.Equal(t, "450", summary.TaxLiability.String())
	assert.Equal(t, "100", summary.EssentialOutflows.Total.String())
	assert.Equal(t, "50", summary.NonEssentialOutflows.Total.String())
	assert.Equal(t, "1000", summary.CategorizedInflows.Salary.String())
	assert.Equal(t, 100, summary.FinancialHealthScore)

	require.Len(t, summary.ExpenseBreakdown, 2)
	assert.Equal(t, "Dining Out", summary.ExpenseBreakdown[0].Category)
	assert.Equal(t, "Rent", summary.ExpenseBreakdown[1].Category)

	require.Len(t, summary.LoanSchedules, 1)
	assert.Equal(t, "car-loan", summary.LoanSchedules[0].AccountID)
	assert.Equal(t, domain.DefaultLoanTermMonths, summary.LoanSchedules[0].TermMonths)
}

func TestAnalyticsSummary_Overrides(t *testing.T) {
	ledger := newFakeLedger(domain.Account{
		AccountID: "mortgage", UserID: ownerID, Name: "Mortgage", AccountType: domain.Loan,
		Balance: d("100000"), InterestRate: d("10"), LoanTermMonths: 120,
	})
	ledger.expenses["e1"] = domain.Expense{ExpenseID: "e1", UserID: ownerID, Amount: d("150"), Category: domain.ExpenseRent}
	svc := services.NewAnalyticsService(ledger, ledger, ledger, d("0.25"), nil)

	summary, err := svc.Summary(context.Background(), ownerID, portssvc.SummaryOptions{
		TaxRate:        ptr(d("0.1")),
		LoanTermMonths: ptr(60),
	})
	require.NoError(t, err)

	assert.Equal(t, "180", summary.TaxLiability.String())
	assert.Equal(t, "-100000", summary.NetWorth.String())
	require.Len(t, summary.LoanSchedules, 1)
	assert.Equal(t, 60, summary.LoanSchedules[0].TermMonths)
	assert.Equal(t, "2124.70", summary.LoanSchedules[0].EMI.StringFixed(2))
	assert.Equal(t, "127482.00", summary.LoanSchedules[0].TotalPayable.StringFixed(2))
}

func TestAnalyticsSummary_RejectsTaxRate(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAnalyticsService(ledger, ledger, ledger, d("0.25"), nil)

	_, err := svc.Summary(context.Background(), ownerID, portssvc.SummaryOptions{TaxRate: ptr(d("1.5"))})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAnalyticsSummary_Empty(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAnalyticsService(ledger, ledger, ledger, d("0.25"), nil)

	summary, err := svc.Summary(context.Background(), ownerID, portssvc.SummaryOptions{})
	require.NoError(t, err)
	assert.True(t, summary.NetWorth.IsZero())
	assert.Equal(t, 0, summary.FinancialHealthScore)
	assert.NotNil(t, summary.LoanSchedules)
}
