package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one row of a group-by-category sum.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// LoanSchedule is the computed installment plan for one loan account.
type LoanSchedule struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
	EMI          decimal.Decimal `json:"emi"`
	TotalPayable decimal.Decimal `json:"totalPayable"`
}

// AnalyticsSummary is derived on every request from the user's current
// accounts, incomes and expenses. Nothing in it is stored.
type AnalyticsSummary struct {
	NetWorth             decimal.Decimal    `json:"netWorth"`
	LiquidBalance        decimal.Decimal    `json:"liquidBalance"`
	Investments          decimal.Decimal    `json:"investments"`
	Loans                decimal.Decimal    `json:"loans"`
	TotalIncome          decimal.Decimal    `json:"totalIncome"`
	TotalExpenses        decimal.Decimal    `json:"totalExpenses"`
	TaxRate              decimal.Decimal    `json:"taxRate"`
	TaxLiability         decimal.Decimal    `json:"taxLiability"`
	IncomeBreakdown      []CategoryTotal    `json:"incomeBreakdown"`
	ExpenseBreakdown     []CategoryTotal    `json:"expenseBreakdown"`
	CategorizedInflows   CategorizedInflows `json:"categorizedInflows"`
	EssentialOutflows    Outflows           `json:"essentialOutflows"`
	NonEssentialOutflows Outflows           `json:"nonEssentialOutflows"`
	LoanSchedules        []LoanSchedule     `json:"loanSchedules"`
	FinancialHealthScore int                `json:"financialHealthScore"`
}
