package accounting

import (
	"sort"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	one         = decimal.NewFromInt(1)
	monthsInYr  = decimal.NewFromInt(12)
	pctPerMonth = decimal.NewFromInt(1200)
)

// LiquidBalance sums balances of savings and checking accounts.
func LiquidBalance(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.AccountType.IsLiquid() {
			total = total.Add(acc.Balance)
		}
	}
	return total
}

// InvestmentTotal sums balances of investment accounts.
func InvestmentTotal(accounts []domain.Account) decimal.Decimal {
	return sumByType(accounts, domain.Investment)
}

// LoanTotal sums balances of loan accounts.
func LoanTotal(accounts []domain.Account) decimal.Decimal {
	return sumByType(accounts, domain.Loan)
}

// NetWorth is liquid balance plus investments minus loans.
func NetWorth(accounts []domain.Account) decimal.Decimal {
	return LiquidBalance(accounts).Add(InvestmentTotal(accounts)).Sub(LoanTotal(accounts))
}

func sumByType(accounts []domain.Account, t domain.AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.AccountType == t {
			total = total.Add(acc.Balance)
		}
	}
	return total
}

// EMI computes the equated monthly installment for a loan of principal at
// annualRatePct percent per year over months:
//
//	EMI = P·r·(1+r)^n / ((1+r)^n − 1), r = annualRatePct / 1200
//
// The result is rounded to 2 decimal places. A zero rate spreads the
// principal evenly; a non-positive term yields zero.
func EMI(principal, annualRatePct decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || principal.IsZero() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	if annualRatePct.IsZero() {
		return principal.Div(n).Round(2)
	}
	r := annualRatePct.Div(pctPerMonth)
	factor := one.Add(r).Pow(n).Round(24)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(one)).Round(2)
}

// TotalPayable is the installment times the number of payments.
func TotalPayable(emi decimal.Decimal, months int) decimal.Decimal {
	return emi.Mul(decimal.NewFromInt(int64(months)))
}

// SumExpenses totals expense amounts.
func SumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SumIncomes totals income amounts.
func SumIncomes(incomes []domain.Income) decimal.Decimal {
	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.Amount)
	}
	return total
}

// TaxLiability annualizes summed expenses and applies rate:
// (Σ expense.amount × 12) × rate. The base is expenses, not incomes.
func TaxLiability(expenses []domain.Expense, rate decimal.Decimal) decimal.Decimal {
	return SumExpenses(expenses).Mul(monthsInYr).Mul(rate).Round(2)
}

// CategoryBreakdown groups records by category and sums their amounts.
// Output is sorted by category name.
func CategoryBreakdown[T any](records []T, category func(T) string, amount func(T) decimal.Decimal) []domain.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, rec := range records {
		c := category(rec)
		totals[c] = totals[c].Add(amount(rec))
	}
	out := make([]domain.CategoryTotal, 0, len(totals))
	for c, t := range totals {
		out = append(out, domain.CategoryTotal{Category: c, Total: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// ExpenseBreakdown is CategoryBreakdown over expenses.
func ExpenseBreakdown(expenses []domain.Expense) []domain.CategoryTotal {
	return CategoryBreakdown(expenses,
		func(e domain.Expense) string { return string(e.Category) },
		func(e domain.Expense) decimal.Decimal { return e.Amount })
}

// IncomeBreakdown is CategoryBreakdown over incomes.
func IncomeBreakdown(incomes []domain.Income) []domain.CategoryTotal {
	return CategoryBreakdown(incomes,
		func(i domain.Income) string { return string(i.Category) },
		func(i domain.Income) decimal.Decimal { return i.Amount })
}

// EssentialSplit partitions expense totals by whether the category is in essential.
func EssentialSplit(expenses []domain.Expense, essential map[string]bool) (domain.Outflows, domain.Outflows) {
	ess := domain.Outflows{Total: decimal.Zero, Breakdown: map[string]decimal.Decimal{}}
	non := domain.Outflows{Total: decimal.Zero, Breakdown: map[string]decimal.Decimal{}}
	for _, e := range expenses {
		bucket := &non
		if essential[string(e.Category)] {
			bucket = &ess
		}
		bucket.Total = bucket.Total.Add(e.Amount)
		bucket.Breakdown[string(e.Category)] = bucket.Breakdown[string(e.Category)].Add(e.Amount)
	}
	return ess, non
}

// Inflows buckets incomes into salary, business, freelance and everything else.
func Inflows(incomes []domain.Income) domain.CategorizedInflows {
	in := domain.CategorizedInflows{
		Salary:         decimal.Zero,
		BusinessIncome: decimal.Zero,
		Freelance:      decimal.Zero,
		OtherSources:   decimal.Zero,
	}
	for _, i := range incomes {
		switch i.Category {
		case domain.IncomeSalary:
			in.Salary = in.Salary.Add(i.Amount)
		case domain.IncomeBusiness:
			in.BusinessIncome = in.BusinessIncome.Add(i.Amount)
		case domain.IncomeFreelance:
			in.Freelance = in.Freelance.Add(i.Amount)
		default:
			in.OtherSources = in.OtherSources.Add(i.Amount)
		}
	}
	return in
}

// FinancialHealthScore awards 33 points for income/expense above 1.5,
// 33 for a savings rate above 20% and 34 for liquid cover above three
// times expenses. Ratios with a zero denominator score nothing.
func FinancialHealthScore(totalIncome, totalExpense, liquid decimal.Decimal) int {
	score := 0
	if totalExpense.IsPositive() && totalIncome.Div(totalExpense).GreaterThan(decimal.NewFromFloat(1.5)) {
		score += 33
	}
	if totalIncome.IsPositive() && totalIncome.Sub(totalExpense).Div(totalIncome).GreaterThan(decimal.NewFromFloat(0.2)) {
		score += 33
	}
	if totalExpense.IsPositive() && liquid.Div(totalExpense).GreaterThan(decimal.NewFromInt(3)) {
		score += 34
	}
	return score
}
