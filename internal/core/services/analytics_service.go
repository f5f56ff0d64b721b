package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// analyticsService loads a user's accounts, incomes and expenses and runs
// the accounting aggregations over them. It never writes.
type analyticsService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	incomeRepo  portsrepo.IncomeReader
	expenseRepo portsrepo.ExpenseReader
	taxRate     decimal.Decimal
	essential   map[string]bool
}

// NewAnalyticsService creates a new analytics service with the configured
// default tax rate and essential expense categories.
func NewAnalyticsService(accountRepo portsrepo.AccountReader, incomeRepo portsrepo.IncomeReader, expenseRepo portsrepo.ExpenseReader, taxRate decimal.Decimal, essential map[string]bool) portssvc.AnalyticsSvc {
	return &analyticsService{
		accountRepo: accountRepo,
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		taxRate:     taxRate,
		essential:   essential,
	}
}

var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

func (s *analyticsService) Summary(ctx context.Context, userID string, opts portssvc.SummaryOptions) (*domain.AnalyticsSummary, error) {
	taxRate := s.taxRate
	if opts.TaxRate != nil {
		if opts.TaxRate.IsNegative() || opts.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: taxRate must be between 0 and 1", apperrors.ErrValidation)
		}
		taxRate = *opts.TaxRate
	}
	if opts.LoanTermMonths != nil && *opts.LoanTermMonths <= 0 {
		return nil, fmt.Errorf("%w: loanTermMonths must be positive", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAllAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for analytics")
		return nil, err
	}
	incomes, err := s.incomeRepo.FindAllIncomes(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load incomes for analytics")
		return nil, err
	}
	expenses, err := s.expenseRepo.FindAllExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expenses for analytics")
		return nil, err
	}

	summary := buildSummary(accounts, incomes, expenses, taxRate, s.essential, opts.LoanTermMonths)
	s.LogDebug(ctx, "Analytics summary computed",
		slog.Int("accounts", len(accounts)),
		slog.Int("incomes", len(incomes)),
		slog.Int("expenses", len(expenses)))
	return &summary, nil
}

func buildSummary(accounts []domain.Account, incomes []domain.Income, expenses []domain.Expense, taxRate decimal.Decimal, essential map[string]bool, termOverride *int) domain.AnalyticsSummary {
	liquid := accounting.LiquidBalance(accounts)
	totalIncome := accounting.SumIncomes(incomes)
	totalExpense := accounting.SumExpenses(expenses)
	ess, non := accounting.EssentialSplit(expenses, essential)

	schedules := []domain.LoanSchedule{}
	for _, acc := range accounts {
		if acc.AccountType != domain.Loan {
			continue
		}
		term := acc.EffectiveLoanTerm()
		if termOverride != nil {
			term = *termOverride
		}
		emi := accounting.EMI(acc.Balance, acc.InterestRate, term)
		schedules = append(schedules, domain.LoanSchedule{
			AccountID:    acc.AccountID,
			Name:         acc.Name,
			Principal:    acc.Balance,
			InterestRate: acc.InterestRate,
			TermMonths:   term,
			EMI:          emi,
			TotalPayable: accounting.TotalPayable(emi, term),
		})
	}

	return domain.AnalyticsSummary{
		NetWorth:             accounting.NetWorth(accounts),
		LiquidBalance:        liquid,
		Investments:          accounting.InvestmentTotal(accounts),
		Loans:                accounting.LoanTotal(accounts),
		TotalIncome:          totalIncome,
		TotalExpenses:        totalExpense,
		TaxRate:              taxRate,
		TaxLiability:         accounting.TaxLiability(expenses, taxRate),
		IncomeBreakdown:      accounting.IncomeBreakdown(incomes),
		ExpenseBreakdown:     accounting.ExpenseBreakdown(expenses),
		CategorizedInflows:   accounting.Inflows(incomes),
		EssentialOutflows:    ess,
		NonEssentialOutflows: non,
		LoanSchedules:        schedules,
		FinancialHealthScore: accounting.FinancialHealthScore(totalIncome, totalExpense, liquid),
	}
}
