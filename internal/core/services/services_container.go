package services

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit rows are only written alongside records when enabled.
	var auditRepo portsrepo.TransactionWriter
	var recordOpts []RecordServiceOption
	if cfg.AuditTrailEnabled {
		auditRepo = repos.TransactionRepo
		recordOpts = append(recordOpts, WithAuditTrail(repos.TransactionRepo))
	}

	container.Account = NewAccountService(repos.TxManager, repos.AccountRepo)
	container.Income = NewIncomeService(repos.TxManager, repos.IncomeRepo, repos.AccountRepo, recordOpts...)
	container.Expense = NewExpenseService(repos.TxManager, repos.ExpenseRepo, repos.AccountRepo, recordOpts...)
	container.Savings = NewSavingsGoalService(repos.SavingsRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.IncomeRepo, repos.ExpenseRepo)
	container.Analysis = NewAnalysisService(repos.AnalysisRepo)
	container.Analytics = NewAnalyticsService(repos.AccountRepo, repos.IncomeRepo, repos.ExpenseRepo, cfg.TaxRate, cfg.EssentialCategorySet())
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.Recurring = NewRecurringService(repos.TxManager, repos.IncomeRepo, repos.ExpenseRepo, repos.AccountRepo, auditRepo)

	return container
}
