package pgsql

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       &BaseRepository{Pool: dbPool},
		AccountRepo:     newPgxAccountRepository(dbPool),
		IncomeRepo:      newPgxIncomeRepository(dbPool),
		ExpenseRepo:     newPgxExpenseRepository(dbPool),
		SavingsRepo:     newPgxSavingsGoalRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		AnalysisRepo:    newPgxAnalysisRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
