package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager hands out nil transactions. Repositories in these tests are
// mocks or fakes that never touch the tx, so only the calls are counted.
type fakeTxManager struct {
	begins, commits int
	beginErr        error
}

var _ portsrepo.TransactionManager = (*fakeTxManager)(nil)

func (f *fakeTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.begins++
	return nil, nil
}

func (f *fakeTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	f.commits++
	return nil
}

func (f *fakeTxManager) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

// --- MockAccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	return m.Called(ctx, userID, accountID).Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, userID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, userID string, changes []domain.BalanceChange, now time.Time) error {
	return m.Called(ctx, tx, userID, changes, now).Error(0)
}

func (m *MockAccountRepository) ApplyBalanceChanges(ctx context.Context, userID string, changes []domain.BalanceChange) error {
	return m.Called(ctx, userID, changes).Error(0)
}

// --- MockTransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return m.Called(ctx, tx, txn).Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	return m.Called(ctx, userID, transactionID).Error(0)
}

// --- MockUserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- MockAnalysisRepository ---

type MockAnalysisRepository struct {
	mock.Mock
}

var _ portsrepo.AnalysisRepositoryFacade = (*MockAnalysisRepository)(nil)

func (m *MockAnalysisRepository) UpsertAnalysis(ctx context.Context, analysis domain.Analysis) error {
	return m.Called(ctx, analysis).Error(0)
}

func (m *MockAnalysisRepository) FindAnalysis(ctx context.Context, userID string) (*domain.Analysis, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisRepository) DeleteAnalysis(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- MockSavingsGoalRepository ---

type MockSavingsGoalRepository struct {
	mock.Mock
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*MockSavingsGoalRepository)(nil)

func (m *MockSavingsGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockSavingsGoalRepository) FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) ListGoals(ctx context.Context, userID string, limit int, offset int) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockSavingsGoalRepository) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	return m.Called(ctx, userID, goalID).Error(0)
}
