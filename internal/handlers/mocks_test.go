package handlers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

var registerValidatorsOnce sync.Once

// newTestRouter returns a gin engine in test mode with the decimal binding
// tags registered, as main does.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			t.Fatal("gin validator engine is not go-playground/validator")
		}
		if err := dto.RegisterValidators(v); err != nil {
			t.Fatalf("register validators: %v", err)
		}
	})
	return gin.New()
}

// generateTestToken creates a signed HS256 token for userID.
func generateTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "finance-tracker-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

// --- MockAccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	return m.Called(ctx, userID, accountID).Error(0)
}

func (m *MockAccountService) Deposit(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Withdraw(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Transfer(ctx context.Context, userID string, fromAccountID string, toAccountID string, amount decimal.Decimal) (*domain.Account, *domain.Account, error) {
	args := m.Called(ctx, userID, fromAccountID, toAccountID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(*domain.Account), args.Error(2)
}

// --- MockExpenseService ---

type MockExpenseService struct {
	mock.Mock
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

func (m *MockExpenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) error {
	return m.Called(ctx, userID, expenseID).Error(0)
}

func (m *MockExpenseService) RecordExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

// --- MockTransactionService ---

type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	return m.Called(ctx, userID, transactionID).Error(0)
}

// --- MockAnalysisService / MockAnalyticsService ---

type MockAnalysisService struct {
	mock.Mock
}

var _ portssvc.AnalysisSvcFacade = (*MockAnalysisService)(nil)

func (m *MockAnalysisService) SaveAnalysis(ctx context.Context, userID string, req dto.SaveAnalysisRequest) (*domain.Analysis, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) GetAnalysis(ctx context.Context, userID string) (*domain.Analysis, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) UpdateAnalysis(ctx context.Context, userID string, req dto.SaveAnalysisRequest) (*domain.Analysis, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) DeleteAnalysis(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAnalysisService) MarketPrices(ctx context.Context) domain.MarketPrices {
	return m.Called(ctx).Get(0).(domain.MarketPrices)
}

type MockAnalyticsService struct {
	mock.Mock
}

var _ portssvc.AnalyticsSvc = (*MockAnalyticsService)(nil)

func (m *MockAnalyticsService) Summary(ctx context.Context, userID string, opts portssvc.SummaryOptions) (*domain.AnalyticsSummary, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsSummary), args.Error(1)
}

// --- MockAuthService / MockUserService ---

type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

func (m *MockAuthService) Signup(ctx context.Context, req dto.SignupRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
