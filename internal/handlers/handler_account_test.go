package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/handlers"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	userID             string
	token              string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.router = newTestRouter(suite.T())
	suite.mockAccountService = new(MockAccountService)
	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite.T(), suite.userID)

	client := suite.router.Group("/client", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterAccountRoutes(client, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), "Failed to unmarshal error body")
	return resp
}

func (suite *AccountHandlerTestSuite) account(id string, balance string) *domain.Account {
	return &domain.Account{
		AccountID:   id,
		UserID:      suite.userID,
		Name:        "Main",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString(balance),
		Currency:    "USD",
	}
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Name:        "Main",
		AccountType: domain.Checking,
		Balance:     decimal.NewFromInt(500),
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		return r.Name == "Main" && r.Balance.Equal(decimal.NewFromInt(500))
	})).Return(suite.account("acc-1", "500"), nil).Once()

	w := suite.do(http.MethodPost, "/client/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(500)))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindError() {
	w := suite.do(http.MethodPost, "/client/accounts", `{"name": "Main"`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("validation_error", suite.decodeError(w).Error.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/client/accounts", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("unauthorized", suite.decodeError(w).Error.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Errors() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: fmt.Errorf("%w: account", apperrors.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "infrastructure", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			id := uuid.NewString()
			suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.userID, id).Return(nil, tt.err).Once()

			w := suite.do(http.MethodGet, "/client/accounts/"+id, nil)

			suite.Equal(tt.wantStatus, w.Code)
			body := suite.decodeError(w)
			suite.Equal(tt.wantCode, body.Error.Code)
			suite.NotContains(body.Error.Message, "connection reset")
		})
	}
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Pagination() {
	suite.mockAccountService.On("ListAccounts", mock.Anything, suite.userID, 5, 10).
		Return([]domain.Account{*suite.account("a", "1"), *suite.account("b", "2")}, nil).Once()

	w := suite.do(http.MethodGet, "/client/accounts?limit=5&offset=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/client/accounts?limit=1000", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestWithdraw_InsufficientFunds() {
	suite.mockAccountService.On("Withdraw", mock.Anything, suite.userID, "acc-1", mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(decimal.NewFromInt(900))
	})).Return(nil, fmt.Errorf("%w: account acc-1", apperrors.ErrInsufficientFunds)).Once()

	w := suite.do(http.MethodPost, "/client/accounts/acc-1/withdraw", map[string]any{"amount": 900})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("insufficient_funds", suite.decodeError(w).Error.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeposit_Success() {
	suite.mockAccountService.On("Deposit", mock.Anything, suite.userID, "acc-1", mock.Anything).
		Return(suite.account("acc-1", "150.25"), nil).Once()

	w := suite.do(http.MethodPost, "/client/accounts/acc-1/deposit", map[string]any{"amount": "50.25"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("150.25", resp.Balance.String())
}

func (suite *AccountHandlerTestSuite) TestTransfer_Success() {
	suite.mockAccountService.On("Transfer", mock.Anything, suite.userID, "x", "y", mock.Anything).
		Return(suite.account("x", "70"), suite.account("y", "80"), nil).Once()

	w := suite.do(http.MethodPost, "/client/accounts/transfer", dto.TransferRequest{
		FromAccountID: "x",
		ToAccountID:   "y",
		Amount:        decimal.NewFromInt(30),
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("70", resp.From.Balance.String())
	suite.Equal("80", resp.To.Balance.String())
}

func (suite *AccountHandlerTestSuite) TestTransfer_SameAccount() {
	suite.mockAccountService.On("Transfer", mock.Anything, suite.userID, "x", "x", mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/client/accounts/transfer", dto.TransferRequest{
		FromAccountID: "x",
		ToAccountID:   "x",
		Amount:        decimal.NewFromInt(30),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("validation_error", suite.decodeError(w).Error.Code)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount() {
	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.userID, "acc-1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/client/accounts/acc-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
