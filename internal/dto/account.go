package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name            string             `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=savings checking investment loan"`
	Balance         decimal.Decimal    `json:"balance" binding:"decimal_gte0"` // opening balance
	Currency        string             `json:"currency" binding:"omitempty,len=3"`
	InterestRate    decimal.Decimal    `json:"interestRate" binding:"decimal_gte0"`
	MinimumBalance  decimal.Decimal    `json:"minimumBalance" binding:"decimal_gte0"`
	WithdrawalLimit decimal.Decimal    `json:"withdrawalLimit" binding:"decimal_gte0"`
	LoanTermMonths  int                `json:"loanTermMonths" binding:"min=0"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Balance is not updatable; use deposit, withdraw or transfer.
type UpdateAccountRequest struct {
	Name            *string             `json:"name" binding:"omitempty,min=1,max=255"`
	AccountType     *domain.AccountType `json:"accountType" binding:"omitempty,oneof=savings checking investment loan"`
	Currency        *string             `json:"currency" binding:"omitempty,len=3"`
	InterestRate    *decimal.Decimal    `json:"interestRate" binding:"omitempty,decimal_gte0"`
	MinimumBalance  *decimal.Decimal    `json:"minimumBalance" binding:"omitempty,decimal_gte0"`
	WithdrawalLimit *decimal.Decimal    `json:"withdrawalLimit" binding:"omitempty,decimal_gte0"`
	LoanTermMonths  *int                `json:"loanTermMonths" binding:"omitempty,min=0"`
}

// TransferRequest moves an amount between two of the caller's accounts.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId" binding:"required"`
	ToAccountID   string          `json:"toAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gt0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	Balance         decimal.Decimal    `json:"balance"`
	Currency        string             `json:"currency"`
	InterestRate    decimal.Decimal    `json:"interestRate"`
	MinimumBalance  decimal.Decimal    `json:"minimumBalance"`
	WithdrawalLimit decimal.Decimal    `json:"withdrawalLimit"`
	LoanTermMonths  int                `json:"loanTermMonths"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// TransferResponse returns both accounts after a transfer.
type TransferResponse struct {
	From AccountResponse `json:"from"`
	To   AccountResponse `json:"to"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Balance:         acc.Balance,
		Currency:        acc.Currency,
		InterestRate:    acc.InterestRate,
		MinimumBalance:  acc.MinimumBalance,
		WithdrawalLimit: acc.WithdrawalLimit,
		LoanTermMonths:  acc.LoanTermMonths,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountResponse converts a slice of domain.Account to ListAccountsResponse
func ToListAccountResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
