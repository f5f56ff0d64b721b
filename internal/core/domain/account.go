package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account for balance and analytics purposes.
type AccountType string

const (
	Savings    AccountType = "savings"
	Checking   AccountType = "checking"
	Investment AccountType = "investment"
	Loan       AccountType = "loan"
)

// DefaultLoanTermMonths is used for EMI when a loan account has no term set.
const DefaultLoanTermMonths = 60

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Checking, Investment, Loan:
		return true
	}
	return false
}

// IsLiquid reports whether balances of this type count towards liquid balance.
func (t AccountType) IsLiquid() bool {
	return t == Savings || t == Checking
}

// Account represents a bank-like account owned by a user.
type Account struct {
	AccountID       string          `json:"accountID"`
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	Balance         decimal.Decimal `json:"balance"`
	Currency        string          `json:"currency"`
	InterestRate    decimal.Decimal `json:"interestRate"` // annual, percent
	MinimumBalance  decimal.Decimal `json:"minimumBalance"`
	WithdrawalLimit decimal.Decimal `json:"withdrawalLimit"` // zero means no limit
	LoanTermMonths  int             `json:"loanTermMonths"`
	AuditFields
}

// EffectiveLoanTerm returns the account's loan term, or the default when unset.
func (a Account) EffectiveLoanTerm() int {
	if a.LoanTermMonths > 0 {
		return a.LoanTermMonths
	}
	return DefaultLoanTermMonths
}

// Validate checks an account's descriptive fields and opening balance.
func (a Account) Validate() error {
	if a.Name == "" {
		return validationErr("name is required")
	}
	if !a.AccountType.IsValid() {
		return validationErr("invalid account type %q", a.AccountType)
	}
	if len(a.Currency) != 3 {
		return validationErr("currency must be a 3-letter code")
	}
	if a.InterestRate.IsNegative() || a.MinimumBalance.IsNegative() || a.WithdrawalLimit.IsNegative() {
		return validationErr("rates and limits cannot be negative")
	}
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"balance", a.Balance},
		{"interestRate", a.InterestRate},
		{"minimumBalance", a.MinimumBalance},
		{"withdrawalLimit", a.WithdrawalLimit},
	}
	for _, amt := range amounts {
		if err := validateScale(amt.field, amt.value); err != nil {
			return err
		}
	}
	if a.LoanTermMonths < 0 {
		return validationErr("loanTermMonths cannot be negative")
	}
	return nil
}
