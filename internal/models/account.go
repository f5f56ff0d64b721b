package models

import (
	"github.com/shopspring/decimal"
)

// AccountType is the account_type column value.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	Balance         decimal.Decimal `db:"balance"`
	Currency        string          `db:"currency"`
	InterestRate    decimal.Decimal `db:"interest_rate"`
	MinimumBalance  decimal.Decimal `db:"minimum_balance"`
	WithdrawalLimit decimal.Decimal `db:"withdrawal_limit"`
	LoanTermMonths  int             `db:"loan_term_months"`
	AuditFields
}
