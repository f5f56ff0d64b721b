package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Income is a row of the incomes table.
type Income struct {
	IncomeID       string          `db:"income_id"`
	UserID         string          `db:"user_id"`
	AccountID      string          `db:"account_id"`
	Amount         decimal.Decimal `db:"amount"`
	Source         string          `db:"source"`
	Category       string          `db:"category"`
	DateReceived   time.Time       `db:"date_received"`
	Description    string          `db:"description"`
	IsRecurring    bool            `db:"is_recurring"`
	Frequency      sql.NullString  `db:"frequency"`
	LastRecurredAt sql.NullTime    `db:"last_recurred_at"`
	AuditFields
}

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID      string          `db:"expense_id"`
	UserID         string          `db:"user_id"`
	AccountID      string          `db:"account_id"`
	Amount         decimal.Decimal `db:"amount"`
	Category       string          `db:"category"`
	DateSpent      time.Time       `db:"date_spent"`
	Description    string          `db:"description"`
	IsRecurring    bool            `db:"is_recurring"`
	Frequency      sql.NullString  `db:"frequency"`
	LastRecurredAt sql.NullTime    `db:"last_recurred_at"`
	AuditFields
}

// SavingsGoal is a row of the savings_goals table.
type SavingsGoal struct {
	GoalID       string          `db:"goal_id"`
	UserID       string          `db:"user_id"`
	GoalName     string          `db:"goal_name"`
	TargetAmount decimal.Decimal `db:"target_amount"`
	SavedAmount  decimal.Decimal `db:"saved_amount"`
	Priority     int             `db:"priority"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	Status       string          `db:"status"`
	Notes        string          `db:"notes"`
	AuditFields
}

// Transaction is a row of the transactions (audit trail) table.
type Transaction struct {
	TransactionID    string          `db:"transaction_id"`
	UserID           string          `db:"user_id"`
	AccountID        string          `db:"account_id"`
	Amount           decimal.Decimal `db:"amount"`
	Type             string          `db:"type"`
	Category         string          `db:"category"`
	Date             time.Time       `db:"txn_date"`
	Description      string          `db:"description"`
	TransactionRefID string          `db:"transaction_ref_id"`
	AuditFields
}

// Analysis is a row of the analyses table. Document holds the JSON body.
type Analysis struct {
	UserID   string `db:"user_id"`
	Document []byte `db:"document"`
	AuditFields
}
