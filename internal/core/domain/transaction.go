package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType says which kind of record an audit entry refers to.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// IsValid reports whether t is Income or Expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// MaxTransactionDescription bounds the free-text description.
const MaxTransactionDescription = 200

// Transaction is an audit-trail entry pointing at the income or expense it
// describes. It never changes account balances.
type Transaction struct {
	TransactionID    string          `json:"transactionID"`
	UserID           string          `json:"userID"`
	AccountID        string          `json:"accountID"`
	Amount           decimal.Decimal `json:"amount"`
	Type             TransactionType `json:"type"`
	Category         string          `json:"category"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	TransactionRefID string          `json:"transactionRefID"`
	AuditFields
}

// Validate checks the entry's own fields. Reference existence is checked by the service.
func (t Transaction) Validate() error {
	if err := ValidateAmount("amount", t.Amount); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return validationErr("type must be Income or Expense")
	}
	if t.AccountID == "" {
		return validationErr("accountId is required")
	}
	if t.Category == "" {
		return validationErr("category is required")
	}
	if len([]rune(t.Description)) > MaxTransactionDescription {
		return validationErr("description must be at most %d characters", MaxTransactionDescription)
	}
	if t.TransactionRefID == "" {
		return validationErr("transactionRefId is required")
	}
	return nil
}

// AuditEntryForIncome builds the audit row mirroring an income.
func AuditEntryForIncome(i Income, id string) Transaction {
	return Transaction{
		TransactionID:    id,
		UserID:           i.UserID,
		AccountID:        i.AccountID,
		Amount:           i.Amount,
		Type:             TransactionIncome,
		Category:         string(i.Category),
		Date:             i.DateReceived,
		Description:      truncate(i.Description, MaxTransactionDescription),
		TransactionRefID: i.IncomeID,
		AuditFields:      i.AuditFields,
	}
}

// AuditEntryForExpense builds the audit row mirroring an expense.
func AuditEntryForExpense(e Expense, id string) Transaction {
	return Transaction{
		TransactionID:    id,
		UserID:           e.UserID,
		AccountID:        e.AccountID,
		Amount:           e.Amount,
		Type:             TransactionExpense,
		Category:         string(e.Category),
		Date:             e.DateSpent,
		Description:      truncate(e.Description, MaxTransactionDescription),
		TransactionRefID: e.ExpenseID,
		AuditFields:      e.AuditFields,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
