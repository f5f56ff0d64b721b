package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the closed set of expense categories.
type ExpenseCategory string

const (
	ExpenseRent           ExpenseCategory = "Rent"
	ExpenseUtilities      ExpenseCategory = "Utilities"
	ExpenseGroceries      ExpenseCategory = "Groceries"
	ExpenseTransportation ExpenseCategory = "Transportation"
	ExpenseEntertainment  ExpenseCategory = "Entertainment"
	ExpenseInsurance      ExpenseCategory = "Insurance"
	ExpenseHealthcare     ExpenseCategory = "Healthcare"
	ExpenseEducation      ExpenseCategory = "Education"
	ExpenseDiningOut      ExpenseCategory = "Dining Out"
	ExpenseShopping       ExpenseCategory = "Shopping"
	ExpenseTravel         ExpenseCategory = "Travel"
	ExpenseGifts          ExpenseCategory = "Gifts"
	ExpenseCharity        ExpenseCategory = "Charity"
	ExpenseSubscriptions  ExpenseCategory = "Subscriptions"
	ExpenseDebtRepayment  ExpenseCategory = "Debt Repayment"
	ExpenseMiscellaneous  ExpenseCategory = "Miscellaneous"
	ExpenseOther          ExpenseCategory = "Other"
)

var expenseCategories = map[ExpenseCategory]bool{
	ExpenseRent: true, ExpenseUtilities: true, ExpenseGroceries: true, ExpenseTransportation: true,
	ExpenseEntertainment: true, ExpenseInsurance: true, ExpenseHealthcare: true, ExpenseEducation: true,
	ExpenseDiningOut: true, ExpenseShopping: true, ExpenseTravel: true, ExpenseGifts: true,
	ExpenseCharity: true, ExpenseSubscriptions: true, ExpenseDebtRepayment: true,
	ExpenseMiscellaneous: true, ExpenseOther: true,
}

// IsValid reports whether c is a known expense category.
func (c ExpenseCategory) IsValid() bool { return expenseCategories[c] }

// Expense is money spent from an account.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	UserID      string          `json:"userID"`
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	DateSpent   time.Time       `json:"dateSpent"`
	Description string          `json:"description"`
	Recurrence
	AuditFields
}

// BalanceEffect is the signed change creating this expense applies to its
// account. Creation refuses to overdraw the account.
func (e Expense) BalanceEffect() BalanceChange {
	return Debit(e.AccountID, e.Amount, true)
}

// ReversalEffect undoes the expense. It is applied when the expense is deleted.
func (e Expense) ReversalEffect() BalanceChange {
	return Credit(e.AccountID, e.Amount)
}

// UpdateEffects returns the balance changes that move the account state from
// e to updated. Updates are not checked for sufficient funds.
func (e Expense) UpdateEffects(updated Expense) []BalanceChange {
	if e.AccountID != updated.AccountID {
		return []BalanceChange{e.ReversalEffect(), Debit(updated.AccountID, updated.Amount, false)}
	}
	return []BalanceChange{{AccountID: e.AccountID, Delta: e.Amount.Sub(updated.Amount)}}
}

// Validate checks the invariants an expense must hold before it is stored.
func (e Expense) Validate() error {
	if err := ValidateAmount("amount", e.Amount); err != nil {
		return err
	}
	if e.AccountID == "" {
		return validationErr("accountId is required")
	}
	if !e.Category.IsValid() {
		return validationErr("invalid expense category %q", e.Category)
	}
	if e.DateSpent.IsZero() {
		return validationErr("dateSpent is required")
	}
	return validateRecurrence(e.Recurrence, Daily, Weekly, Monthly, Yearly)
}
