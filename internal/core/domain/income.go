package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeSource describes where an income came from.
type IncomeSource string

const (
	SourceJob          IncomeSource = "Job"
	SourceRentalIncome IncomeSource = "Rental Income"
	SourceDividends    IncomeSource = "Dividends"
	SourceGifts        IncomeSource = "Gifts"
	SourceOther        IncomeSource = "Other"
)

var incomeSources = map[IncomeSource]bool{
	SourceJob: true, SourceRentalIncome: true, SourceDividends: true, SourceGifts: true, SourceOther: true,
}

// IsValid reports whether s is a known income source.
func (s IncomeSource) IsValid() bool { return incomeSources[s] }

// IncomeCategory is the closed set of income categories.
type IncomeCategory string

const (
	IncomeSalary             IncomeCategory = "Salary"
	IncomeFreelance          IncomeCategory = "Freelance"
	IncomeBusiness           IncomeCategory = "Business Income"
	IncomeDividends          IncomeCategory = "Dividends"
	IncomeInterest           IncomeCategory = "Interest"
	IncomeRental             IncomeCategory = "Rental Income"
	IncomeRoyalties          IncomeCategory = "Royalties"
	IncomeGifts              IncomeCategory = "Gifts"
	IncomePensions           IncomeCategory = "Pensions"
	IncomeSocialSecurity     IncomeCategory = "Social Security"
	IncomeGrants             IncomeCategory = "Grants"
	IncomeSideGigs           IncomeCategory = "Side Gigs"
	IncomeConsulting         IncomeCategory = "Consulting"
	IncomeAffiliateMarketing IncomeCategory = "Affiliate Marketing"
	IncomeOnlineContent      IncomeCategory = "Online Content"
	IncomeOther              IncomeCategory = "Other"
)

var incomeCategories = map[IncomeCategory]bool{
	IncomeSalary: true, IncomeFreelance: true, IncomeBusiness: true, IncomeDividends: true,
	IncomeInterest: true, IncomeRental: true, IncomeRoyalties: true, IncomeGifts: true,
	IncomePensions: true, IncomeSocialSecurity: true, IncomeGrants: true, IncomeSideGigs: true,
	IncomeConsulting: true, IncomeAffiliateMarketing: true, IncomeOnlineContent: true, IncomeOther: true,
}

// IsValid reports whether c is a known income category.
func (c IncomeCategory) IsValid() bool { return incomeCategories[c] }

// Income is money received into an account.
type Income struct {
	IncomeID     string          `json:"incomeID"`
	UserID       string          `json:"userID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	Source       IncomeSource    `json:"source"`
	Category     IncomeCategory  `json:"category"`
	DateReceived time.Time       `json:"dateReceived"`
	Description  string          `json:"description"`
	Recurrence
	AuditFields
}

// BalanceEffect is the signed change creating this income applies to its account.
func (i Income) BalanceEffect() BalanceChange {
	return Credit(i.AccountID, i.Amount)
}

// ReversalEffect undoes BalanceEffect. It is applied when the income is deleted.
func (i Income) ReversalEffect() BalanceChange {
	return Debit(i.AccountID, i.Amount, false)
}

// UpdateEffects returns the balance changes that move the account state from
// i to updated. A reassigned income is reversed on the old account and
// applied in full on the new one; otherwise only the difference is applied.
func (i Income) UpdateEffects(updated Income) []BalanceChange {
	if i.AccountID != updated.AccountID {
		return []BalanceChange{i.ReversalEffect(), Credit(updated.AccountID, updated.Amount)}
	}
	return []BalanceChange{{AccountID: i.AccountID, Delta: updated.Amount.Sub(i.Amount)}}
}

// Validate checks the invariants an income must hold before it is stored.
func (i Income) Validate() error {
	if err := ValidateAmount("amount", i.Amount); err != nil {
		return err
	}
	if i.AccountID == "" {
		return validationErr("accountId is required")
	}
	if !i.Source.IsValid() {
		return validationErr("invalid income source %q", i.Source)
	}
	if !i.Category.IsValid() {
		return validationErr("invalid income category %q", i.Category)
	}
	if i.DateReceived.IsZero() {
		return validationErr("dateReceived is required")
	}
	return validateRecurrence(i.Recurrence, Weekly, Monthly, Yearly)
}
