package domain

import "github.com/shopspring/decimal"

// BalanceChange is a signed delta to apply to one account's balance.
// When RequireSufficientFunds is set the change is rejected if it would
// take the balance below zero.
type BalanceChange struct {
	AccountID              string
	Delta                  decimal.Decimal
	RequireSufficientFunds bool
}

// Credit builds a positive balance change.
func Credit(accountID string, amount decimal.Decimal) BalanceChange {
	return BalanceChange{AccountID: accountID, Delta: amount}
}

// Debit builds a negative balance change. Guarded debits fail on overdraft.
func Debit(accountID string, amount decimal.Decimal, guarded bool) BalanceChange {
	return BalanceChange{AccountID: accountID, Delta: amount.Neg(), RequireSufficientFunds: guarded}
}

// MergeBalanceChanges folds changes for the same account into one entry,
// keeping the first-seen order and dropping entries that net to zero.
func MergeBalanceChanges(changes []BalanceChange) []BalanceChange {
	index := make(map[string]int, len(changes))
	merged := make([]BalanceChange, 0, len(changes))
	for _, ch := range changes {
		if i, ok := index[ch.AccountID]; ok {
			merged[i].Delta = merged[i].Delta.Add(ch.Delta)
			merged[i].RequireSufficientFunds = merged[i].RequireSufficientFunds || ch.RequireSufficientFunds
			continue
		}
		index[ch.AccountID] = len(merged)
		merged = append(merged, ch)
	}

	out := merged[:0]
	for _, ch := range merged {
		if !ch.Delta.IsZero() {
			out = append(out, ch)
		}
	}
	return out
}
