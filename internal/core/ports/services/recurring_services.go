package services

import (
	"context"
	"time"
)

// RecurringReport counts what one scheduler pass did.
type RecurringReport struct {
	IncomesCreated  int
	ExpensesCreated int
	Skipped         int
	Failed          int
}

// RecurringSvc materializes due occurrences of recurring incomes and expenses.
type RecurringSvc interface {
	Run(ctx context.Context, now time.Time) (RecurringReport, error)
}
