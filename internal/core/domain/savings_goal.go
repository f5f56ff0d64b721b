package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalOngoing  GoalStatus = "ongoing"
	GoalAchieved GoalStatus = "achieved"
	GoalPaused   GoalStatus = "paused"
	GoalCanceled GoalStatus = "canceled"
)

// IsValid reports whether s is a known goal status.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalOngoing, GoalAchieved, GoalPaused, GoalCanceled:
		return true
	}
	return false
}

// SavingsGoal is a user's savings target. It is not tied to any account balance.
type SavingsGoal struct {
	GoalID       string          `json:"goalID"`
	UserID       string          `json:"userID"`
	GoalName     string          `json:"goalName"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Priority     int             `json:"priority"` // 1 is highest
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Status       GoalStatus      `json:"status"`
	Notes        string          `json:"notes"`
	AuditFields
}

// Validate checks the goal's fields.
func (g SavingsGoal) Validate() error {
	if g.GoalName == "" {
		return validationErr("goalName is required")
	}
	if err := ValidateAmount("targetAmount", g.TargetAmount); err != nil {
		return err
	}
	if g.SavedAmount.IsNegative() {
		return validationErr("savedAmount cannot be negative")
	}
	if err := validateScale("savedAmount", g.SavedAmount); err != nil {
		return err
	}
	if g.Priority < 1 {
		return validationErr("priority must be at least 1")
	}
	if g.StartDate.IsZero() || g.EndDate.IsZero() {
		return validationErr("startDate and endDate are required")
	}
	if g.EndDate.Before(g.StartDate) {
		return validationErr("endDate must not be before startDate")
	}
	if !g.Status.IsValid() {
		return validationErr("invalid status %q", g.Status)
	}
	return nil
}

// Remaining is the amount still to save, never negative.
func (g SavingsGoal) Remaining() decimal.Decimal {
	rem := g.TargetAmount.Sub(g.SavedAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// ProgressPercent is saved/target as a percentage rounded to 2 places, capped at 100.
func (g SavingsGoal) ProgressPercent() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.SavedAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return pct
}

// RequiredDailySavings spreads the remaining amount over the whole days
// left until EndDate, counting today. It is zero once the goal is met or
// the end date has passed.
func (g SavingsGoal) RequiredDailySavings(now time.Time) decimal.Decimal {
	rem := g.Remaining()
	if rem.IsZero() {
		return decimal.Zero
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(g.EndDate.Year(), g.EndDate.Month(), g.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	days := int64(end.Sub(today).Hours()/24) + 1
	if days <= 0 {
		return decimal.Zero
	}
	return rem.Div(decimal.NewFromInt(days)).Round(2)
}
