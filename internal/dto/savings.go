package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines the data needed to create a savings goal.
type CreateSavingsGoalRequest struct {
	GoalName     string            `json:"goalName" binding:"required,max=255"`
	TargetAmount decimal.Decimal   `json:"targetAmount" binding:"decimal_gt0"`
	SavedAmount  decimal.Decimal   `json:"savedAmount" binding:"decimal_gte0"`
	Priority     int               `json:"priority" binding:"required,min=1"`
	StartDate    time.Time         `json:"startDate" binding:"required"`
	EndDate      time.Time         `json:"endDate" binding:"required"`
	Status       domain.GoalStatus `json:"status" binding:"omitempty,oneof=ongoing achieved paused canceled"`
	Notes        string            `json:"notes" binding:"max=2000"`
}

// UpdateSavingsGoalRequest carries the fields to change on a goal.
type UpdateSavingsGoalRequest struct {
	GoalName     *string            `json:"goalName" binding:"omitempty,min=1,max=255"`
	TargetAmount *decimal.Decimal   `json:"targetAmount" binding:"omitempty,decimal_gt0"`
	SavedAmount  *decimal.Decimal   `json:"savedAmount" binding:"omitempty,decimal_gte0"`
	Priority     *int               `json:"priority" binding:"omitempty,min=1"`
	StartDate    *time.Time         `json:"startDate"`
	EndDate      *time.Time         `json:"endDate"`
	Status       *domain.GoalStatus `json:"status" binding:"omitempty,oneof=ongoing achieved paused canceled"`
	Notes        *string            `json:"notes" binding:"omitempty,max=2000"`
}

// SavingsGoalResponse is a goal plus its derived progress figures.
type SavingsGoalResponse struct {
	GoalID               string            `json:"goalID"`
	GoalName             string            `json:"goalName"`
	TargetAmount         decimal.Decimal   `json:"targetAmount"`
	SavedAmount          decimal.Decimal   `json:"savedAmount"`
	RemainingAmount      decimal.Decimal   `json:"remainingAmount"`
	ProgressPercent      decimal.Decimal   `json:"progressPercent"`
	RequiredDailySavings decimal.Decimal   `json:"requiredDailySavings"`
	Priority             int               `json:"priority"`
	StartDate            time.Time         `json:"startDate"`
	EndDate              time.Time         `json:"endDate"`
	Status               domain.GoalStatus `json:"status"`
	Notes                string            `json:"notes"`
	CreatedAt            time.Time         `json:"createdAt"`
	LastUpdatedAt        time.Time         `json:"lastUpdatedAt"`
}

// ToSavingsGoalResponse converts a goal, computing derived fields as of now.
func ToSavingsGoalResponse(g *domain.SavingsGoal, now time.Time) SavingsGoalResponse {
	return SavingsGoalResponse{
		GoalID:               g.GoalID,
		GoalName:             g.GoalName,
		TargetAmount:         g.TargetAmount,
		SavedAmount:          g.SavedAmount,
		RemainingAmount:      g.Remaining(),
		ProgressPercent:      g.ProgressPercent(),
		RequiredDailySavings: g.RequiredDailySavings(now),
		Priority:             g.Priority,
		StartDate:            g.StartDate,
		EndDate:              g.EndDate,
		Status:               g.Status,
		Notes:                g.Notes,
		CreatedAt:            g.CreatedAt,
		LastUpdatedAt:        g.LastUpdatedAt,
	}
}

// ListSavingsGoalsResponse wraps the list of goals.
type ListSavingsGoalsResponse struct {
	Goals []SavingsGoalResponse `json:"goals"`
}

func ToListSavingsGoalsResponse(goals []domain.SavingsGoal, now time.Time) ListSavingsGoalsResponse {
	res := make([]SavingsGoalResponse, len(goals))
	for i := range goals {
		res[i] = ToSavingsGoalResponse(&goals[i], now)
	}
	return ListSavingsGoalsResponse{Goals: res}
}
