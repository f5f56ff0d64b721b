package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
)

type savingsGoalService struct {
	BaseService
	goalRepo portsrepo.SavingsGoalRepositoryFacade
	clock    func() time.Time
}

// NewSavingsGoalService creates a new savings goal service.
func NewSavingsGoalService(goalRepo portsrepo.SavingsGoalRepositoryFacade) portssvc.SavingsGoalSvcFacade {
	return &savingsGoalService{
		goalRepo: goalRepo,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.SavingsGoalSvcFacade = (*savingsGoalService)(nil)

func (s *savingsGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	status := req.Status
	if status == "" {
		status = domain.GoalOngoing
	}

	goal := domain.SavingsGoal{
		GoalID:       uuid.NewString(),
		UserID:       userID,
		GoalName:     strings.TrimSpace(req.GoalName),
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		Priority:     req.Priority,
		StartDate:    req.StartDate.UTC(),
		EndDate:      req.EndDate.UTC(),
		Status:       status,
		Notes:        req.Notes,
		AuditFields:  domain.NewAuditFields(userID, s.clock()),
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save savings goal", slog.String("goal_id", goal.GoalID))
		return nil, err
	}

	s.LogInfo(ctx, "Savings goal created", slog.String("goal_id", goal.GoalID))
	return &goal, nil
}

func (s *savingsGoalService) GetGoal(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find savings goal", slog.String("goal_id", goalID))
		}
		return nil, err
	}
	return goal, nil
}

func (s *savingsGoalService) ListGoals(ctx context.Context, userID string, limit int, offset int) ([]domain.SavingsGoal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list savings goals")
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	if goals == nil {
		return []domain.SavingsGoal{}, nil
	}
	return goals, nil
}

func (s *savingsGoalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.GoalName != nil {
		goal.GoalName = strings.TrimSpace(*req.GoalName)
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.SavedAmount != nil {
		goal.SavedAmount = *req.SavedAmount
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.StartDate != nil {
		goal.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		goal.EndDate = req.EndDate.UTC()
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	if req.Notes != nil {
		goal.Notes = *req.Notes
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	goal.Touch(userID, s.clock())
	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update savings goal", slog.String("goal_id", goalID))
		return nil, err
	}
	return goal, nil
}

func (s *savingsGoalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	if err := s.goalRepo.DeleteGoal(ctx, userID, goalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete savings goal", slog.String("goal_id", goalID))
		}
		return err
	}
	return nil
}
