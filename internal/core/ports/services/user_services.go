package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// UserSvcFacade defines user profile operations.
type UserSvcFacade interface {
	// GetUserByID retrieves a specific user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvc registers users and issues bearer tokens.
type AuthSvc interface {
	Signup(ctx context.Context, req dto.SignupRequest) (string, *domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
}
