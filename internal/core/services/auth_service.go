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
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/google/uuid"
)

// authService registers users and signs their access tokens. Secrets and
// expiry come from configuration.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvc {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(userID, time.Now().UTC()),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return "", nil, fmt.Errorf("%w: a user with this email already exists", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user")
		return "", nil, err
	}

	token, err := s.issueToken(ctx, &user)
	if err != nil {
		return "", nil, err
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	return token, &user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return "", nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login with invalid password", slog.String("user_id", user.UserID))
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return token, user, nil
}

func (s *authService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}
