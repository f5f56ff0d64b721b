package dto

import "github.com/SscSPs/finance_tracker/internal/core/domain"

// SignupRequest registers a new user.
type SignupRequest struct {
	FullName string `json:"fullName" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public profile of a user.
type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.UserID, FullName: u.FullName, Email: u.Email}
}

// AuthResponse represents the response for a successful signup or login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
