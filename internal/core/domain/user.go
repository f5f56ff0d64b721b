package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
