package models

import (
	"time"
)

// User is a row of the users table.
type User struct {
	UserID       string     `db:"user_id"`
	FullName     string     `db:"full_name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	DeletedAt    *time.Time `db:"deleted_at"`
	AuditFields
}
