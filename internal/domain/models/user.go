package models

import "time"

const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// User is an account record. Accounts are created on first login and never
// deleted; role and fraud flag are admin-controlled.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsFraud      bool      `json:"isFraud"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoggedIn time.Time `json:"last_loggedIn"`
}
