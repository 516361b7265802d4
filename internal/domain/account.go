package domain

import "time"

// Role classifies an account's privilege level.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Account represents a registered user of the system.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	ProfileImage *string
	DateCreated  time.Time
	DateUpdated  *time.Time
}
