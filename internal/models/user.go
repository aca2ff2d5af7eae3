package models

import (
	"time"
)

// User is a CRM account holder. The password hash never leaves the
// service layer; responses go through a sanitized DTO.
type User struct {
	ID           string
	Email        string // stored lowercased; storage enforces unique lower(email)
	PasswordHash string
	Name         string
	RoleID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
