package models

import "time"

// LoginAttemptRecord tracks failed logins for one identity (lowercased email).
// Created lazily on the first failure, reset on success, evicted once the
// lockout window has long passed. Losing it on restart is acceptable.
type LoginAttemptRecord struct {
	Identity     string
	FailureCount int
	WindowStart  time.Time
	BlockedUntil *time.Time
	UpdatedAt    time.Time
}

// Blocked reports whether the identity is locked out at the given instant.
func (r *LoginAttemptRecord) Blocked(now time.Time) bool {
	return r.BlockedUntil != nil && now.Before(*r.BlockedUntil)
}
