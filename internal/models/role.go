package models

import "time"

// Role groups users under a named permission set.
// Invariant: every user references an existing role at creation time.
type Role struct {
	ID          string
	Name        string
	Permissions []string // raw permission tokens as stored; parse with ParsePermissions
	CreatedAt   time.Time
}
