package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrRoleNotFound   = errors.New("role not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Authentication flow errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// Storage errors surfaced as-is; callers or infrastructure retry
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a bad email or password with a user-facing message.
// Matches ErrBadRequest under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrBadRequest }

// InvalidCredentialsError carries the attempts remaining before lockout.
// Matches ErrInvalidCredentials under errors.Is.
type InvalidCredentialsError struct {
	Remaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials (%d attempts remaining)", e.Remaining)
}

func (e *InvalidCredentialsError) Is(target error) bool { return target == ErrInvalidCredentials }

// TooManyAttemptsError carries the end of the lockout window.
// Matches ErrTooManyAttempts under errors.Is.
type TooManyAttemptsError struct {
	BlockedUntil time.Time
}

func (e *TooManyAttemptsError) Error() string {
	return fmt.Sprintf("too many login attempts, blocked until %s", e.BlockedUntil.Format(time.RFC3339))
}

func (e *TooManyAttemptsError) Is(target error) bool { return target == ErrTooManyAttempts }
