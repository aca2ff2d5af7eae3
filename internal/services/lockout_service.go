package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/smoraleda/crmcore/internal/models"
)

// AttemptStore persists per-identity lockout state. Implementations must
// make AddFailure atomic per identity so concurrent failures never
// under-count.
type AttemptStore interface {
	Get(ctx context.Context, identity string) (*models.LoginAttemptRecord, error)
	AddFailure(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error)
	Reset(ctx context.Context, identity string) error
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// LockoutConfig holds lockout thresholds. Defaults come from config;
// they are tunable, not guarantees.
type LockoutConfig struct {
	MaxAttempts     int
	LockoutDuration time.Duration
}

// LockoutService tracks failed logins per identity and imposes a
// temporary block once the threshold is reached.
//
// State machine per identity: OK -> (failure)* -> BLOCKED -> window
// elapses -> OK. Blocked attempts are rejected before credentials are
// even checked and do not consume another slot.
type LockoutService struct {
	store  AttemptStore
	config LockoutConfig
	logger *slog.Logger
}

// NewLockoutService creates a LockoutService over the given store.
func NewLockoutService(store AttemptStore, config LockoutConfig, logger *slog.Logger) *LockoutService {
	return &LockoutService{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Status reports whether the identity is currently blocked and until when.
// Store read errors fail open: an unreachable store must not lock out
// legitimate users, while credential checks still fail closed.
func (s *LockoutService) Status(ctx context.Context, identity string) (bool, *time.Time) {
	rec, err := s.store.Get(ctx, identity)
	if err != nil {
		s.logger.Error("failed to read lockout state", slog.Any("error", err))
		return false, nil
	}

	if rec != nil && rec.Blocked(time.Now()) {
		return true, rec.BlockedUntil
	}

	return false, nil
}

// RecordFailure counts a failed attempt and returns how many attempts
// remain before the block, plus the block end when one was just imposed.
func (s *LockoutService) RecordFailure(ctx context.Context, identity string) (int, *time.Time) {
	windowFloor := time.Now().Add(-s.config.LockoutDuration)

	rec, err := s.store.AddFailure(ctx, identity, windowFloor, s.config.MaxAttempts, s.config.LockoutDuration)
	if err != nil {
		s.logger.Error("failed to record login failure", slog.Any("error", err))
		// Fail open: report a full window rather than blocking the flow
		return s.config.MaxAttempts - 1, nil
	}

	remaining := s.config.MaxAttempts - rec.FailureCount
	if remaining < 0 {
		remaining = 0
	}

	if rec.BlockedUntil != nil {
		s.logger.Warn("identity blocked after repeated failures",
			slog.Int("failure_count", rec.FailureCount),
			slog.Time("blocked_until", *rec.BlockedUntil))
	}

	return remaining, rec.BlockedUntil
}

// RecordSuccess resets the counter after a successful login.
func (s *LockoutService) RecordSuccess(ctx context.Context, identity string) {
	if err := s.store.Reset(ctx, identity); err != nil {
		s.logger.Error("failed to reset lockout state", slog.Any("error", err))
	}
}

// PurgeExpired drops records idle for twice the lockout window.
// Called by the background cleanup task.
func (s *LockoutService) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-2 * s.config.LockoutDuration)
	return s.store.PurgeExpired(ctx, cutoff)
}
