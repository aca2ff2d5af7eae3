package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smoraleda/crmcore/internal/models"
)

func newTestLockoutService(store AttemptStore) *LockoutService {
	return NewLockoutService(store, LockoutConfig{
		MaxAttempts:     5,
		LockoutDuration: 15 * time.Minute,
	}, NewTestLogger())
}

func TestLockoutStatus_NoRecord(t *testing.T) {
	svc := newTestLockoutService(&MockAttemptStore{})

	blocked, until := svc.Status(context.Background(), "user@gmail.com")

	assert.False(t, blocked)
	assert.Nil(t, until)
}

func TestLockoutStatus_ActiveBlock(t *testing.T) {
	blockedUntil := time.Now().Add(10 * time.Minute)
	svc := newTestLockoutService(&MockAttemptStore{
		GetFunc: func(ctx context.Context, identity string) (*models.LoginAttemptRecord, error) {
			return &models.LoginAttemptRecord{
				Identity:     identity,
				FailureCount: 5,
				BlockedUntil: &blockedUntil,
			}, nil
		},
	})

	blocked, until := svc.Status(context.Background(), "user@gmail.com")

	assert.True(t, blocked)
	assert.Equal(t, blockedUntil, *until)
}

func TestLockoutStatus_ExpiredBlock(t *testing.T) {
	blockedUntil := time.Now().Add(-time.Minute)
	svc := newTestLockoutService(&MockAttemptStore{
		GetFunc: func(ctx context.Context, identity string) (*models.LoginAttemptRecord, error) {
			return &models.LoginAttemptRecord{
				Identity:     identity,
				FailureCount: 5,
				BlockedUntil: &blockedUntil,
			}, nil
		},
	})

	blocked, _ := svc.Status(context.Background(), "user@gmail.com")

	assert.False(t, blocked)
}

func TestLockoutStatus_StoreErrorFailsOpen(t *testing.T) {
	svc := newTestLockoutService(&MockAttemptStore{
		GetFunc: func(ctx context.Context, identity string) (*models.LoginAttemptRecord, error) {
			return nil, models.ErrStorageUnavailable
		},
	})

	blocked, until := svc.Status(context.Background(), "user@gmail.com")

	assert.False(t, blocked)
	assert.Nil(t, until)
}

func TestRecordFailure_CountsDown(t *testing.T) {
	count := 0
	svc := newTestLockoutService(&MockAttemptStore{
		AddFailureFunc: func(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error) {
			count++
			return &models.LoginAttemptRecord{Identity: identity, FailureCount: count}, nil
		},
	})

	for want := 4; want >= 1; want-- {
		remaining, blockedUntil := svc.RecordFailure(context.Background(), "user@gmail.com")
		assert.Equal(t, want, remaining)
		assert.Nil(t, blockedUntil)
	}
}

func TestRecordFailure_BlockImposedAtThreshold(t *testing.T) {
	blockedUntil := time.Now().Add(15 * time.Minute)
	svc := newTestLockoutService(&MockAttemptStore{
		AddFailureFunc: func(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error) {
			return &models.LoginAttemptRecord{
				Identity:     identity,
				FailureCount: 5,
				BlockedUntil: &blockedUntil,
			}, nil
		},
	})

	remaining, until := svc.RecordFailure(context.Background(), "user@gmail.com")

	assert.Equal(t, 0, remaining)
	assert.Equal(t, blockedUntil, *until)
}

func TestRecordFailure_RemainingNeverNegative(t *testing.T) {
	svc := newTestLockoutService(&MockAttemptStore{
		AddFailureFunc: func(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error) {
			return &models.LoginAttemptRecord{Identity: identity, FailureCount: 9}, nil
		},
	})

	remaining, _ := svc.RecordFailure(context.Background(), "user@gmail.com")

	assert.Equal(t, 0, remaining)
}

func TestRecordFailure_StoreErrorFailsOpen(t *testing.T) {
	svc := newTestLockoutService(&MockAttemptStore{
		AddFailureFunc: func(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error) {
			return nil, models.ErrStorageUnavailable
		},
	})

	remaining, until := svc.RecordFailure(context.Background(), "user@gmail.com")

	assert.Equal(t, 4, remaining)
	assert.Nil(t, until)
}

func TestRecordSuccess_ResetsStore(t *testing.T) {
	var resetIdentity string
	svc := newTestLockoutService(&MockAttemptStore{
		ResetFunc: func(ctx context.Context, identity string) error {
			resetIdentity = identity
			return nil
		},
	})

	svc.RecordSuccess(context.Background(), "user@gmail.com")

	assert.Equal(t, "user@gmail.com", resetIdentity)
}

func TestPurgeExpired_CutoffIsTwiceLockout(t *testing.T) {
	var cutoff time.Time
	svc := newTestLockoutService(&MockAttemptStore{
		PurgeExpiredFunc: func(ctx context.Context, c time.Time) (int64, error) {
			cutoff = c
			return 3, nil
		},
	})

	purged, err := svc.PurgeExpired(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), purged)
	assert.WithinDuration(t, time.Now().Add(-30*time.Minute), cutoff, 2*time.Second)
}
