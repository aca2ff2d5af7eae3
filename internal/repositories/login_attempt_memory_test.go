package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAttemptStore_GetMissingIdentity(t *testing.T) {
	store := NewMemoryAttemptStore()

	rec, err := store.Get(context.Background(), "nobody@gmail.com")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryAttemptStore_FailuresAccumulateAndBlock(t *testing.T) {
	store := NewMemoryAttemptStore()
	ctx := context.Background()
	floor := time.Now().Add(-15 * time.Minute)

	for i := 1; i <= 4; i++ {
		rec, err := store.AddFailure(ctx, "user@gmail.com", floor, 5, 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, rec.FailureCount)
		assert.Nil(t, rec.BlockedUntil, "should not block before the threshold")
	}

	rec, err := store.AddFailure(ctx, "user@gmail.com", floor, 5, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.FailureCount)
	require.NotNil(t, rec.BlockedUntil)
	assert.True(t, rec.Blocked(time.Now()))
}

func TestMemoryAttemptStore_ResetClearsState(t *testing.T) {
	store := NewMemoryAttemptStore()
	ctx := context.Background()
	floor := time.Now().Add(-15 * time.Minute)

	_, err := store.AddFailure(ctx, "user@gmail.com", floor, 5, 15*time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx, "user@gmail.com"))

	rec, err := store.Get(ctx, "user@gmail.com")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryAttemptStore_StaleWindowRestartsCount(t *testing.T) {
	store := NewMemoryAttemptStore()
	ctx := context.Background()
	floor := time.Now().Add(-15 * time.Minute)

	for i := 0; i < 3; i++ {
		_, err := store.AddFailure(ctx, "user@gmail.com", floor, 5, 15*time.Minute)
		require.NoError(t, err)
	}

	// A floor in the future makes the existing window stale
	rec, err := store.AddFailure(ctx, "user@gmail.com", time.Now().Add(time.Minute), 5, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.FailureCount)
}

func TestMemoryAttemptStore_ConcurrentFailuresNeverUndercount(t *testing.T) {
	store := NewMemoryAttemptStore()
	ctx := context.Background()
	floor := time.Now().Add(-15 * time.Minute)

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := store.AddFailure(ctx, "user@gmail.com", floor, 1000, 15*time.Minute)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, err := store.Get(ctx, "user@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, goroutines, rec.FailureCount)
}

func TestMemoryAttemptStore_PurgeExpiredKeepsActiveBlocks(t *testing.T) {
	store := NewMemoryAttemptStore()
	ctx := context.Background()
	floor := time.Now().Add(-15 * time.Minute)

	_, err := store.AddFailure(ctx, "blocked@gmail.com", floor, 1, time.Hour)
	require.NoError(t, err)
	_, err = store.AddFailure(ctx, "idle@gmail.com", floor, 5, time.Hour)
	require.NoError(t, err)

	// Cutoff in the future makes both records stale, but the active
	// block must survive
	purged, err := store.PurgeExpired(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	rec, err := store.Get(ctx, "blocked@gmail.com")
	require.NoError(t, err)
	assert.NotNil(t, rec)

	rec, err = store.Get(ctx, "idle@gmail.com")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
