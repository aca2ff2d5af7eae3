package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/smoraleda/crmcore/internal/models"
)

// MemoryAttemptStore keeps lockout state in process memory. The default
// for single-instance deployments; state is lost on restart, which is
// acceptable for attempt tracking.
type MemoryAttemptStore struct {
	mu      sync.Mutex
	records map[string]*models.LoginAttemptRecord
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		records: make(map[string]*models.LoginAttemptRecord),
	}
}

func (s *MemoryAttemptStore) Get(ctx context.Context, identity string) (*models.LoginAttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[identity]
	if !ok {
		return nil, nil
	}

	copied := *rec
	return &copied, nil
}

// AddFailure mirrors the postgres store: increment under the lock so
// concurrent failures for one identity never under-count.
func (s *MemoryAttemptStore) AddFailure(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	rec, ok := s.records[identity]
	if !ok || rec.WindowStart.Before(windowFloor) {
		rec = &models.LoginAttemptRecord{
			Identity:    identity,
			WindowStart: now,
		}
		s.records[identity] = rec
	}

	rec.FailureCount++
	rec.UpdatedAt = now

	if rec.FailureCount >= maxFailures {
		blockedUntil := now.Add(blockFor)
		rec.BlockedUntil = &blockedUntil
	} else {
		rec.BlockedUntil = nil
	}

	copied := *rec
	return &copied, nil
}

func (s *MemoryAttemptStore) Reset(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, identity)
	return nil
}

func (s *MemoryAttemptStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var purged int64

	for identity, rec := range s.records {
		if rec.UpdatedAt.Before(cutoff) && !rec.Blocked(now) {
			delete(s.records, identity)
			purged++
		}
	}

	return purged, nil
}
