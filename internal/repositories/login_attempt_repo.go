package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smoraleda/crmcore/internal/database"
	"github.com/smoraleda/crmcore/internal/models"
)

// LoginAttemptRepository is the postgres-backed attempt store, for
// deployments where lockout state must be shared across instances.
type LoginAttemptRepository struct {
	pool *pgxpool.Pool
}

func NewLoginAttemptRepository(db *database.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{pool: db.Pool}
}

func (r *LoginAttemptRepository) Get(ctx context.Context, identity string) (*models.LoginAttemptRecord, error) {
	query := `
		SELECT identity, failure_count, window_start, blocked_until, updated_at
		FROM login_attempts WHERE identity = $1
	`

	var rec models.LoginAttemptRecord
	err := r.pool.QueryRow(ctx, query, identity).Scan(
		&rec.Identity, &rec.FailureCount, &rec.WindowStart, &rec.BlockedUntil, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &rec, nil
}

// AddFailure increments the failure counter in a single statement so that
// concurrent failures for the same identity never under-count. A window
// that began before windowFloor is restarted; the block is imposed the
// moment the count reaches maxFailures.
func (r *LoginAttemptRepository) AddFailure(ctx context.Context, identity string, windowFloor time.Time, maxFailures int, blockFor time.Duration) (*models.LoginAttemptRecord, error) {
	query := `
		INSERT INTO login_attempts (identity, failure_count, window_start, blocked_until, updated_at)
		VALUES ($1, 1, NOW(), CASE WHEN 1 >= $2 THEN NOW() + $3 END, NOW())
		ON CONFLICT (identity) DO UPDATE SET
			failure_count = CASE WHEN login_attempts.window_start < $4
				THEN 1
				ELSE login_attempts.failure_count + 1 END,
			window_start = CASE WHEN login_attempts.window_start < $4
				THEN NOW()
				ELSE login_attempts.window_start END,
			blocked_until = CASE WHEN (CASE WHEN login_attempts.window_start < $4
					THEN 1
					ELSE login_attempts.failure_count + 1 END) >= $2
				THEN NOW() + $3
				ELSE NULL END,
			updated_at = NOW()
		RETURNING identity, failure_count, window_start, blocked_until, updated_at
	`

	var rec models.LoginAttemptRecord
	err := r.pool.QueryRow(ctx, query, identity, maxFailures, blockFor, windowFloor).Scan(
		&rec.Identity, &rec.FailureCount, &rec.WindowStart, &rec.BlockedUntil, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &rec, nil
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, identity string) error {
	query := `DELETE FROM login_attempts WHERE identity = $1`

	_, err := r.pool.Exec(ctx, query, identity)
	return database.MapPostgresError(err)
}

// PurgeExpired removes records untouched since before cutoff.
func (r *LoginAttemptRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM login_attempts
		WHERE updated_at < $1 AND (blocked_until IS NULL OR blocked_until < NOW())
	`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return result.RowsAffected(), nil
}
