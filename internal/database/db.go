package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smoraleda/crmcore/internal/models"
)

// MapPostgresError translates driver errors into sentinel errors.
// The unique index on lower(email) is the authoritative defense against
// concurrent duplicate registrations, so unique violations on users map
// to ErrDuplicateEmail rather than a generic conflict.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if pgErr.TableName == "users" {
				return models.ErrDuplicateEmail
			}
			return models.ErrBadRequest
		case "23503": // foreign_key_violation
			return models.ErrBadRequest
		case "23502": // not_null_violation
			return models.ErrBadRequest
		}
	}

	return err
}
