package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for a violated unique constraint.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is the database rejecting a row that
// collides with an existing one. Services rely on this instead of
// check-then-insert so concurrent duplicates are settled by the engine.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
