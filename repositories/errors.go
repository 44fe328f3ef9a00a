package repositories

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func IsForeignKeyViolationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.ForeignKeyViolation
}

// UniqueViolationConstraint returns the name of the unique constraint the error violates, if any.
func UniqueViolationConstraint(err error) (string, bool) {
	var pgxErr *pgconn.PgError
	if !errors.As(err, &pgxErr) || pgxErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}
	return pgxErr.ConstraintName, true
}
