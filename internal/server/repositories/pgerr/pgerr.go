// Package pgerr translates PostgreSQL driver errors into the sentinel
// errors of package common.
package pgerr

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we react to.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// Wrap prefixes err with "db error" and, for constraint violations, also
// wraps the matching sentinel so callers can use errors.Is.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation:
			return fmt.Errorf("db error: %w: %w", common.ErrorConflict, err)
		case ForeignKeyViolation:
			return fmt.Errorf("db error: %w: %w", common.ErrorNotFound, err)
		}
	}

	return fmt.Errorf("db error: %w", err)
}
