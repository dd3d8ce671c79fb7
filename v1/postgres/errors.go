package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the facade cares about.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// ErrorCode returns the SQLSTATE of a PostgreSQL server error, or "" when err
// did not originate from the server.
func (Dialect) ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports whether the statement may succeed when the whole
// transaction is retried: serialization failures, deadlocks and connection
// exceptions (class 08).
func (d Dialect) IsRetryable(err error) bool {
	code := d.ErrorCode(err)
	switch {
	case code == CodeSerializationFailure, code == CodeDeadlockDetected:
		return true
	case strings.HasPrefix(code, "08"):
		return true
	}
	return false
}
