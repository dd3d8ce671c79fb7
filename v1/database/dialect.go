package database

import (
	"fmt"
	"strings"

	"github.com/tandem-db/dbal/v1/mariadb"
	"github.com/tandem-db/dbal/v1/postgres"
	"github.com/tandem-db/dbal/v1/sqlite"
	"gorm.io/gorm"
)

// Dialect carries everything that differs between database engines.
// postgres.Dialect, mariadb.Dialect and sqlite.Dialect implement it.
type Dialect interface {
	// Name is the canonical dialect name, also reported as db.system.
	Name() string

	// DriverName is the database/sql driver name. It selects the placeholder
	// style statements are rebound to.
	DriverName() string

	// DSN merges credentials and attributes into the address.
	DSN(address, username, password string, attributes map[string]string) (string, error)

	// Dialector wraps a DSN for gorm.Open.
	Dialector(dsn string) gorm.Dialector

	// QuoteLiteral returns s as a quoted SQL string literal.
	QuoteLiteral(s string) string

	// SchemaStatement returns the statement that makes schema the default, or
	// false when the engine has no such notion.
	SchemaStatement(schema string) (string, bool)

	// BackslashEscapes reports whether a backslash escapes the next character
	// inside '...' literals.
	BackslashEscapes() bool

	// CharsetStatement returns the statement that sets the session encoding.
	CharsetStatement(charset string) string

	// ErrorCode extracts the SQLSTATE or server error number from err.
	ErrorCode(err error) string

	// IsRetryable reports whether err is a transient failure such as a deadlock.
	IsRetryable(err error) bool
}

var (
	_ Dialect = postgres.Dialect{}
	_ Dialect = mariadb.Dialect{}
	_ Dialect = sqlite.Dialect{}
)

func dialectFor(typ string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case postgres.Name, "postgresql", "pgx":
		return postgres.New(), nil
	case mariadb.Name, "mysql":
		return mariadb.New(), nil
	case sqlite.Name, "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported database type %q (must be 'postgres', 'mariadb' or 'sqlite')", ErrInvalidConfig, typ)
	}
}
