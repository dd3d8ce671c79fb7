package sqlite

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-sqlite3"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Name is the dialect name used in database.Config.Type.
const Name = "sqlite"

// Dialect implements the SQLite specifics of the database facade.
// The zero value is ready to use.
type Dialect struct{}

// New returns the SQLite dialect.
func New() Dialect {
	return Dialect{}
}

// Name returns "sqlite".
func (Dialect) Name() string {
	return Name
}

// DriverName returns the mattn/go-sqlite3 driver name.
func (Dialect) DriverName() string {
	return "sqlite3"
}

// DSN appends attributes to the database file name as connection parameters,
// e.g. {"_foreign_keys": "1", "_busy_timeout": "5000"}. SQLite has no users,
// so username and password are ignored.
func (Dialect) DSN(address, _, _ string, attributes map[string]string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("sqlite: address is required")
	}
	if len(attributes) == 0 {
		return address, nil
	}

	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(address)
	sep := "?"
	if strings.Contains(address, "?") {
		sep = "&"
	}
	for _, k := range keys {
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(k))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(attributes[k]))
		sep = "&"
	}
	return b.String(), nil
}

// Dialector returns the gorm dialector for dsn.
func (Dialect) Dialector(dsn string) gorm.Dialector {
	return gormsqlite.Open(dsn)
}

// QuoteLiteral renders s as a single quoted literal, doubling embedded quotes.
func (Dialect) QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// SchemaStatement always reports false: SQLite has attached databases but no
// default schema directive.
func (Dialect) SchemaStatement(string) (string, bool) {
	return "", false
}

// CharsetStatement sets the database text encoding. SQLite only honours it
// before the first table is created.
func (d Dialect) CharsetStatement(charset string) string {
	return "PRAGMA encoding = " + d.QuoteLiteral(charset)
}

// ErrorCode returns the extended result code of a SQLite error.
func (Dialect) ErrorCode(err error) string {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return strconv.Itoa(int(sqliteErr.ExtendedCode))
	}
	return ""
}

// IsRetryable reports SQLITE_BUSY and SQLITE_LOCKED.
func (Dialect) IsRetryable(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// BackslashEscapes reports false: SQLite only doubles quotes.
func (Dialect) BackslashEscapes() bool {
	return false
}
