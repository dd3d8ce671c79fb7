package postgres

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Name is the dialect name used in database.Config.Type.
const Name = "postgres"

// Dialect implements the PostgreSQL specifics of the database facade:
// DSN assembly, the gorm dialector, literal quoting and session directives.
// The zero value is ready to use.
type Dialect struct{}

// New returns the PostgreSQL dialect.
func New() Dialect {
	return Dialect{}
}

// Name returns "postgres".
func (Dialect) Name() string {
	return Name
}

// DriverName returns the database/sql driver registered by gorm's postgres
// dialector. It determines the placeholder style ($1, $2, ...).
func (Dialect) DriverName() string {
	return "pgx"
}

// DSN merges credentials and attributes into address.
//
// address may be a URL (postgres://host:5432/db) or a keyword/value string
// (host=localhost port=5432 dbname=app). Attributes become URL query
// parameters or additional keyword/value pairs respectively, e.g.
// {"sslmode": "disable", "connect_timeout": "5"}.
//
// The result is validated with pgconn.ParseConfig so that malformed input is
// reported before a connection is attempted.
func (Dialect) DSN(address, username, password string, attributes map[string]string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("postgres: address is required")
	}

	var dsn string
	if strings.HasPrefix(address, "postgres://") || strings.HasPrefix(address, "postgresql://") {
		u, err := url.Parse(address)
		if err != nil {
			return "", fmt.Errorf("postgres: invalid URL address: %w", err)
		}
		name := username
		if name == "" && u.User != nil {
			name = u.User.Username()
		}
		switch {
		case password != "":
			u.User = url.UserPassword(name, password)
		case username != "":
			u.User = url.User(username)
		}
		q := u.Query()
		for k, v := range attributes {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		dsn = u.String()
	} else {
		parts := []string{address}
		if username != "" {
			parts = append(parts, "user="+quoteValue(username))
		}
		if password != "" {
			parts = append(parts, "password="+quoteValue(password))
		}
		for _, k := range sortedKeys(attributes) {
			parts = append(parts, k+"="+quoteValue(attributes[k]))
		}
		dsn = strings.Join(parts, " ")
	}

	if _, err := pgconn.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("postgres: invalid connection string: %w", err)
	}
	return dsn, nil
}

// Dialector returns the gorm dialector for dsn.
func (Dialect) Dialector(dsn string) gorm.Dialector {
	return gormpostgres.New(gormpostgres.Config{DSN: dsn})
}

// quoteValue quotes a keyword/value connection string value when needed.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\\t\n") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
