package mariadb

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Name is the dialect name used in database.Config.Type. "mysql" is accepted
// as an alias by the facade.
const Name = "mariadb"

// Dialect implements the MariaDB/MySQL specifics of the database facade.
// The zero value is ready to use.
type Dialect struct{}

// New returns the MariaDB/MySQL dialect.
func New() Dialect {
	return Dialect{}
}

// Name returns "mariadb".
func (Dialect) Name() string {
	return Name
}

// DriverName returns the database/sql driver used by gorm's mysql dialector.
func (Dialect) DriverName() string {
	return "mysql"
}

// DSN merges credentials and attributes into address.
//
// address is a go-sql-driver DSN without credentials, for example
// "tcp(localhost:3306)/app". Credentials given separately replace any found in
// address. Attributes are appended as DSN parameters (timeout, readTimeout,
// tls, or server system variables). parseTime defaults to true so DATETIME
// columns scan into time.Time.
func (Dialect) DSN(address, username, password string, attributes map[string]string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("mariadb: address is required")
	}

	cfg, err := mysql.ParseDSN(address)
	if err != nil {
		return "", fmt.Errorf("mariadb: invalid address: %w", err)
	}
	if username != "" {
		cfg.User = username
		cfg.Passwd = password
	}
	if _, ok := attributes["parseTime"]; !ok {
		cfg.ParseTime = true
	}

	dsn := cfg.FormatDSN()
	if len(attributes) > 0 {
		keys := make([]string, 0, len(attributes))
		for k := range attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString(dsn)
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		for _, k := range keys {
			b.WriteString(sep)
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(url.QueryEscape(attributes[k]))
			sep = "&"
		}
		dsn = b.String()
	}

	if _, err := mysql.ParseDSN(dsn); err != nil {
		return "", fmt.Errorf("mariadb: invalid attributes: %w", err)
	}
	return dsn, nil
}

// Dialector returns the gorm dialector for dsn.
func (Dialect) Dialector(dsn string) gorm.Dialector {
	return gormmysql.New(gormmysql.Config{DSN: dsn})
}
