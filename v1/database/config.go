package database

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix is the environment prefix used by ConfigFromEnv when none is given.
const DefaultEnvPrefix = "DB"

// Config describes how to reach a database.
//
// Type selects the dialect ("postgres", "mariadb"/"mysql" or "sqlite").
// Address is dialect specific: a keyword/value string or postgres:// URL for
// PostgreSQL, a go-sql-driver DSN without credentials such as
// "tcp(localhost:3306)/app" for MariaDB, and a file name or ":memory:" for SQLite.
//
// Example:
//
//	cfg := database.Config{
//	    Type:     "postgres",
//	    Address:  "host=localhost port=5432 dbname=app",
//	    Username: "app",
//	    Password: "secret",
//	    Attributes: map[string]string{
//	        "sslmode":         "disable",
//	        "connect_timeout": "5",
//	    },
//	    Charset: "UTF8",
//	}
type Config struct {
	Type       string            `yaml:"type" envconfig:"TYPE"`
	Address    string            `yaml:"address" envconfig:"ADDRESS"`
	Username   string            `yaml:"username" envconfig:"USERNAME"`
	Password   string            `yaml:"password" envconfig:"PASSWORD"`
	Attributes map[string]string `yaml:"attributes" envconfig:"ATTRIBUTES"`

	// Charset, when set, is applied with the dialect's encoding statement right
	// after the connection is opened.
	Charset string `yaml:"charset" envconfig:"CHARSET"`
}

// Validate reports a missing address or an unknown dialect.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, fmt.Errorf("%w: address is required", ErrInvalidConfig))
	}
	if _, err := dialectFor(c.Type); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// clone returns a copy that shares no mutable state with c.
func (c Config) clone() Config {
	c.Attributes = maps.Clone(c.Attributes)
	return c
}

// LoadConfig decodes a YAML document into a Config. Unknown keys are rejected.
//
//	type: mariadb
//	address: tcp(db:3306)/app
//	username: app
//	password: secret
//	charset: utf8mb4
//	attributes:
//	  timeout: 5s
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: failed to decode yaml: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ConfigFromEnv reads a Config from environment variables named
// <PREFIX>_TYPE, <PREFIX>_ADDRESS, <PREFIX>_USERNAME, <PREFIX>_PASSWORD,
// <PREFIX>_CHARSET and <PREFIX>_ATTRIBUTES (comma separated key:value pairs).
// An empty prefix means DefaultEnvPrefix.
func ConfigFromEnv(prefix string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}
