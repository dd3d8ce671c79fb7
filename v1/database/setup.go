package database

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tandem-db/dbal/v1/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	componentName = "database"
	tracerName    = "github.com/tandem-db/dbal/v1/database"
	pingTimeout   = 5 * time.Second
)

// DB is the data-access facade. It owns at most one open database session;
// every statement, and every transaction, runs on that session.
//
// A DB is created unconnected by New, or connected by NewClient. Methods that
// need the session return ErrNotConnected until Connect succeeds.
//
// The internal mutex only guards the handle and transaction pointers. Callers
// that share a DB between goroutines must serialize statements themselves.
type DB struct {
	mu sync.Mutex

	client   *gorm.DB
	tx       *gorm.DB
	cfg      *Config
	dialect  Dialect
	bindType int

	logger   Logger
	observer observability.Observer
	tracer   trace.Tracer
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger. Without it the facade does not log.
func WithLogger(l Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithObserver registers an observer that is told about every completed operation.
func WithObserver(o observability.Observer) Option {
	return func(d *DB) {
		d.observer = o
	}
}

// WithTracerProvider sets the provider statement spans are created with.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *DB) {
		if tp != nil {
			d.tracer = tp.Tracer(tracerName)
		}
	}
}

// New returns an unconnected DB.
func New(opts ...Option) *DB {
	d := &DB{
		logger: nopLogger{},
		tracer: otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewClient returns a DB connected with cfg.
//
// Example:
//
//	db, err := database.NewClient(ctx, database.Config{
//	    Type:    "sqlite",
//	    Address: "app.db",
//	}, database.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer db.Disconnect(ctx)
func NewClient(ctx context.Context, cfg Config, opts ...Option) (*DB, error) {
	d := New(opts...)
	if err := d.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// Connect opens the session described by cfg. It is a no-op when a session
// is already open. cfg is copied and kept for Reconnect, even when opening fails.
//
// Failures are logged and returned wrapped in ErrConnection (or ErrInvalidConfig
// for an unusable cfg); the process is never terminated.
func (d *DB) Connect(ctx context.Context, cfg Config) (err error) {
	ctx, end := d.instrument(ctx, opConnect, "", "", cfg.Type)
	defer func() { end(err, 0) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		return nil
	}
	return d.connectLocked(ctx, cfg)
}

func (d *DB) connectLocked(ctx context.Context, cfg Config) error {
	stored := cfg.clone()
	d.cfg = &stored

	fields := map[string]interface{}{
		"type":    cfg.Type,
		"address": redactAddress(cfg.Address),
		"user":    cfg.Username,
	}

	if err := cfg.Validate(); err != nil {
		d.log(ctx, levelError, "Invalid database configuration", err, fields)
		return err
	}
	dialect, _ := dialectFor(cfg.Type)

	dsn, err := dialect.DSN(cfg.Address, cfg.Username, cfg.Password, cfg.Attributes)
	if err != nil {
		d.log(ctx, levelError, "Failed to build database DSN", err, fields)
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	client, err := gorm.Open(dialect.Dialector(dsn), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	if err != nil {
		d.log(ctx, levelError, "Failed to connect to database", err, fields)
		return fmt.Errorf("%w: failed to open %s database: %w", ErrConnection, dialect.Name(), err)
	}

	sqlDB, err := client.DB()
	if err != nil {
		d.log(ctx, levelError, "Failed to get database instance", err, fields)
		return fmt.Errorf("%w: failed to get database instance: %w", ErrConnection, err)
	}

	// One session: directives such as search_path and SET NAMES must stick.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if cfg.Charset != "" {
		if _, err := sqlDB.ExecContext(ctx, dialect.CharsetStatement(cfg.Charset)); err != nil {
			_ = sqlDB.Close()
			fields["charset"] = cfg.Charset
			d.log(ctx, levelError, "Failed to set connection charset", err, fields)
			return fmt.Errorf("%w: failed to set charset %q: %w", ErrConnection, cfg.Charset, err)
		}
	}

	d.client = client
	d.dialect = dialect
	d.bindType = sqlx.BindType(dialect.DriverName())

	fields["dialect"] = dialect.Name()
	d.log(ctx, levelInfo, "Connected to database", nil, fields)
	return nil
}

// Disconnect rolls back an open transaction and closes the session.
// It is a no-op when no session is open.
func (d *DB) Disconnect(ctx context.Context) (err error) {
	ctx, end := d.instrument(ctx, opDisconnect, "", "", "")
	defer func() { end(err, 0) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.disconnectLocked(ctx)
}

func (d *DB) disconnectLocked(ctx context.Context) error {
	if d.client == nil {
		return nil
	}

	if d.tx != nil {
		rbErr := d.tx.Rollback().Error
		d.tx = nil
		d.log(ctx, levelWarn, "Rolled back open transaction on disconnect", rbErr, nil)
	}

	var closeErr error
	sqlDB, err := d.client.DB()
	if err == nil {
		closeErr = sqlDB.Close()
	}
	d.client = nil
	d.dialect = nil

	d.log(ctx, levelInfo, "Disconnected from database", closeErr, nil)
	if closeErr != nil {
		return fmt.Errorf("failed to close database: %w", closeErr)
	}
	return nil
}

// Reconnect closes the session and opens it again with the configuration of
// the last Connect. Without a stored configuration it does nothing.
func (d *DB) Reconnect(ctx context.Context) (err error) {
	ctx, end := d.instrument(ctx, opReconnect, "", "", "")
	defer func() { end(err, 0) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg == nil {
		return nil
	}
	cfg := *d.cfg

	// A failing close leaves nothing to reuse; connect regardless.
	_ = d.disconnectLocked(ctx)
	return d.connectLocked(ctx, cfg)
}

// SetDefaultSchema makes schema the default for unqualified names on this
// session. It does nothing while disconnected. PostgreSQL accepts a comma
// separated search path; SQLite returns ErrUnsupported.
func (d *DB) SetDefaultSchema(ctx context.Context, schema string) (err error) {
	pool, dialect, err := d.session()
	if err != nil {
		return nil
	}

	stmt, ok := dialect.SchemaStatement(schema)
	if !ok {
		return fmt.Errorf("%w: %s has no default schema", ErrUnsupported, dialect.Name())
	}

	ctx, end := d.instrument(ctx, opSetSchema, schema, stmt, dialect.Name())
	defer func() { end(err, 0) }()

	if _, err := pool.ExecContext(ctx, stmt); err != nil {
		return queryError(dialect, opSetSchema, stmt, nil, err)
	}
	return nil
}

// DB returns the underlying gorm handle, nil while disconnected. Statements
// issued through it bypass the facade's transaction.
func (d *DB) DB() *gorm.DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client
}

// IsConnected reports whether a session is open.
func (d *DB) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client != nil
}

// Ping checks the session with a 5 second timeout.
func (d *DB) Ping(ctx context.Context) error {
	client := d.DB()
	if client == nil {
		return ErrNotConnected
	}

	sqlDB, err := client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// Quote returns s as a string literal of the connected dialect.
func (d *DB) Quote(s string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return "", ErrNotConnected
	}
	return d.dialect.QuoteLiteral(s), nil
}

// session returns the connection statements must run on: the open transaction
// when there is one, the pool otherwise.
func (d *DB) session() (gorm.ConnPool, Dialect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil, nil, ErrNotConnected
	}
	if d.tx != nil {
		return d.tx.Statement.ConnPool, d.dialect, nil
	}
	return d.client.Statement.ConnPool, d.dialect, nil
}

var passwordPattern = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

func redactAddress(address string) string {
	if u, err := url.Parse(address); err == nil && u.User != nil {
		return u.Redacted()
	}
	return passwordPattern.ReplaceAllString(address, "${1}xxxxx")
}
