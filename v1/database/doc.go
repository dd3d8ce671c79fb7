// Package database provides a driver-agnostic data-access facade over one
// SQL session.
//
// The facade opens a session for PostgreSQL, MariaDB/MySQL or SQLite, runs raw
// SQL with positional or named parameters, builds INSERT and UPDATE statements
// from column/value data, and controls transactions explicitly. It is not an
// ORM: results are rows keyed by column name.
//
// # Connecting
//
//	db, err := database.NewClient(ctx, database.Config{
//	    Type:     "postgres",
//	    Address:  "host=localhost port=5432 dbname=app",
//	    Username: "app",
//	    Password: "secret",
//	    Attributes: map[string]string{"sslmode": "disable"},
//	}, database.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer db.Disconnect(ctx)
//
// Config can also be read from YAML with LoadConfig or from the environment
// with ConfigFromEnv. A DB keeps exactly one session open, so session settings
// such as SetDefaultSchema persist for its lifetime. Reconnect re-opens the
// session with the configuration of the last Connect.
//
// # Parameters
//
// Statements take Positional parameters for `?` markers or Named parameters
// for `:name` markers; the two cannot be mixed. `?` is rewritten to the
// dialect's placeholder style, so `$1` style markers are not needed on
// PostgreSQL. Markers inside quoted strings, quoted identifiers, dollar
// quoted bodies and comments are left alone, as are `::` casts. Types are
// ignored when a statement has no parameters.
//
// Types optionally coerce parameters before they reach the driver:
//
//	row, err := db.FetchRow(ctx,
//	    "SELECT * FROM users WHERE id = :id",
//	    database.Named{"id": "42"},
//	    database.NamedTypes{"id": database.TypeInt})
//
// PositionalTypes are 1-based; a map with key 0 is read as 0-based.
//
// # Writing
//
// Insert and Update build their SQL from ordered Data. Update values are
// either bound (Assign), fragments with their own arguments (Expr) or verbatim
// fragments (Raw). An Update without identifier needs AllRows. Table and column
// names are inserted verbatim and must never come from user input.
//
//	res, err := db.Insert(ctx, "users", database.Cols("name", "Ann", "age", 30), nil, "id")
//	n, err := db.Update(ctx, "users",
//	    []database.Assignment{database.Assign("age", 31)},
//	    database.Cols("id", res.Row["id"]), nil)
//
// # Transactions
//
// StartTransaction, Commit and RollBack control one transaction at a time;
// while it is open every statement of the DB runs in it. Transaction wraps a
// function with commit on success and rollback on error or panic.
//
// # Errors
//
// Statement failures are *QueryError values whose message carries the SQL
// and the parameters as JSON. TranslateError maps constraint violations to
// ErrDuplicateKey, ErrForeignKey and ErrCheckConstraint; IsRetryable
// recognises deadlocks and serialization failures. Nothing is retried
// automatically.
//
// # Observability
//
// Every operation runs in an OpenTelemetry span, is logged at debug level
// through the Logger given with WithLogger, and is reported to the Observer
// given with WithObserver.
//
// # Concurrency
//
// A DB may be shared between goroutines but statements must be serialized by
// the caller. A Cursor holds the session until it is closed.
package database
