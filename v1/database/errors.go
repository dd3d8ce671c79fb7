package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

var (
	// ErrConnection is returned when a database handle cannot be opened or initialized.
	ErrConnection = errors.New("database connection failed")

	// ErrNotConnected is returned by operations that need a live handle.
	ErrNotConnected = errors.New("database not connected")

	// ErrInvalidConfig is returned for a Config that cannot be used to connect.
	ErrInvalidConfig = errors.New("invalid database configuration")

	// ErrBindingModeConflict is returned when positional and named parameters
	// or types are combined in one statement.
	ErrBindingModeConflict = errors.New("positional and named parameters cannot be mixed")

	// ErrTypeCoercion is returned when a parameter cannot be converted to its declared type.
	ErrTypeCoercion = errors.New("parameter type coercion failed")

	// ErrTransactionState is the parent of the transaction state errors.
	ErrTransactionState = errors.New("invalid transaction state")

	// ErrTransactionActive is returned by StartTransaction while a transaction is open.
	ErrTransactionActive = fmt.Errorf("%w: a transaction is already active", ErrTransactionState)

	// ErrNoActiveTransaction is returned by Commit and RollBack outside a transaction.
	ErrNoActiveTransaction = fmt.Errorf("%w: no active transaction", ErrTransactionState)

	// ErrInvalidAssignment is returned for an Assign whose column carries a placeholder.
	ErrInvalidAssignment = errors.New("invalid update assignment")

	// ErrEmptyUpdate is returned by BuildUpdate without assignments.
	ErrEmptyUpdate = errors.New("update has no assignments")

	// ErrUnconditionalUpdate is returned by BuildUpdate without identifier
	// unless AllRows was requested.
	ErrUnconditionalUpdate = errors.New("update without identifier would touch every row")

	// ErrColumnNotFound is returned by FetchColumn for an unknown column.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnsupported is returned when the dialect cannot perform an operation.
	ErrUnsupported = errors.New("operation not supported by dialect")

	// ErrRecordNotFound is the translated form of sql.ErrNoRows.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned for unique constraint violations.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned for foreign key violations.
	ErrForeignKey = errors.New("foreign key constraint violation")

	// ErrCheckConstraint is returned for check constraint violations.
	ErrCheckConstraint = errors.New("check constraint violation")

	// ErrInvalidData is returned when the database rejects the data format.
	ErrInvalidData = errors.New("invalid data")
)

// QueryError describes a failed statement. The message has the form
//
//	<driver message> Query: <sql> Params: <params as JSON>
//
// and errors.Is/As see through it to the driver error.
type QueryError struct {
	// Op is the facade operation, e.g. "fetch_row" or "insert".
	Op string

	// Query is the SQL text as passed by the caller.
	Query string

	// Params are the caller's parameters, nil when the statement had none.
	Params Params

	// Code is the SQLSTATE or server error number, empty when unknown.
	Code string

	Err error
}

func (e *QueryError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("query failed")
	}
	b.WriteString(" Query: ")
	b.WriteString(e.Query)
	if paramsLen(e.Params) > 0 {
		b.WriteString(" Params: ")
		b.WriteString(renderParams(e.Params))
	}
	return b.String()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func renderParams(p Params) string {
	out, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%v", p)
	}
	return string(out)
}

// queryError wraps err in a QueryError unless it already is one.
func queryError(dialect Dialect, op, query string, params Params, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	code := ""
	if dialect != nil {
		code = dialect.ErrorCode(err)
	}
	return &QueryError{Op: op, Query: query, Params: params, Code: code, Err: err}
}

// TranslateError maps driver errors to this package's sentinel errors using the
// gorm dialector's error translator. The result wraps both the sentinel and err,
// so the statement context of a QueryError is kept. Errors that have no
// translation are returned unchanged.
//
// Example:
//
//	_, err := db.Insert(ctx, "users", database.Cols("email", email), nil)
//	if errors.Is(db.TranslateError(err), database.ErrDuplicateKey) {
//	    return ErrEmailTaken
//	}
func (d *DB) TranslateError(err error) error {
	if err == nil {
		return nil
	}

	cause := err
	var qe *QueryError
	if errors.As(err, &qe) && qe.Err != nil {
		cause = qe.Err
	}

	d.mu.Lock()
	client := d.client
	d.mu.Unlock()

	if client != nil {
		if translator, ok := client.Dialector.(gorm.ErrorTranslator); ok {
			cause = translator.Translate(cause)
		}
	}

	switch {
	case errors.Is(cause, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.Is(cause, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	case errors.Is(cause, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %w", ErrCheckConstraint, err)
	case errors.Is(cause, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	case errors.Is(cause, sql.ErrNoRows), errors.Is(cause, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	}
	return err
}

// IsRetryable reports whether err is a transient failure (deadlock,
// serialization failure, lock timeout, dropped connection) according to the
// connected dialect. The facade never retries on its own.
func (d *DB) IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	d.mu.Lock()
	dialect := d.dialect
	d.mu.Unlock()

	if dialect == nil {
		return false
	}
	return dialect.IsRetryable(err)
}
