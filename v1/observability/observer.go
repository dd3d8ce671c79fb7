// Package observability defines the hook through which dbal components report
// completed operations to metrics, tracing or audit backends.
//
// Components accept an optional Observer. A nil Observer disables reporting.
package observability

import "time"

// Observer receives one notification per completed operation.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "database".
	Component string

	// Operation is the operation name, e.g. "insert" or "fetch_all".
	Operation string

	// Resource is the primary object operated on (a table name), if known.
	Resource string

	// SubResource carries additional context such as the dialect.
	SubResource string

	// Duration is the wall time of the operation.
	Duration time.Duration

	// Error is the error returned to the caller, nil on success.
	Error error

	// Size is the number of rows affected or returned.
	Size int64

	// Metadata holds optional extra key/value pairs.
	Metadata map[string]interface{}
}
