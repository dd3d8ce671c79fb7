package database

import (
	"context"
	"time"

	"github.com/tandem-db/dbal/v1/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	opConnect      = "connect"
	opDisconnect   = "disconnect"
	opReconnect    = "reconnect"
	opSetSchema    = "set_default_schema"
	opExecuteQuery = "execute_query"
	opFetchRow     = "fetch_row"
	opFetchAll     = "fetch_all"
	opFetchColumn  = "fetch_column"
	opExecute      = "execute"
	opInsert       = "insert"
	opUpdate       = "update"
	opBegin        = "start_transaction"
	opCommit       = "commit"
	opRollBack     = "rollback"
)

// instrument starts a span for op and returns the function that finishes it.
// The finisher ends the span, logs the statement at debug level and notifies
// the observer. It must not be called while d.mu is held.
func (d *DB) instrument(ctx context.Context, op, resource, statement, system string) (context.Context, func(err error, size int64)) {
	start := time.Now()

	attrs := []attribute.KeyValue{attribute.String("db.operation", op)}
	if system != "" {
		attrs = append(attrs, attribute.String("db.system", system))
	}
	if statement != "" {
		attrs = append(attrs, attribute.String("db.statement", statement))
	}
	if resource != "" {
		attrs = append(attrs, attribute.String("db.sql.table", resource))
	}

	ctx, span := d.tracer.Start(ctx, componentName+"."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(err error, size int64) {
		duration := time.Since(start)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		if statement != "" {
			d.log(ctx, levelDebug, "Executed database statement", err, map[string]interface{}{
				"operation":   op,
				"statement":   statement,
				"rows":        size,
				"duration_ms": duration.Milliseconds(),
			})
		}

		if d.observer != nil {
			d.observer.ObserveOperation(observability.OperationContext{
				Component: componentName,
				Operation: op,
				Resource:  resource,
				Duration:  duration,
				Error:     err,
				Size:      size,
				Metadata: map[string]interface{}{
					"system": system,
				},
			})
		}
	}
}

// systemName returns the connected dialect's name. It must not be called
// while d.mu is held.
func (d *DB) systemName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dialect == nil {
		return ""
	}
	return d.dialect.Name()
}
