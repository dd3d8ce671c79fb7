// Package tracer configures OpenTelemetry tracing for applications using the
// database facade.
//
// NewClient builds an SDK tracer provider with service resource attributes and
// optional OTLP/HTTP export, and installs it globally together with the W3C
// trace context propagator. The database facade creates one client span per
// operation with db.system, db.operation and db.statement attributes; pass the
// provider with database.WithTracerProvider or use FXModule.
//
// Log lines written through the logger package's *WithContext methods carry
// the trace_id and span_id of the active span.
package tracer
