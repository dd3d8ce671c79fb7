// Package logger provides structured logging for dbal components.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: the contract other packages depend on
//   - LoggerClient struct: zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient or a build error
//   - FXModule: provides both *LoggerClient and Logger
//
// # Direct Usage (Without FX)
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "billing",
//		EnableTracing: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	log.Info("Connected", nil, map[string]interface{}{"address": "db:5432"})
//	log.ErrorWithContext(ctx, "Query failed", err, nil)
//
// The logger satisfies database.Logger, so it can be handed to the database
// facade directly:
//
//	db, err := database.NewClient(ctx, cfg, database.WithLogger(log))
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_SERVICE_NAME=billing
//	LOGGER_ENCODING=console         # json (default) or console
//	LOGGER_OUTPUT=stdout            # stderr (default), stdout or a file path
//	LOGGER_ENABLE_TRACING=true
//
// # Tracing Integration
//
// When EnableTracing is set, the *WithContext methods add trace_id and span_id
// of the OpenTelemetry span carried by the context.
package logger
