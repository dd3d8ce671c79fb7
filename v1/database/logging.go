package database

import "context"

//go:generate mockgen -source=logging.go -destination=mock_logger_test.go -package=database

// Logger is the logging contract of the facade. *logger.LoggerClient from
// the logger package satisfies it.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// ContextLogger is a Logger that can correlate entries with the context of
// the operation, e.g. its trace and span IDs. When the configured Logger
// implements it, the facade logs through the *WithContext methods.
// *logger.LoggerClient implements it.
type ContextLogger interface {
	Logger
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

// log writes one entry, through the context-aware methods when the logger
// has them.
func (d *DB) log(ctx context.Context, level logLevel, msg string, err error, fields map[string]interface{}) {
	if cl, ok := d.logger.(ContextLogger); ok && ctx != nil {
		switch level {
		case levelDebug:
			cl.DebugWithContext(ctx, msg, err, fields)
		case levelInfo:
			cl.InfoWithContext(ctx, msg, err, fields)
		case levelWarn:
			cl.WarnWithContext(ctx, msg, err, fields)
		default:
			cl.ErrorWithContext(ctx, msg, err, fields)
		}
		return
	}

	switch level {
	case levelDebug:
		d.logger.Debug(msg, err, fields)
	case levelInfo:
		d.logger.Info(msg, err, fields)
	case levelWarn:
		d.logger.Warn(msg, err, fields)
	default:
		d.logger.Error(msg, err, fields)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
