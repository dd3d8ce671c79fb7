package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tandem-db/dbal/v1/database"
	"github.com/tandem-db/dbal/v1/logger"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ database.ContextLogger = (*logger.LoggerClient)(nil)

func TestZapLoggerReceivesSessionEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core), false)

	ctx := context.Background()
	db, err := database.NewClient(ctx,
		database.Config{Type: "sqlite", Address: ":memory:", Password: "secret"},
		database.WithLogger(log),
	)
	require.NoError(t, err)

	_, err = db.FetchRow(ctx, "SELECT ? AS v", database.Positional{1}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Disconnect(ctx))

	connected := logs.FilterMessage("Connected to database").All()
	require.Len(t, connected, 1)
	assert.Equal(t, zapcore.InfoLevel, connected[0].Level)
	assert.NotContains(t, connected[0].ContextMap(), "password")

	executed := logs.FilterMessage("Executed database statement").All()
	require.NotEmpty(t, executed)
	assert.Equal(t, "SELECT ? AS v", executed[0].ContextMap()["statement"])

	assert.Equal(t, 1, logs.FilterMessage("Disconnected from database").Len())
}

func TestZapLoggerCorrelatesStatementsWithSpans(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core), true)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, parent := tp.Tracer("test").Start(context.Background(), "request")
	defer parent.End()

	db, err := database.NewClient(ctx,
		database.Config{Type: "sqlite", Address: ":memory:"},
		database.WithLogger(log),
		database.WithTracerProvider(tp),
	)
	require.NoError(t, err)
	defer func() { _ = db.Disconnect(ctx) }()

	_, err = db.FetchRow(ctx, "SELECT 1", nil, nil)
	require.NoError(t, err)

	executed := logs.FilterMessage("Executed database statement").All()
	require.Len(t, executed, 1)
	fields := executed[0].ContextMap()
	assert.Equal(t, parent.SpanContext().TraceID().String(), fields["trace_id"])
	assert.NotEqual(t, parent.SpanContext().SpanID().String(), fields["span_id"])
}
