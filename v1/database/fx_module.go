package database

import (
	"context"

	"github.com/tandem-db/dbal/v1/observability"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// FXModule provides a connected *DB, also as Client, from a Config in the
// container. A Logger, an observability.Observer and a trace.TracerProvider
// are used when provided. The session is closed when the application stops.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    database.FXModule,
//	    fx.Provide(
//	        func() database.Config {
//	            return database.Config{Type: "postgres", Address: "host=db dbname=app"}
//	        },
//	        func(l *logger.LoggerClient) database.Logger { return l },
//	    ),
//	    fx.Invoke(func(db database.Client) {
//	        // ...
//	    }),
//	)
var FXModule = fx.Module("database",
	fx.Provide(
		fx.Annotate(
			NewClientWithDI,
			fx.As(fx.Self()),
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to create a database client
type DatabaseParams struct {
	fx.In

	Config         Config
	Logger         Logger                 `optional:"true"`
	Observer       observability.Observer `optional:"true"`
	TracerProvider trace.TracerProvider   `optional:"true"`
}

// DatabaseLifecycleParams groups the dependencies needed for database lifecycle management
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	DB        *DB
}

// NewClientWithDI connects a DB from injected dependencies.
func NewClientWithDI(params DatabaseParams) (*DB, error) {
	opts := []Option{
		WithLogger(params.Logger),
		WithTracerProvider(params.TracerProvider),
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	return NewClient(context.Background(), params.Config, opts...)
}

// RegisterDatabaseLifecycle disconnects the DB when the application stops.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return params.DB.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return params.DB.Disconnect(ctx)
		},
	})
}
