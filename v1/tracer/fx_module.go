package tracer

import (
	"context"

	"github.com/tandem-db/dbal/v1/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// FXModule provides *Tracer and its trace.TracerProvider, which
// database.FXModule uses for statement spans. Pending spans are flushed when
// the application stops.
//
//	app := fx.New(
//	    tracer.FXModule,
//	    database.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{ServiceName: "billing", EnableExport: true}
//	    }),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewTracerWithDI,
		ProvideTracerProvider,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// NewTracerWithDI creates the tracer from the injected Config.
func NewTracerWithDI(cfg Config) (*Tracer, error) {
	return NewClient(cfg)
}

// ProvideTracerProvider exposes the tracer's provider to the container.
func ProvideTracerProvider(t *Tracer) trace.TracerProvider {
	return t.Provider()
}

// TracerLifecycleParams groups the dependencies of the tracer lifecycle.
type TracerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *Tracer
	Logger    logger.Logger `optional:"true"`
}

// RegisterTracerLifecycle shuts the provider down when the application stops.
func RegisterTracerLifecycle(params TracerLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			err := params.Tracer.Shutdown(ctx)
			if params.Logger != nil {
				params.Logger.Info("Shut down tracer", err, nil)
			}
			return err
		},
	})
}
