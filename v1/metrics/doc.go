// Package metrics exposes database operation metrics to Prometheus.
//
// *Metrics owns an isolated registry and an HTTP server serving it at
// /metrics. It implements observability.Observer, so handing it to the
// database facade is enough to get per-operation counters and latency
// histograms:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "billing",
//	    EnableDefaultCollectors: true,
//	})
//	db, err := database.NewClient(ctx, cfg, database.WithObserver(m))
//
// Exported series:
//
//	db_operations_total{service, component, operation, status}
//	db_operation_duration_seconds{service, component, operation}
//
// status is "success" or "error". Config.Namespace prefixes both names.
//
// # FX Module Integration
//
// FXModule provides *Metrics, MetricsCollector and observability.Observer and
// manages the server lifecycle. With database.FXModule in the same
// application the facade picks up the observer automatically:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    database.FXModule,
//	    fx.Provide(
//	        func() metrics.Config { return metrics.Config{Address: ":9090"} },
//	        func() database.Config { return dbConfig },
//	    ),
//	)
//
// Additional application metrics can be registered with CreateCounter,
// CreateHistogram and CreateGauge.
package metrics
