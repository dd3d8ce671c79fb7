package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tandem-db/dbal/v1/observability"
)

// MetricsCollector provides an interface for collecting and exposing
// database operation metrics.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	observability.Observer

	// RecordOperation counts one operation and records its duration.
	RecordOperation(component, operation string, duration time.Duration, err error)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

var _ MetricsCollector = (*Metrics)(nil)
