// Package telemetry exports Prometheus metrics for the autocart service.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all autocart Prometheus metrics.
type Metrics struct {
	// Batch metrics
	BatchesTotal  *prometheus.CounterVec // outcome: success, partial, vendor_mismatch
	BatchDuration prometheus.Histogram

	// Per-food metrics
	FoodsAttempted prometheus.Counter
	FoodsAdded     prometheus.Counter
	FoodsFailed    *prometheus.CounterVec // reason: not_found, no_category, ...
}

// NewMetrics registers and returns the service metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		BatchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "autocart_batches_total",
			Help: "Auto-cart batches processed, by outcome (success, partial, vendor_mismatch)",
		}, []string{"outcome"}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "autocart_batch_duration_seconds",
			Help:    "Wall time of one auto-cart batch, including inter-item delays",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		FoodsAttempted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "autocart_foods_attempted_total",
			Help: "Foods the orchestrator attempted to add",
		}),
		FoodsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "autocart_foods_added_total",
			Help: "Foods whose add control was successfully actuated",
		}),
		FoodsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "autocart_foods_failed_total",
			Help: "Foods that failed, by failure reason",
		}, []string{"reason"}),
	}
}

// Handler returns the Prometheus handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
