// Package metrics exposes prometheus instruments for the reconciliation
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(New),
)

type Metrics struct {
	BatchesTotal  *prometheus.CounterVec
	RowsTotal     *prometheus.CounterVec
	BatchDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		BatchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feeflow_reconcile_batches_total",
			Help: "Reconciliation batches by terminal status.",
		}, []string{"status"}),
		RowsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "feeflow_reconcile_rows_total",
			Help: "Processed reconciliation rows by result.",
		}, []string{"result"}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "feeflow_reconcile_batch_duration_seconds",
			Help:    "Wall time of a reconciliation batch.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
}

// Nil receivers are tolerated so tests can run without a registry.

func (m *Metrics) IncBatch(status string) {
	if m == nil {
		return
	}
	m.BatchesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRow(result string) {
	if m == nil {
		return
	}
	m.RowsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveBatch(seconds float64) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(seconds)
}
