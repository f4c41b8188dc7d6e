package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	optimizations  *prometheus.CounterVec
	recordsWritten *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastDiscount   *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		optimizations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricepulse_optimizations_total",
				Help: "Total number of completed price optimizations",
			},
			[]string{"category", "confidence"},
		),
		recordsWritten: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricepulse_records_written_total",
				Help: "Total number of history records written to a backend",
			},
			[]string{"backend", "category"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricepulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastDiscount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pricepulse_last_discount_pct",
				Help: "Last computed discount percentage for a category",
			},
			[]string{"category"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricepulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordOptimization records a completed optimization.
func (r *Recorder) RecordOptimization(category, confidence string) {
	r.optimizations.WithLabelValues(category, confidence).Inc()
}

// RecordRecordWritten records a history record written to a backend.
func (r *Recorder) RecordRecordWritten(backend, category string) {
	r.recordsWritten.WithLabelValues(backend, category).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDiscount records the last discount for a category.
func (r *Recorder) RecordDiscount(category string, pct float64) {
	r.lastDiscount.WithLabelValues(category).Set(pct)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
