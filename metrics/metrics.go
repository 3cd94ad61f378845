// Package metrics instruments a core.Backend with Prometheus metrics.
//
// Instrument wraps a backend so every primitive records its outcome status
// and latency, and every stream it opens counts the bytes moved through it.
// Composite algorithms in package core run unchanged on the wrapped backend,
// so their primitive calls are measured too.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vfs"

// Metrics holds the collectors shared by instrumented backends.
type Metrics struct {
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	bytes       *prometheus.CounterVec
	openStreams *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg. A nil reg
// creates unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of backend operations by outcome status",
			},
			[]string{"backend", "op", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Backend operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend", "op"},
		),
		bytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_bytes_total",
				Help:      "Total bytes transferred through streams",
			},
			[]string{"backend", "direction"},
		),
		openStreams: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "open_streams",
				Help:      "Number of streams currently open",
			},
			[]string{"backend", "mode"},
		),
	}
}
