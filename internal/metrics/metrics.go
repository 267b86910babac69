// Package metrics holds the Prometheus collectors recorded by the service layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1} //nolint: gochecknoglobals

// Result label values for settlement computations.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics records settlement computations.
type Metrics struct {
	computations *prometheus.CounterVec
	transfers    prometheus.Histogram
	duration     prometheus.Histogram
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitwiser",
			Name:      "settlement_computations_total",
			Help:      "Number of settlement computations by result.",
		}, []string{"result"}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "splitwiser",
			Name:      "settlement_transfers",
			Help:      "Number of transfers in a computed settlement plan.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "splitwiser",
			Name:      "settlement_duration_seconds",
			Help:      "Time spent computing a settlement plan.",
			Buckets:   DefaultBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.computations, m.transfers, m.duration)
	}
	return m
}

// ObserveSettlement records a successful computation.
func (m *Metrics) ObserveSettlement(transfers int, elapsed time.Duration) {
	m.computations.WithLabelValues(ResultOK).Inc()
	m.transfers.Observe(float64(transfers))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveFailure records a computation that returned an error.
// result is ResultInvalid for rejected input, ResultError otherwise.
func (m *Metrics) ObserveFailure(result string) {
	m.computations.WithLabelValues(result).Inc()
}

// Computations exposes the counter for inspection.
func (m *Metrics) Computations() *prometheus.CounterVec {
	return m.computations
}
