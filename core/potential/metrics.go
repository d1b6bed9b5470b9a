package potential

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	casesComputed *prometheus.CounterVec
	pairsCombined prometheus.Counter
	runDuration   prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, prometheus.Histogram) {
	cases := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "potential_cases_computed_total",
			Help: "Number of measure cases run through the reduction pipeline",
		},
		[]string{"load_change"},
	)
	pairs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "potential_pairs_combined_total",
			Help: "Number of reduction/increase pairs merged into a combination result",
		},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "potential_run_duration_seconds",
			Help:    "Wall time of full engine runs",
			Buckets: prometheus.DefBuckets,
		},
	)
	return cases, pairs, dur
}

func init() {
	casesComputed, pairsCombined, runDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers the engine metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(casesComputed, pairsCombined, runDuration)
}

// ResetMetrics reinitializes the collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	casesComputed, pairsCombined, runDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
