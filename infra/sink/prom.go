package sink

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// PromSink exposes the latest run's results as Prometheus gauges.
type PromSink struct {
	emission *prometheus.GaugeVec
	cost     *prometheus.GaugeVec
	runInfo  *prometheus.GaugeVec
}

var resultLabels = []string{"tp", "name", "scope", "maximization", "load_change"}

// NewPromSink registers the result gauges on the default registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers the gauges on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	emission := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "annual_emission_reduction_kg",
		Help: "Maximum annual emission reduction per measure case",
	}, resultLabels)
	cost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "annual_cost_reduction_eur",
		Help: "Maximum annual cost reduction per measure case",
	}, resultLabels)
	runInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "potential_run_info",
		Help: "Metadata of the last completed run, value is the case count",
	}, []string{"run_id", "year"})

	if err := reg.Register(emission); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			emission = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(runInfo); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runInfo = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{emission: emission, cost: cost, runInfo: runInfo}, nil
}

// RecordResults sets the gauges for every computed objective.
func (s *PromSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	for _, r := range results {
		labels := []string{r.TP, r.Name, string(r.Scope), string(r.Maximization), string(r.LoadChange)}
		if r.Emission.Computed {
			s.emission.WithLabelValues(labels...).Set(r.Emission.Reduction)
		}
		if r.Cost.Computed {
			s.cost.WithLabelValues(labels...).Set(r.Cost.Reduction)
		}
	}
	s.runInfo.WithLabelValues(run.ID, strconv.Itoa(run.Year)).Set(float64(run.Cases))
	return nil
}
