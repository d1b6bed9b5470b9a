package sink

import (
	"time"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
)

func sampleRun() coresink.RunInfo {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return coresink.RunInfo{
		ID:          "run-1",
		Year:        2023,
		Basename:    "annual_potential",
		Started:     started,
		Finished:    started.Add(90 * time.Second),
		SeriesLen:   35040,
		Cases:       2,
		Combination: true,
		MaxCO2:      true,
		MaxCost:     true,
		Avg:         model.AverageReference{Price: 95.18, EMF: 381},
	}
}

// sampleResults returns one fully computed row and one row whose emission
// objective was skipped.
func sampleResults() []model.AnnualResult {
	return []model.AnnualResult{
		{
			TP:           "TP1",
			Name:         "chp",
			Scope:        model.ScopePotential,
			Maximization: model.MaximizePower,
			LoadChange:   model.LoadReduction,
			Emission:     model.ObjectiveResult{Reduction: 1234.5, Associated: -37.25, Computed: true},
			Cost:         model.ObjectiveResult{Reduction: 812.4, Associated: 900.75, Computed: true},
		},
		{
			TP:           "TP2",
			Name:         "heat pump",
			Scope:        model.ScopePerspective,
			Maximization: model.MaximizeDuration,
			LoadChange:   model.LoadIncrease,
			Emission:     model.ObjectiveResult{},
			Cost:         model.ObjectiveResult{Reduction: 42, Associated: 7, Computed: true},
		},
	}
}
