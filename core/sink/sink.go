// Package sink defines where finished potential results go. Implementations
// live in infra/sink and are wired from configuration through the factory
// registry; the engine side only ever sees the ResultSink interface.
package sink

import (
	"time"

	"github.com/flexworks/co2flex/core/model"
)

// RunInfo describes one engine run. Every sink receives it alongside the
// results so that files, rows and points can be tied back to the run.
type RunInfo struct {
	ID       string // run UUID
	Year     int    // calendar year of the series
	Basename string // stem for file outputs, e.g. "dsm" -> dsm_2023.csv

	Started  time.Time
	Finished time.Time

	SeriesLen   int // quarter hours in the series
	Cases       int // measure cases fed into the engine
	Combination bool
	MaxCO2      bool
	MaxCost     bool

	Avg model.AverageReference
}

// ResultSink records the outcome of one run. Implementations that hold
// external resources additionally implement io.Closer.
type ResultSink interface {
	RecordResults(run RunInfo, results []model.AnnualResult) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordResults(RunInfo, []model.AnnualResult) error { return nil }
