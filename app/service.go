// Package app wires configuration, data loading, the computation engine and
// the result sinks into one service.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flexworks/co2flex/config"
	"github.com/flexworks/co2flex/core/events"
	"github.com/flexworks/co2flex/core/model"
	"github.com/flexworks/co2flex/core/normalize"
	"github.com/flexworks/co2flex/core/potential"
	coresink "github.com/flexworks/co2flex/core/sink"
	"github.com/flexworks/co2flex/dataset"
	"github.com/flexworks/co2flex/infra/logger"
	"github.com/flexworks/co2flex/internal/eventbus"
)

// Service runs annual potential computations from loaded configuration.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	bus   *eventbus.Bus[any]
	sinks coresink.ResultSink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	sinks, err := coresink.NewResultSink(cfg.Output.Sinks)
	if err != nil {
		return nil, fmt.Errorf("result sinks: %w", err)
	}
	return &Service{
		cfg:   cfg,
		log:   logger.New("service"),
		bus:   eventbus.New[any](),
		sinks: sinks,
	}, nil
}

// LoadAdaptedMeasures reads the measure sheet and normalizes all cases to
// the quarter-hour grid.
func (s *Service) LoadAdaptedMeasures() ([]model.MeasureCase, error) {
	path := s.cfg.Data.MeasuresPath()
	var (
		raw []model.MeasureCase
		err error
	)
	if s.cfg.Data.MeasuresXLSX() {
		raw, err = dataset.ReadMeasuresXLSX(path)
	} else {
		raw, err = dataset.ReadMeasures(path)
	}
	if err != nil {
		return nil, err
	}
	s.log.Infof("loaded %d measure cases from %s", len(raw), path)
	return normalize.Cases(raw), nil
}

// loadSeries reads the year's series and its reference averages.
func (s *Service) loadSeries(year int) ([]model.SeriesPoint, model.AverageReference, error) {
	series, err := dataset.ReadAnnualSeries(s.cfg.Data.SeriesPath(year))
	if err != nil {
		return nil, model.AverageReference{}, err
	}
	if n := len(series); n != model.QuartersRegularYear && n != model.QuartersLeapYear {
		s.log.Warnf("series for %d has %d points, expected %d or %d",
			year, n, model.QuartersRegularYear, model.QuartersLeapYear)
	}
	avg, err := dataset.ReadAverageReference(s.cfg.Data.AveragesPath(), year)
	if err != nil {
		return nil, model.AverageReference{}, err
	}
	return series, avg, nil
}

// Run executes one computation run and records the results in all
// configured sinks.
func (s *Service) Run(ctx context.Context) (coresink.RunInfo, []model.AnnualResult, error) {
	calc := s.cfg.Calc
	started := time.Now()
	run := coresink.RunInfo{
		ID:          uuid.NewString(),
		Year:        calc.Year,
		Basename:    calc.Basename,
		Started:     started,
		Combination: calc.Combination,
		MaxCO2:      calc.MaxCO2,
		MaxCost:     calc.MaxCost,
	}
	if !calc.MaxCO2 && !calc.MaxCost {
		s.log.Warnf("both objectives disabled, results will carry no values")
	}

	series, avg, err := s.loadSeries(calc.Year)
	if err != nil {
		return run, nil, err
	}
	cases, err := s.LoadAdaptedMeasures()
	if err != nil {
		return run, nil, err
	}
	if calc.AdaptedMeasures {
		if err := s.writeAdaptedMeasures(cases); err != nil {
			return run, nil, err
		}
	}
	run.SeriesLen = len(series)
	run.Cases = len(cases)
	run.Avg = avg

	progress := s.bus.SubscribeBuffered(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range progress {
			switch e := ev.(type) {
			case events.CaseComputed:
				s.log.Debugf("computed %s/%s (%s): %d blocks in %s", e.TP, e.Name, e.LoadChange, e.Blocks, e.Elapsed)
			case events.PairCombined:
				s.log.Debugf("pair %s/%s combined=%v", e.TP, e.Name, e.Combined)
			}
		}
	}()

	engine := potential.New(series, avg, potential.Options{
		MaxCO2:      calc.MaxCO2,
		MaxCost:     calc.MaxCost,
		Combination: calc.Combination,
		Workers:     calc.Workers,
	}, s.log, s.bus)

	results, err := engine.Run(ctx, cases)
	s.bus.Unsubscribe(progress)
	<-done
	if err != nil {
		return run, nil, err
	}
	run.Finished = time.Now()

	if err := s.sinks.RecordResults(run, results); err != nil {
		return run, results, fmt.Errorf("record results: %w", err)
	}
	s.log.Infof("run %s: %d results for %d recorded in %s", run.ID, len(results), run.Year, run.Finished.Sub(run.Started))
	return run, results, nil
}

// writeAdaptedMeasures stores the normalized sheet so a run's inputs stay
// reproducible.
func (s *Service) writeAdaptedMeasures(cases []model.MeasureCase) error {
	dir := s.cfg.Calc.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	stem := strings.TrimSuffix(s.cfg.Data.MeasuresFile, filepath.Ext(s.cfg.Data.MeasuresFile))
	path := filepath.Join(dir, fmt.Sprintf("adapted_%s.csv", stem))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := dataset.WriteMeasuresCSV(f, cases); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Close releases the bus and any closable sinks.
func (s *Service) Close() error {
	s.bus.Close()
	if c, ok := s.sinks.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
