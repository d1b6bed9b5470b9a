package potential

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/flexworks/co2flex/core/events"
	"github.com/flexworks/co2flex/core/logger"
	"github.com/flexworks/co2flex/core/model"
	"github.com/flexworks/co2flex/internal/eventbus"
)

// Options control which objectives an Engine evaluates and how it runs.
type Options struct {
	MaxCO2      bool // evaluate the emission objective
	MaxCost     bool // evaluate the cost objective
	Combination bool // merge matching reduction/increase pairs
	Workers     int  // parallel work units, <=0 means runtime.NumCPU()
}

// Engine runs the reduction pipeline for batches of normalized measure cases
// against one annual series.
type Engine struct {
	series []model.SeriesPoint
	avg    model.AverageReference
	opts   Options
	log    logger.Logger
	bus    *eventbus.Bus[any]
}

// New creates an Engine. log and bus may be nil; a nil bus disables progress
// events.
func New(series []model.SeriesPoint, avg model.AverageReference, opts Options, log logger.Logger, bus *eventbus.Bus[any]) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{series: series, avg: avg, opts: opts, log: log, bus: bus}
}

// unit is one independent piece of work: a single case, or a
// reduction/increase pair that may yield a combination row.
type unit struct {
	reduction model.MeasureCase // the only case unless pair is set
	increase  model.MeasureCase
	pair      bool
}

// Run computes the annual results for all cases. Cases must already be
// normalized. The result order is deterministic regardless of the worker
// count: combination pairs first, in order of their reduction case, then the
// remaining cases in input order; a pair contributes its reduction row, its
// increase row and, if the cycle lengths matched, a combination row.
func (e *Engine) Run(ctx context.Context, cases []model.MeasureCase) ([]model.AnnualResult, error) {
	start := time.Now()
	units, err := e.plan(cases)
	if err != nil {
		return nil, err
	}

	workers := e.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(units) {
		workers = len(units)
	}

	slots := make([][]model.AnnualResult, len(units))
	if workers <= 1 {
		for i, u := range units {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			slots[i] = e.computeUnit(u)
		}
	} else {
		idx := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range idx {
					slots[i] = e.computeUnit(units[i])
				}
			}()
		}
	feed:
		for i := range units {
			select {
			case idx <- i:
			case <-ctx.Done():
				break feed
			}
		}
		close(idx)
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	out := make([]model.AnnualResult, 0, len(cases))
	for _, rows := range slots {
		out = append(out, rows...)
	}
	runDuration.Observe(time.Since(start).Seconds())
	e.log.Infof("computed %d results for %d cases in %s", len(out), len(cases), time.Since(start).Round(time.Millisecond))
	return out, nil
}

// plan validates the batch and splits it into work units. In combination
// mode cases sharing a pairing key must form exactly one
// reduction/increase pair; anything else in a shared key is ambiguous and
// rejected.
func (e *Engine) plan(cases []model.MeasureCase) ([]unit, error) {
	for _, c := range cases {
		if c.LoadChange == model.LoadCombination {
			return nil, fmt.Errorf("measure %s/%s: combination rows are outputs, not inputs", c.TP, c.Name)
		}
	}

	if !e.opts.Combination {
		units := make([]unit, len(cases))
		for i, c := range cases {
			units[i] = unit{reduction: c}
		}
		return units, nil
	}

	groups := make(map[model.ComboKey][]int, len(cases))
	for i, c := range cases {
		groups[c.Key()] = append(groups[c.Key()], i)
	}

	var pairs, singles []unit
	for i, c := range cases {
		g := groups[c.Key()]
		switch len(g) {
		case 1:
			singles = append(singles, unit{reduction: c})
		case 2:
			other := cases[g[0]]
			if g[0] == i {
				other = cases[g[1]]
			}
			if c.LoadChange == other.LoadChange {
				return nil, fmt.Errorf("measure %s/%s: two %s cases share one pairing key", c.TP, c.Name, c.LoadChange)
			}
			if c.LoadChange == model.LoadReduction {
				pairs = append(pairs, unit{reduction: c, increase: other, pair: true})
			}
			// The increase half is consumed by its reduction partner.
		default:
			return nil, fmt.Errorf("measure %s/%s: %d cases share one pairing key", c.TP, c.Name, len(g))
		}
	}
	return append(pairs, singles...), nil
}

func (e *Engine) computeUnit(u unit) []model.AnnualResult {
	if !u.pair {
		res, _ := e.computeCase(u.reduction)
		return []model.AnnualResult{res}
	}
	return e.computePair(u.reduction, u.increase)
}

// computeCase runs the three pipeline stages for one case and returns the
// result together with the blocks, which the combination path reuses.
func (e *Engine) computeCase(c model.MeasureCase) (model.AnnualResult, []model.Block) {
	started := time.Now()
	points := WindowReductions(e.series, e.avg, c)
	blocks := Partition(points, c)
	emission, cost := Aggregate(blocks, c.Frequency, e.opts.MaxCO2, e.opts.MaxCost)

	res := model.AnnualResult{
		TP:           c.TP,
		Name:         c.Name,
		Scope:        c.Scope,
		Maximization: c.Maximization,
		LoadChange:   c.LoadChange,
		Emission:     emission,
		Cost:         cost,
	}
	casesComputed.WithLabelValues(string(c.LoadChange)).Inc()
	if e.bus != nil {
		e.bus.Publish(events.CaseComputed{
			TP:         c.TP,
			Name:       c.Name,
			LoadChange: c.LoadChange,
			Blocks:     len(blocks),
			Elapsed:    time.Since(started),
		})
	}
	return res, blocks
}

func (e *Engine) computePair(lr, li model.MeasureCase) []model.AnnualResult {
	rRes, rBlocks := e.computeCase(lr)
	iRes, iBlocks := e.computeCase(li)
	out := []model.AnnualResult{rRes, iRes}

	if BlockLength(lr) != BlockLength(li) {
		e.log.Debugf("measure %s/%s: cycle lengths differ, individual results only", lr.TP, lr.Name)
		if e.bus != nil {
			e.bus.Publish(events.PairCombined{TP: lr.TP, Name: lr.Name, Combined: false})
		}
		return out
	}

	combined, err := CombineBlocks(rBlocks, iBlocks)
	if err != nil {
		// Same series and cycle length, so this cannot happen; keep the
		// individual results if it ever does.
		e.log.Errorf("measure %s/%s: %v", lr.TP, lr.Name, err)
		return out
	}
	emission, cost := Aggregate(combined, lr.Frequency, e.opts.MaxCO2, e.opts.MaxCost)
	out = append(out, model.AnnualResult{
		TP:           lr.TP,
		Name:         lr.Name,
		Scope:        lr.Scope,
		Maximization: lr.Maximization,
		LoadChange:   model.LoadCombination,
		Emission:     emission,
		Cost:         cost,
	})
	pairsCombined.Inc()
	if e.bus != nil {
		e.bus.Publish(events.PairCombined{TP: lr.TP, Name: lr.Name, Combined: true})
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
