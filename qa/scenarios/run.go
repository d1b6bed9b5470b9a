package scenarios

import (
	"context"
	"math"
	"testing"

	"github.com/flexworks/co2flex/core/events"
	"github.com/flexworks/co2flex/core/model"
	"github.com/flexworks/co2flex/core/normalize"
	"github.com/flexworks/co2flex/core/potential"
	"github.com/flexworks/co2flex/infra/logger"
	"github.com/flexworks/co2flex/internal/eventbus"
)

const tolerance = 1e-9

// RunScenario feeds the scenario through normalization and the engine and
// compares the rows against the expectations, in order.
func RunScenario(t *testing.T, sc *Scenario) {
	series := sc.Series.ToModel()

	cases := make([]model.MeasureCase, len(sc.Measures))
	for i, m := range sc.Measures {
		cases[i] = m.ToModel()
	}
	cases = normalize.Cases(cases)

	bus := eventbus.New[any]()
	defer bus.Close()
	progress := bus.SubscribeBuffered(2*len(cases) + 2)

	eng := potential.New(series, sc.Averages.ToModel(), sc.Options.ToModel(), logger.NopLogger{}, bus)
	results, err := eng.Run(context.Background(), cases)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	bus.Unsubscribe(progress)
	computed := 0
	for ev := range progress {
		if _, ok := ev.(events.CaseComputed); ok {
			computed++
		}
	}
	if computed != len(cases) {
		t.Errorf("scenario %s expected %d case events, got %d", sc.Name, len(cases), computed)
	}

	if len(results) != len(sc.Expected.Results) {
		t.Fatalf("scenario %s expected %d results, got %d", sc.Name, len(sc.Expected.Results), len(results))
	}
	for i, want := range sc.Expected.Results {
		got := results[i]
		if got.TP != want.TP || got.Name != want.Name || got.LoadChange != parseLoadChange(want.LoadChange) {
			t.Errorf("scenario %s result %d: got %s/%s %s, want %s/%s %s",
				sc.Name, i, got.TP, got.Name, got.LoadChange, want.TP, want.Name, want.LoadChange)
		}
		checkObjective(t, sc.Name, "emission", got.Emission, want.Emission)
		checkObjective(t, sc.Name, "cost", got.Cost, want.Cost)
	}
}

func checkObjective(t *testing.T, scenario, objective string, got model.ObjectiveResult, want *ObjectiveExp) {
	t.Helper()
	if want == nil {
		if got.Computed {
			t.Errorf("scenario %s: %s objective computed but not expected", scenario, objective)
		}
		return
	}
	if !got.Computed {
		t.Errorf("scenario %s: %s objective not computed", scenario, objective)
		return
	}
	if want.Reduction != nil && math.Abs(got.Reduction-*want.Reduction) > tolerance {
		t.Errorf("scenario %s: %s reduction %g, want %g", scenario, objective, got.Reduction, *want.Reduction)
	}
	if want.Associated != nil && math.Abs(got.Associated-*want.Associated) > tolerance {
		t.Errorf("scenario %s: %s associated %g, want %g", scenario, objective, got.Associated, *want.Associated)
	}
}
