package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flexworks/co2flex/core/model"
	"github.com/flexworks/co2flex/core/potential"
)

// SeriesDef builds a synthetic annual series. Both patterns are cycled until
// Points entries exist; a zero Points falls back to the longer pattern.
type SeriesDef struct {
	Points          int       `yaml:"points"`
	Prices          []float64 `yaml:"prices"`
	EmissionFactors []float64 `yaml:"emission_factors"`
}

func (s SeriesDef) ToModel() []model.SeriesPoint {
	n := s.Points
	if n == 0 {
		n = len(s.Prices)
		if len(s.EmissionFactors) > n {
			n = len(s.EmissionFactors)
		}
	}
	out := make([]model.SeriesPoint, n)
	for i := range out {
		out[i] = model.SeriesPoint{Price: cycle(s.Prices, i), EMF: cycle(s.EmissionFactors, i)}
	}
	return out
}

func cycle(pattern []float64, i int) float64 {
	if len(pattern) == 0 {
		return 0
	}
	return pattern[i%len(pattern)]
}

type AveragesDef struct {
	Price          float64 `yaml:"price"`
	EmissionFactor float64 `yaml:"emission_factor"`
}

func (a AveragesDef) ToModel() model.AverageReference {
	return model.AverageReference{Price: a.Price, EMF: a.EmissionFactor}
}

type CaseDef struct {
	TP           string  `yaml:"tp"`
	Name         string  `yaml:"name"`
	Scope        string  `yaml:"scope"`
	Maximization string  `yaml:"maximization"`
	LoadChange   string  `yaml:"load_change"`
	PowerKW      float64 `yaml:"power_kw"`
	RetrievalH   float64 `yaml:"retrieval_h"`
	ActivationH  float64 `yaml:"activation_h"`
	CatchUpH     float64 `yaml:"catchup_h"`
	Frequency    int     `yaml:"frequency"`
}

func (c CaseDef) ToModel() model.MeasureCase {
	return model.MeasureCase{
		TP:           c.TP,
		Name:         c.Name,
		Scope:        parseScope(c.Scope),
		Maximization: parseMaximization(c.Maximization),
		LoadChange:   parseLoadChange(c.LoadChange),
		PowerKW:      c.PowerKW,
		RetrievalH:   c.RetrievalH,
		ActivationH:  c.ActivationH,
		CatchUpH:     c.CatchUpH,
		Frequency:    c.Frequency,
	}
}

type OptionsDef struct {
	MaxCO2      bool `yaml:"max_co2"`
	MaxCost     bool `yaml:"max_cost"`
	Combination bool `yaml:"combination"`
	Workers     int  `yaml:"workers"`
}

func (o OptionsDef) ToModel() potential.Options {
	return potential.Options{MaxCO2: o.MaxCO2, MaxCost: o.MaxCost, Combination: o.Combination, Workers: o.Workers}
}

// ObjectiveExp pins one objective of a result row. Nil fields are not
// checked; a nil ObjectiveExp means the objective must not have been
// computed at all.
type ObjectiveExp struct {
	Reduction  *float64 `yaml:"reduction"`
	Associated *float64 `yaml:"associated"`
}

type ResultExp struct {
	TP         string        `yaml:"tp"`
	Name       string        `yaml:"name"`
	LoadChange string        `yaml:"load_change"`
	Emission   *ObjectiveExp `yaml:"emission,omitempty"`
	Cost       *ObjectiveExp `yaml:"cost,omitempty"`
}

type Expected struct {
	Results []ResultExp `yaml:"results"`
}

type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Series      SeriesDef   `yaml:"series"`
	Averages    AveragesDef `yaml:"averages"`
	Options     OptionsDef  `yaml:"options"`
	Measures    []CaseDef   `yaml:"measures"`
	Expected    Expected    `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func parseScope(s string) model.Scope {
	switch s {
	case "perspective":
		return model.ScopePerspective
	default:
		return model.ScopePotential
	}
}

func parseMaximization(s string) model.Maximization {
	switch s {
	case "duration", "retrieval duration":
		return model.MaximizeDuration
	default:
		return model.MaximizePower
	}
}

func parseLoadChange(s string) model.LoadChange {
	switch s {
	case "increase", "load increase":
		return model.LoadIncrease
	case "combination":
		return model.LoadCombination
	default:
		return model.LoadReduction
	}
}
