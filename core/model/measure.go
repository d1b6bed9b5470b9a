package model

import "fmt"

// Scope distinguishes measures available today from projected ones.
type Scope string

const (
	ScopePotential   Scope = "potential"
	ScopePerspective Scope = "perspective"
)

// Maximization names the quantity a measure case was dimensioned for.
type Maximization string

const (
	MaximizePower    Maximization = "power"
	MaximizeDuration Maximization = "retrieval duration"
)

// LoadChange is the direction of the load shift a measure performs.
type LoadChange string

const (
	LoadIncrease    LoadChange = "load increase"
	LoadReduction   LoadChange = "load reduction"
	LoadCombination LoadChange = "combination"
)

// ParseScope maps the label used in data files to a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopePotential, ScopePerspective:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// ParseMaximization maps the label used in data files to a Maximization.
func ParseMaximization(s string) (Maximization, error) {
	switch Maximization(s) {
	case MaximizePower, MaximizeDuration:
		return Maximization(s), nil
	}
	return "", fmt.Errorf("unknown maximization %q", s)
}

// ParseLoadChange maps the label used in data files to a LoadChange.
func ParseLoadChange(s string) (LoadChange, error) {
	switch LoadChange(s) {
	case LoadIncrease, LoadReduction, LoadCombination:
		return LoadChange(s), nil
	}
	return "", fmt.Errorf("unknown load change %q", s)
}

// MeasureCase describes one flexibility measure in one of its dimensioning
// variants. A measure row from the source data expands into up to eight
// cases (scope x maximization x direction).
type MeasureCase struct {
	TP   string // technology group
	Name string

	Scope        Scope
	Maximization Maximization
	LoadChange   LoadChange

	PowerKW     float64 // shiftable power in kW
	RetrievalH  float64 // retrieval duration in hours
	ActivationH float64 // activation duration in hours
	CatchUpH    float64 // catch-up time in hours
	Frequency   int     // maximum activations per year
}

// ComboKey identifies the fields a load-reduction and a load-increase case
// must share to be considered two halves of the same measure.
type ComboKey struct {
	TP           string
	Name         string
	Scope        Scope
	Maximization Maximization
	Frequency    int
}

// Key returns the pairing key for combination mode.
func (c MeasureCase) Key() ComboKey {
	return ComboKey{TP: c.TP, Name: c.Name, Scope: c.Scope, Maximization: c.Maximization, Frequency: c.Frequency}
}

// CycleH returns the full cycle length in hours: retrieval plus activation
// plus catch-up. A new activation can start at most once per cycle.
func (c MeasureCase) CycleH() float64 {
	return c.RetrievalH + c.ActivationH + c.CatchUpH
}

// LoadChangeMWh returns the energy shifted per quarter hour in MWh, negative
// for a load reduction. Combination cases carry no energy of their own.
func (c MeasureCase) LoadChangeMWh() float64 {
	mwh := c.PowerKW / 1000 / 4
	switch c.LoadChange {
	case LoadReduction:
		return -mwh
	case LoadCombination:
		return 0
	}
	return mwh
}

// Validate checks the categorical fields and the numeric domain. Numeric
// oddities such as NaN durations are not errors here, the normalizer coerces
// them.
func (c MeasureCase) Validate() error {
	if _, err := ParseScope(string(c.Scope)); err != nil {
		return fmt.Errorf("measure %s/%s: %w", c.TP, c.Name, err)
	}
	if _, err := ParseMaximization(string(c.Maximization)); err != nil {
		return fmt.Errorf("measure %s/%s: %w", c.TP, c.Name, err)
	}
	if _, err := ParseLoadChange(string(c.LoadChange)); err != nil {
		return fmt.Errorf("measure %s/%s: %w", c.TP, c.Name, err)
	}
	if c.PowerKW < 0 {
		return fmt.Errorf("measure %s/%s: power must not be negative", c.TP, c.Name)
	}
	if c.Frequency < 0 {
		return fmt.Errorf("measure %s/%s: frequency must not be negative", c.TP, c.Name)
	}
	return nil
}
