package config

import "fmt"

// CalcConfig selects what a run computes.
type CalcConfig struct {
	// Year picks the series file and the averages row.
	Year int `json:"year"`
	// MaxCO2 enables the emission objective.
	MaxCO2 bool `json:"max_co2"`
	// MaxCost enables the cost objective.
	MaxCost bool `json:"max_cost"`
	// Combination merges increase/reduction pairs into combined measures.
	Combination bool `json:"combination"`
	// Workers bounds the computation parallelism, 0 uses all CPUs.
	Workers int `json:"workers"`
	// Basename prefixes the per-run output files.
	Basename string `json:"basename"`
	// OutputDir receives the adapted measure sheet.
	OutputDir string `json:"output_dir"`
	// AdaptedMeasures writes the normalized measure sheet next to the results.
	AdaptedMeasures bool `json:"adapted_measures"`
}

// Validate checks plausibility of the run settings.
func (c CalcConfig) Validate() error {
	if c.Year < 1900 || c.Year > 2200 {
		return fmt.Errorf("implausible year %d", c.Year)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.Basename == "" {
		return fmt.Errorf("basename is required")
	}
	return nil
}
