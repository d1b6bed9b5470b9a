package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DataConfig locates the input files.
type DataConfig struct {
	// Dir is the base directory of all input files.
	Dir string `json:"dir"`
	// SeriesPattern names the per-year series file, with %d for the year.
	SeriesPattern string `json:"series_pattern"`
	// AveragesFile holds the per-year price and emission averages.
	AveragesFile string `json:"averages_file"`
	// MeasuresFile is the wide measure sheet, CSV or XLSX.
	MeasuresFile string `json:"measures_file"`
}

// Validate checks mandatory fields.
func (c DataConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("data dir is required")
	}
	if !strings.Contains(c.SeriesPattern, "%d") {
		return fmt.Errorf("series pattern %q must contain %%d for the year", c.SeriesPattern)
	}
	if c.MeasuresFile == "" {
		return fmt.Errorf("measures file is required")
	}
	return nil
}

// SeriesPath returns the series file of the given year.
func (c DataConfig) SeriesPath(year int) string {
	return filepath.Join(c.Dir, fmt.Sprintf(c.SeriesPattern, year))
}

func (c DataConfig) AveragesPath() string {
	return filepath.Join(c.Dir, c.AveragesFile)
}

func (c DataConfig) MeasuresPath() string {
	return filepath.Join(c.Dir, c.MeasuresFile)
}

// MeasuresXLSX reports whether the measure sheet is an Excel workbook.
func (c DataConfig) MeasuresXLSX() bool {
	return strings.EqualFold(filepath.Ext(c.MeasuresFile), ".xlsx")
}
