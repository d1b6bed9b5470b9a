// Package sink provides the result sink implementations: CSV, Excel, PDF and
// chart files, SQLite, InfluxDB, MQTT and Prometheus. All of them register
// with the core sink factory in init.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// resultHeader is the column layout of the result table, shared by the file
// sinks.
var resultHeader = []string{
	"TP", "name", "scope", "maximization", "load change",
	"max. emission", "ass. cost", "max. cost", "ass. emission",
}

// resultRow renders one annual result. Objectives that were not computed
// render as NaN, matching the sheets downstream consumers already parse.
func resultRow(r model.AnnualResult) []string {
	return []string{
		r.TP,
		r.Name,
		string(r.Scope),
		string(r.Maximization),
		string(r.LoadChange),
		objectiveString(r.Emission, true),
		objectiveString(r.Emission, false),
		objectiveString(r.Cost, true),
		objectiveString(r.Cost, false),
	}
}

func objectiveString(o model.ObjectiveResult, reduction bool) string {
	if !o.Computed {
		return "NaN"
	}
	v := o.Associated
	if reduction {
		v = o.Reduction
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteResultsCSV writes the result table as a semicolon CSV.
func WriteResultsCSV(w io.Writer, results []model.AnnualResult) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(resultHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(resultRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVSink writes each run's results to <dir>/<basename>_<year>.csv.
type CSVSink struct {
	dir      string
	basename string
}

// NewCSVSink creates a CSV file sink. An empty basename falls back to the
// run's basename.
func NewCSVSink(dir, basename string) *CSVSink {
	return &CSVSink{dir: dir, basename: basename}
}

// RecordResults writes the result file for the run.
func (s *CSVSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	path := filepath.Join(s.dir, runFileName(s.basename, run, "csv"))
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteResultsCSV(f, results); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// runFileName builds <basename>_<year>.<ext>, falling back to the run's
// basename when the sink has none configured.
func runFileName(basename string, run coresink.RunInfo, ext string) string {
	base := basename
	if base == "" {
		base = run.Basename
	}
	if base == "" {
		base = "annual_potential"
	}
	return fmt.Sprintf("%s_%d.%s", base, run.Year, ext)
}
