package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// ChartSink renders a per-measure bar chart of the annual reductions as a
// standalone HTML file.
type ChartSink struct {
	dir      string
	basename string
}

func NewChartSink(dir, basename string) *ChartSink {
	return &ChartSink{dir: dir, basename: basename}
}

// RecordResults writes <dir>/<basename>_<year>.html. Objectives that were
// not computed render as gaps.
func (s *ChartSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, runFileName(s.basename, run, "html"))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Annual reduction potential %d", run.Year),
			Subtitle: fmt.Sprintf("run %s", run.ID),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "measure"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "reduction"}),
	)

	var labels []string
	var emission, cost []opts.BarData
	for _, r := range results {
		labels = append(labels, chartLabel(r))
		emission = append(emission, barValue(r.Emission))
		cost = append(cost, barValue(r.Cost))
	}
	bar.SetXAxis(labels).
		AddSeries("max. emission [kg CO2/a]", emission).
		AddSeries("max. cost [EUR/a]", cost)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := bar.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

func chartLabel(r model.AnnualResult) string {
	return fmt.Sprintf("%s %s (%s, %s)", r.TP, r.Name, r.Scope, r.LoadChange)
}

func barValue(o model.ObjectiveResult) opts.BarData {
	if !o.Computed {
		return opts.BarData{Value: nil}
	}
	return opts.BarData{Value: o.Reduction}
}
