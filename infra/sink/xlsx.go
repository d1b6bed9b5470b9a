package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// XLSXSink writes each run to an Excel workbook with a results sheet and a
// run sheet carrying the run metadata.
type XLSXSink struct {
	dir      string
	basename string
}

func NewXLSXSink(dir, basename string) *XLSXSink {
	return &XLSXSink{dir: dir, basename: basename}
}

// RecordResults writes <dir>/<basename>_<year>.xlsx.
func (s *XLSXSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, runFileName(s.basename, run, "xlsx"))

	wb := excelize.NewFile()
	defer wb.Close()
	wb.SetSheetName("Sheet1", "results")

	header := make([]interface{}, len(resultHeader))
	for i, h := range resultHeader {
		header[i] = h
	}
	if err := wb.SetSheetRow("results", "A1", &header); err != nil {
		return err
	}
	for i, r := range results {
		row := []interface{}{
			r.TP, r.Name, string(r.Scope), string(r.Maximization), string(r.LoadChange),
			objectiveCell(r.Emission, true),
			objectiveCell(r.Emission, false),
			objectiveCell(r.Cost, true),
			objectiveCell(r.Cost, false),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow("results", cell, &row); err != nil {
			return err
		}
	}

	if err := writeRunSheet(wb, run); err != nil {
		return err
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// objectiveCell keeps computed values numeric so spreadsheet formulas work.
func objectiveCell(o model.ObjectiveResult, reduction bool) interface{} {
	if !o.Computed {
		return "NaN"
	}
	if reduction {
		return o.Reduction
	}
	return o.Associated
}

func writeRunSheet(wb *excelize.File, run coresink.RunInfo) error {
	if _, err := wb.NewSheet("run"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"run id", run.ID},
		{"year", run.Year},
		{"started", run.Started.Format(time.RFC3339)},
		{"finished", run.Finished.Format(time.RFC3339)},
		{"series points", run.SeriesLen},
		{"cases", run.Cases},
		{"combination", run.Combination},
		{"avg price [EUR/MWh]", run.Avg.Price},
		{"avg emission factor [g CO2/kWh]", run.Avg.EMF},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow("run", cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
