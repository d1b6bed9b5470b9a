package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/flexworks/co2flex/core/model"
)

// ReadMeasuresXLSX reads the wide measure sheet from the first sheet of an
// Excel workbook. The column layout matches the CSV variant.
func ReadMeasuresXLSX(path string) ([]model.MeasureCase, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open measures workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	cases, err := parseMeasureTable(rows)
	if err != nil {
		return nil, fmt.Errorf("parse measures %s: %w", path, err)
	}
	return cases, nil
}
