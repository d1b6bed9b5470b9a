package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// PDFSink renders the result table as a one-page-per-run PDF report.
type PDFSink struct {
	dir      string
	basename string
}

func NewPDFSink(dir, basename string) *PDFSink {
	return &PDFSink{dir: dir, basename: basename}
}

var pdfColWidths = []float64{18, 60, 26, 32, 30, 27, 27, 27, 27}

// RecordResults writes <dir>/<basename>_<year>.pdf.
func (s *PDFSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, runFileName(s.basename, run, "pdf"))

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 8)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("Annual reduction potential %d", run.Year), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("run %s, %d cases, finished %s", run.ID, run.Cases, run.Finished.Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "emission in kg CO2 per year, cost in EUR per year", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range resultHeader {
		pdf.CellFormat(pdfColWidths[i], 6, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, r := range results {
		row := resultRow(r)
		for i, v := range row {
			align := "L"
			if i >= 5 {
				align = "R"
			}
			pdf.CellFormat(pdfColWidths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
