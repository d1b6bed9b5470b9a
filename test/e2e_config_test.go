package test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	"github.com/flexworks/co2flex/app"
	"github.com/flexworks/co2flex/config"
)

const e2eConfig = `data:
  dir: DATADIR
  series_pattern: preis_und_emf_%d.csv
  averages_file: mittlere_preise_und_emf.csv
  measures_file: dsm_rohdaten.csv
calc:
  year: 2023
  max_co2: true
  max_cost: true
  workers: 1
  output_dir: OUTDIR
output:
  sinks:
    - type: csv
      conf:
        dir: OUTDIR
    - type: xlsx
      conf:
        dir: OUTDIR
    - type: sqlite
      conf:
        path: OUTDIR/results.db
`

// TestE2EConfigFileRun drives a full run the way the CLI does: a YAML file
// through config.Load, the service against a real data directory, and three
// file sinks verified on disk.
func TestE2EConfigFileRun(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writePotentialData(t, dataDir)

	raw := strings.ReplaceAll(e2eConfig, "DATADIR", dataDir)
	raw = strings.ReplaceAll(raw, "OUTDIR", outDir)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(raw), 0644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load cfg: %v", err)
	}
	if cfg.Calc.Basename != "annual_potential" {
		t.Fatalf("basename default not applied: %q", cfg.Calc.Basename)
	}

	svc, err := app.New(cfg)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer svc.Close()

	run, results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// One measure row with both directions filled, no combination requested.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	csvData, err := os.ReadFile(filepath.Join(outDir, "annual_potential_2023.csv"))
	if err != nil {
		t.Fatalf("csv missing: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}

	wb, err := excelize.OpenFile(filepath.Join(outDir, "annual_potential_2023.xlsx"))
	if err != nil {
		t.Fatalf("xlsx missing: %v", err)
	}
	defer wb.Close()
	for _, cell := range []string{"A2", "A3"} {
		v, err := wb.GetCellValue("results", cell)
		if err != nil {
			t.Fatalf("cell %s: %v", cell, err)
		}
		if v != "TP1" {
			t.Errorf("cell %s: expected TP1, got %q", cell, v)
		}
	}

	db, err := sql.Open("sqlite", filepath.Join(outDir, "results.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM results WHERE run_id = ?", run.ID).Scan(&count); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 result rows in sqlite, got %d", count)
	}
	var year int
	if err := db.QueryRow("SELECT year FROM runs WHERE id = ?", run.ID).Scan(&year); err != nil {
		t.Fatalf("run row: %v", err)
	}
	if year != 2023 {
		t.Errorf("expected year 2023 in runs table, got %d", year)
	}
}
