package app

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/flexworks/co2flex/config"
	"github.com/flexworks/co2flex/core/factory"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// writeTestData lays out a small but complete data directory: eight quarter
// hours with a cheap and an expensive half, matching averages, and one
// reduction measure.
func writeTestData(t *testing.T, dir string) {
	t.Helper()
	series := ";Strompreis;CO₂-Emissionsfaktor des Strommix\n"
	for i := 0; i < 8; i++ {
		v := "10"
		if i >= 4 {
			v = "50"
		}
		series += strconv.Itoa(i) + ";" + v + ";" + v + "\n"
	}
	averages := "Jahr;mittlerer Strompreis [EUR/MWh];spez. CO2 Emissionen [g CO2/kWh]\n2023;30;30\n"
	measures := "TP;Name;" +
		"Potential_maxLeistung_LV_Leistung [kW];Potential_maxLeistung_LV_Abrufdauer [h];" +
		"Potential_maxLeistung_LV_Aktivierungsdauer [s];Potential_maxLeistung_LV_Nachholzeit [h];" +
		"Potential_maxLeistung_LV_Abrufhäufigkeit [1/a]\n" +
		"TP1;chp;4;0.25;0;0;2\n"

	files := map[string]string{
		"preis_und_emf_2023.csv":      series,
		"mittlere_preise_und_emf.csv": averages,
		"dsm_rohdaten.csv":            measures,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func testConfig(dataDir, outDir string) *config.Config {
	return &config.Config{
		Data: config.DataConfig{
			Dir:           dataDir,
			SeriesPattern: "preis_und_emf_%d.csv",
			AveragesFile:  "mittlere_preise_und_emf.csv",
			MeasuresFile:  "dsm_rohdaten.csv",
		},
		Calc: config.CalcConfig{
			Year:            2023,
			MaxCO2:          true,
			MaxCost:         true,
			Basename:        "annual_potential",
			OutputDir:       outDir,
			AdaptedMeasures: true,
			Workers:         2,
		},
		Output: coresink.Config{
			Sinks: []factory.ModuleConfig{
				{Type: "csv", Conf: map[string]any{"dir": outDir}},
			},
		},
	}
}

func TestServiceRun(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeTestData(t, dataDir)

	svc, err := New(testConfig(dataDir, outDir))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer svc.Close()

	run, results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.Year != 2023 || run.SeriesLen != 8 || run.Cases != 1 {
		t.Errorf("unexpected run info: %+v", run)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if !r.Emission.Computed || !r.Cost.Computed {
		t.Fatalf("both objectives should be computed: %+v", r)
	}
	// Two retrievals of 4 kW over the expensive quarter hours save
	// 2 * 0.001 MWh * 20 g/kWh difference = 0.04 kg and 0.04 EUR.
	if math.Abs(r.Emission.Reduction-0.04) > 1e-9 || math.Abs(r.Cost.Reduction-0.04) > 1e-9 {
		t.Errorf("unexpected reductions: %+v", r)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "annual_potential_2023.csv"))
	if err != nil {
		t.Fatalf("result file missing: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "TP1;chp;potential;power;load reduction;") {
		t.Errorf("unexpected result row: %s", lines[1])
	}
	fields := strings.Split(lines[1], ";")
	for _, idx := range []int{5, 6, 7, 8} {
		v, err := strconv.ParseFloat(fields[idx], 64)
		if err != nil {
			t.Fatalf("field %d: %v", idx, err)
		}
		if math.Abs(v-0.04) > 1e-9 {
			t.Errorf("field %d: expected 0.04, got %v", idx, v)
		}
	}

	adapted, err := os.ReadFile(filepath.Join(outDir, "adapted_dsm_rohdaten.csv"))
	if err != nil {
		t.Fatalf("adapted measures missing: %v", err)
	}
	if !strings.Contains(string(adapted), "TP1;chp;potential;power;load reduction;4;0.25;0;0;2") {
		t.Errorf("unexpected adapted measures: %s", adapted)
	}
}

func TestServiceRunMissingSeries(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeTestData(t, dataDir)

	cfg := testConfig(dataDir, outDir)
	cfg.Calc.Year = 1999
	cfg.Calc.Workers = 1

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer svc.Close()

	if _, _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing series file")
	}
}

func TestLoadAdaptedMeasuresNormalizes(t *testing.T) {
	dataDir := t.TempDir()
	writeTestData(t, dataDir)
	measures := "TP;Name;" +
		"Potential_maxLeistung_LV_Leistung [kW];Potential_maxLeistung_LV_Abrufdauer [h];" +
		"Potential_maxLeistung_LV_Aktivierungsdauer [s];Potential_maxLeistung_LV_Nachholzeit [h];" +
		"Potential_maxLeistung_LV_Abrufhäufigkeit [1/a]\n" +
		"TP1;chp;10;0.1;180;0.05;12\n"
	if err := os.WriteFile(filepath.Join(dataDir, "dsm_rohdaten.csv"), []byte(measures), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := New(testConfig(dataDir, t.TempDir()))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer svc.Close()

	cases, err := svc.LoadAdaptedMeasures()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(cases))
	}
	c := cases[0]
	// 0.1 h retrieval, 0.05 h activation and 0.05 h catch-up fit one
	// quarter hour, so the cycle collapses and the power rescales.
	if c.RetrievalH != 0.25 || c.ActivationH != 0 || c.CatchUpH != 0 {
		t.Errorf("cycle not collapsed: %+v", c)
	}
	if c.PowerKW != 4 {
		t.Errorf("power not rescaled: %v", c.PowerKW)
	}
}
