package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flexworks/co2flex/core/model"
)

func seriesFixture(points []struct{ price, emf float64 }) []model.SeriesPoint {
	out := make([]model.SeriesPoint, len(points))
	for i, p := range points {
		out[i] = model.SeriesPoint{Price: p.price, EMF: p.emf}
	}
	return out
}

func TestParseAnnualSeries(t *testing.T) {
	in := ";Strompreis;CO₂-Emissionsfaktor des Strommix\n" +
		"0;-4.08;345.5\n" +
		"1;12.5;300\n" +
		"2;0;0\n"
	series, err := ParseAnnualSeries(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	if series[0].Price != -4.08 || series[0].EMF != 345.5 {
		t.Errorf("unexpected first point: %+v", series[0])
	}
	if series[1].Price != 12.5 || series[1].EMF != 300 {
		t.Errorf("unexpected second point: %+v", series[1])
	}
}

func TestParseAnnualSeriesEnglishHeader(t *testing.T) {
	in := "price;emf\n10;400\n"
	series, err := ParseAnnualSeries(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(series) != 1 || series[0].Price != 10 || series[0].EMF != 400 {
		t.Errorf("unexpected series: %+v", series)
	}
}

func TestParseAnnualSeriesStripsBOM(t *testing.T) {
	in := "﻿price;emf\n1;2\n"
	series, err := ParseAnnualSeries(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
}

func TestParseAnnualSeriesMissingColumn(t *testing.T) {
	in := "index;Strompreis\n0;10\n"
	if _, err := ParseAnnualSeries(strings.NewReader(in)); err == nil {
		t.Fatal("expected error for missing emission factor column")
	}
}

func TestParseAnnualSeriesBadValue(t *testing.T) {
	in := "price;emf\n10;400\noops;400\n"
	_, err := ParseAnnualSeries(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected error for non-numeric price")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestParseAnnualSeriesSkipsBlankLines(t *testing.T) {
	in := "price;emf\n1;2\n\n3;4\n"
	series, err := ParseAnnualSeries(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
}

func TestSeriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preis_und_emf_2023.csv")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	pts := seriesFixture([]struct{ price, emf float64 }{{-4.08, 345.5}, {12.5, 300}})
	if err := WriteAnnualSeries(f, pts); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAnnualSeries(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(pts) {
		t.Fatalf("expected %d points, got %d", len(pts), len(got))
	}
	for i := range pts {
		if got[i] != pts[i] {
			t.Errorf("point %d: expected %+v, got %+v", i, pts[i], got[i])
		}
	}
}

func TestParseAverageReference(t *testing.T) {
	in := "Jahr;mittlerer Strompreis [EUR/MWh];spez. CO2 Emissionen [g CO2/kWh]\n" +
		"2022;230.57;434\n" +
		"2023;95.18;381\n"
	avg, err := ParseAverageReference(strings.NewReader(in), 2023)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if avg.Price != 95.18 || avg.EMF != 381 {
		t.Errorf("unexpected averages: %+v", avg)
	}
}

func TestParseAverageReferenceYearMissing(t *testing.T) {
	in := "Jahr;mittlerer Strompreis [EUR/MWh];spez. CO2 Emissionen [g CO2/kWh]\n2022;230.57;434\n"
	_, err := ParseAverageReference(strings.NewReader(in), 2030)
	if err == nil {
		t.Fatal("expected error for missing year")
	}
	if !strings.Contains(err.Error(), "2030") {
		t.Errorf("error should name the year: %v", err)
	}
}

func TestAveragesFromSeries(t *testing.T) {
	series := seriesFixture([]struct{ price, emf float64 }{{10, 300}, {20, 400}, {30, 500}})
	avg, err := AveragesFromSeries(series)
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if math.Abs(avg.Price-20) > 1e-12 || math.Abs(avg.EMF-400) > 1e-12 {
		t.Errorf("unexpected averages: %+v", avg)
	}
}

func TestAveragesFromEmptySeries(t *testing.T) {
	if _, err := AveragesFromSeries(nil); err == nil {
		t.Fatal("expected error for empty series")
	}
}
