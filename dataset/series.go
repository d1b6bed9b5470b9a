// Package dataset reads and writes the semicolon-separated data files the
// engine works with: the annual price/emission-factor series, the per-year
// average reference and the wide-format measure sheets. Column headers are
// matched by name, the German names of the source sheets and their English
// equivalents are both accepted.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flexworks/co2flex/core/model"
)

// Header aliases for the annual series file.
var (
	priceAliases = []string{"Strompreis", "price"}
	emfAliases   = []string{"CO₂-Emissionsfaktor des Strommix", "CO2-Emissionsfaktor des Strommix", "emf"}
)

// ReadAnnualSeries reads a series file from disk.
func ReadAnnualSeries(path string) ([]model.SeriesPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series: %w", err)
	}
	defer f.Close()
	series, err := ParseAnnualSeries(f)
	if err != nil {
		return nil, fmt.Errorf("parse series %s: %w", path, err)
	}
	return series, nil
}

// ParseAnnualSeries parses a semicolon CSV with one quarter hour per row.
// Columns are located by header name; extra columns, such as the unnamed
// index column spreadsheet exports carry, are ignored.
func ParseAnnualSeries(r io.Reader) ([]model.SeriesPoint, error) {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	stripBOM(header)

	priceIdx := findColumn(header, priceAliases)
	emfIdx := findColumn(header, emfAliases)
	if priceIdx < 0 || emfIdx < 0 {
		return nil, fmt.Errorf("missing price or emission factor column in header %v", header)
	}

	var series []model.SeriesPoint
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		price, err := fieldFloat(rec, priceIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", line, err)
		}
		emf, err := fieldFloat(rec, emfIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d: emission factor: %w", line, err)
		}
		series = append(series, model.SeriesPoint{Price: price, EMF: emf})
	}
	return series, nil
}

// WriteAnnualSeries writes the series in the same layout ReadAnnualSeries
// accepts. Used by the fetch command to store downloaded years.
func WriteAnnualSeries(w io.Writer, series []model.SeriesPoint) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write([]string{"", "Strompreis", "CO₂-Emissionsfaktor des Strommix"}); err != nil {
		return err
	}
	for i, p := range series {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.FormatFloat(p.EMF, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// stripBOM removes a UTF-8 byte order mark from the first header cell.
// Spreadsheet exports regularly carry one.
func stripBOM(header []string) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "﻿")
	}
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		name := strings.TrimSpace(h)
		for _, a := range aliases {
			if name == a {
				return i
			}
		}
	}
	return -1
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func fieldFloat(rec []string, idx int) (float64, error) {
	if idx >= len(rec) {
		return 0, fmt.Errorf("column %d missing", idx+1)
	}
	raw := strings.TrimSpace(rec[idx])
	if raw == "" {
		return 0, fmt.Errorf("column %d empty", idx+1)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %d: %q is not a number", idx+1, raw)
	}
	return v, nil
}
