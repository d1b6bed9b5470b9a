package dataset

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/flexworks/co2flex/core/model"
)

// Header aliases for the averages file.
var (
	yearAliases     = []string{"Jahr", "year"}
	avgPriceAliases = []string{"mittlerer Strompreis [EUR/MWh]", "price"}
	avgEMFAliases   = []string{"spez. CO2 Emissionen [g CO2/kWh]", "emf"}
)

// ReadAverageReference reads the per-year averages file and returns the row
// for the requested year.
func ReadAverageReference(path string, year int) (model.AverageReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.AverageReference{}, fmt.Errorf("open averages: %w", err)
	}
	defer f.Close()
	avg, err := ParseAverageReference(f, year)
	if err != nil {
		return model.AverageReference{}, fmt.Errorf("parse averages %s: %w", path, err)
	}
	return avg, nil
}

// ParseAverageReference parses the semicolon CSV of annual averages and picks
// the row whose year column matches. A missing year is an error, the caller
// has no sensible fallback for it.
func ParseAverageReference(r io.Reader, year int) (model.AverageReference, error) {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if err != nil {
		return model.AverageReference{}, fmt.Errorf("read header: %w", err)
	}
	stripBOM(header)

	yearIdx := findColumn(header, yearAliases)
	priceIdx := findColumn(header, avgPriceAliases)
	emfIdx := findColumn(header, avgEMFAliases)
	if yearIdx < 0 || priceIdx < 0 || emfIdx < 0 {
		return model.AverageReference{}, fmt.Errorf("missing year, price or emission column in header %v", header)
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.AverageReference{}, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(rec) || yearIdx >= len(rec) {
			continue
		}
		y, err := strconv.Atoi(strings.TrimSpace(rec[yearIdx]))
		if err != nil || y != year {
			continue
		}
		price, err := fieldFloat(rec, priceIdx)
		if err != nil {
			return model.AverageReference{}, fmt.Errorf("line %d: price: %w", line, err)
		}
		emf, err := fieldFloat(rec, emfIdx)
		if err != nil {
			return model.AverageReference{}, fmt.Errorf("line %d: emission factor: %w", line, err)
		}
		return model.AverageReference{Price: price, EMF: emf}, nil
	}
	return model.AverageReference{}, fmt.Errorf("year %d not found", year)
}

// AveragesFromSeries derives the reference averages from the series itself.
// Used when the averages file carries no row for the requested year yet.
func AveragesFromSeries(series []model.SeriesPoint) (model.AverageReference, error) {
	if len(series) == 0 {
		return model.AverageReference{}, fmt.Errorf("empty series")
	}
	prices := make([]float64, len(series))
	emfs := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.Price
		emfs[i] = p.EMF
	}
	return model.AverageReference{
		Price: stat.Mean(prices, nil),
		EMF:   stat.Mean(emfs, nil),
	}, nil
}
