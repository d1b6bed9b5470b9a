package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/flexworks/co2flex/core/model"
)

// caseGroup names one of the eight column groups of the wide measure sheet:
// scope x maximization x load direction.
type caseGroup struct {
	prefix       string
	scope        model.Scope
	maximization model.Maximization
	direction    model.LoadChange
}

// caseGroups lists the groups in sheet order: Potential before Perspektive,
// maxLeistung before maxAbrufdauer, LE (increase) before LV (reduction).
func caseGroups() []caseGroup {
	var groups []caseGroup
	scopes := []struct {
		label string
		scope model.Scope
	}{
		{"Potential", model.ScopePotential},
		{"Perspektive", model.ScopePerspective},
	}
	maxims := []struct {
		label string
		max   model.Maximization
	}{
		{"maxLeistung", model.MaximizePower},
		{"maxAbrufdauer", model.MaximizeDuration},
	}
	directions := []struct {
		label string
		dir   model.LoadChange
	}{
		{"LE", model.LoadIncrease},
		{"LV", model.LoadReduction},
	}
	for _, s := range scopes {
		for _, m := range maxims {
			for _, d := range directions {
				groups = append(groups, caseGroup{
					prefix:       s.label + "_" + m.label + "_" + d.label,
					scope:        s.scope,
					maximization: m.max,
					direction:    d.dir,
				})
			}
		}
	}
	return groups
}

// Column suffixes within a case group.
const (
	colPower      = "Leistung [kW]"
	colRetrieval  = "Abrufdauer [h]"
	colActivation = "Aktivierungsdauer [s]"
	colCatchUp    = "Nachholzeit [h]"
	colFrequency  = "Abrufhäufigkeit [1/a]"
)

var (
	tpAliases   = []string{"TP", "tp"}
	nameAliases = []string{"Name", "name", "Maßnahme"}
)

// ReadMeasures reads the wide measure sheet from a CSV file. A case exists
// when its power cell is filled; rows can hold anywhere from zero to eight
// cases. Values are returned as read, unit conversion aside: activation
// durations are given in seconds in the sheets and come back in hours.
func ReadMeasures(path string) ([]model.MeasureCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open measures: %w", err)
	}
	defer f.Close()
	cases, err := ParseMeasures(f)
	if err != nil {
		return nil, fmt.Errorf("parse measures %s: %w", path, err)
	}
	return cases, nil
}

// ParseMeasures parses the wide measure sheet from a semicolon CSV stream.
func ParseMeasures(r io.Reader) ([]model.MeasureCase, error) {
	cr := newCSVReader(r)
	var table [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table = append(table, rec)
	}
	return parseMeasureTable(table)
}

// parseMeasureTable turns a header row plus data rows into measure cases.
// Shared by the CSV and XLSX readers.
func parseMeasureTable(table [][]string) ([]model.MeasureCase, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}
	header := table[0]
	stripBOM(header)

	tpIdx := findColumn(header, tpAliases)
	nameIdx := findColumn(header, nameAliases)
	if tpIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("missing TP or Name column in header %v", header)
	}

	groups := resolveGroups(header)
	var cases []model.MeasureCase
	for l, rec := range table[1:] {
		line := l + 2
		if isBlank(rec) {
			continue
		}
		tp := cell(rec, tpIdx)
		name := cell(rec, nameIdx)
		for _, g := range groups {
			c, ok, err := g.parseCase(rec, tp, name)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, g.group.prefix, err)
			}
			if !ok {
				continue
			}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cases = append(cases, c)
		}
	}
	return cases, nil
}

// groupColumns holds the resolved column indices of one case group, -1 for
// columns the sheet does not carry.
type groupColumns struct {
	group      caseGroup
	power      int
	retrieval  int
	activation int
	catchUp    int
	frequency  int
}

func resolveGroups(header []string) []groupColumns {
	var resolved []groupColumns
	for _, g := range caseGroups() {
		resolved = append(resolved, groupColumns{
			group:      g,
			power:      findColumn(header, []string{g.prefix + "_" + colPower}),
			retrieval:  findColumn(header, []string{g.prefix + "_" + colRetrieval}),
			activation: findColumn(header, []string{g.prefix + "_" + colActivation}),
			catchUp:    findColumn(header, []string{g.prefix + "_" + colCatchUp}),
			frequency:  findColumn(header, []string{g.prefix + "_" + colFrequency}),
		})
	}
	return resolved
}

// parseCase extracts one case group from a row. The case exists when the
// power cell is filled; the remaining cells default to NaN so that
// normalization coerces them to zero.
func (g groupColumns) parseCase(rec []string, tp, name string) (model.MeasureCase, bool, error) {
	if g.power < 0 || cell(rec, g.power) == "" {
		return model.MeasureCase{}, false, nil
	}
	power, err := fieldFloat(rec, g.power)
	if err != nil {
		return model.MeasureCase{}, false, fmt.Errorf("power: %w", err)
	}

	retrieval, err := optionalFloat(rec, g.retrieval, colRetrieval)
	if err != nil {
		return model.MeasureCase{}, false, err
	}
	activationSec, err := optionalFloat(rec, g.activation, colActivation)
	if err != nil {
		return model.MeasureCase{}, false, err
	}
	catchUp, err := optionalFloat(rec, g.catchUp, colCatchUp)
	if err != nil {
		return model.MeasureCase{}, false, err
	}
	freq, err := optionalFloat(rec, g.frequency, colFrequency)
	if err != nil {
		return model.MeasureCase{}, false, err
	}

	c := model.MeasureCase{
		TP:           tp,
		Name:         name,
		Scope:        g.group.scope,
		Maximization: g.group.maximization,
		LoadChange:   g.group.direction,
		PowerKW:      power,
		RetrievalH:   retrieval,
		ActivationH:  activationSec / 3600,
		CatchUpH:     catchUp,
	}
	if !math.IsNaN(freq) {
		c.Frequency = int(freq)
	}
	return c, true, nil
}

// optionalFloat reads an optional numeric cell. Missing columns and empty
// cells yield NaN, garbage is an error.
func optionalFloat(rec []string, idx int, name string) (float64, error) {
	if idx < 0 || cell(rec, idx) == "" {
		return math.NaN(), nil
	}
	v, err := fieldFloat(rec, idx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// WriteMeasuresCSV writes cases in long format, one row per case. The run
// command uses it to store the adapted measures next to the results.
func WriteMeasuresCSV(w io.Writer, cases []model.MeasureCase) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	header := []string{
		"TP", "name", "scope", "maximization", "load change",
		"power [kW]", "retrieval duration [h]", "activation duration [h]",
		"catch-up time [h]", "retrieval frequency [1/a]",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range cases {
		rec := []string{
			c.TP,
			c.Name,
			string(c.Scope),
			string(c.Maximization),
			string(c.LoadChange),
			strconv.FormatFloat(c.PowerKW, 'f', -1, 64),
			strconv.FormatFloat(c.RetrievalH, 'f', -1, 64),
			strconv.FormatFloat(c.ActivationH, 'f', -1, 64),
			strconv.FormatFloat(c.CatchUpH, 'f', -1, 64),
			strconv.Itoa(c.Frequency),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
