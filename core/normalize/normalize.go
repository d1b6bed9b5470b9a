// Package normalize snaps raw measure cases onto the quarter-hour grid the
// potential engine computes on.
package normalize

import (
	"math"

	"github.com/flexworks/co2flex/core/model"
)

const (
	gridH        = 0.25 // quarter-hour grid in hours
	hoursPerYear = 8760
)

// Case returns a copy of c fit for the engine: durations on the quarter-hour
// grid, power rescaled so the retrieved energy stays the one specified, and
// the activation frequency capped to what fits into one year.
//
// The activation duration is rounded only for the frequency cap; the stored
// field keeps its raw value unless the whole cycle collapses to a single
// quarter hour. Source data sheets carry activation times of a few seconds
// and the raw value is the one reported back to the user.
func Case(c model.MeasureCase) model.MeasureCase {
	c.PowerKW = zeroNaN(c.PowerKW)
	c.RetrievalH = zeroNaN(c.RetrievalH)
	c.ActivationH = zeroNaN(c.ActivationH)
	c.CatchUpH = zeroNaN(c.CatchUpH)

	origRetrieval := c.RetrievalH
	activation := c.ActivationH

	if c.CycleH() <= gridH {
		c.RetrievalH = gridH
		c.CatchUpH = 0
		c.ActivationH = 0
		activation = 0
	} else {
		c.RetrievalH = ceilToGrid(c.RetrievalH)
		c.CatchUpH = ceilToGrid(c.CatchUpH)
		activation = ceilToGrid(activation)
	}

	if c.RetrievalH > 0 {
		c.PowerKW = c.PowerKW * origRetrieval / c.RetrievalH
	} else {
		c.PowerKW = 0
	}

	duration := c.RetrievalH + activation + c.CatchUpH
	if duration*float64(c.Frequency) > hoursPerYear {
		c.Frequency = int(hoursPerYear / duration)
	}
	return c
}

// Cases normalizes a whole batch in order.
func Cases(cases []model.MeasureCase) []model.MeasureCase {
	out := make([]model.MeasureCase, len(cases))
	for i, c := range cases {
		out[i] = Case(c)
	}
	return out
}

func ceilToGrid(h float64) float64 {
	if math.Mod(h, gridH) == 0 {
		return h
	}
	return (math.Floor(h/gridH) + 1) * gridH
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
