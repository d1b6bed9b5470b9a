package potential

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/flexworks/co2flex/core/model"
)

// WindowWidth returns the retrieval window width in quarter hours. Durations
// are normalized, so the width is exact.
func WindowWidth(c model.MeasureCase) int {
	return int(math.Round(c.RetrievalH * 4))
}

// WindowReductions computes, for every start index t of the series, the
// emission and cost reduction one activation of c starting at t achieves
// relative to the annual average. A window that would run past the end of
// the series yields zero for both objectives.
//
// Shifting load away from a quarter hour saves its actual emission/cost and
// re-buys at the average, so for a load reduction the value is positive
// exactly where the series is above average, for a load increase where it is
// below.
func WindowReductions(series []model.SeriesPoint, avg model.AverageReference, c model.MeasureCase) []model.ReductionPoint {
	n := len(series)
	out := make([]model.ReductionPoint, n)
	if n == 0 {
		return out
	}

	w := WindowWidth(c)
	lc := c.LoadChangeMWh()

	emf := make([]float64, n)
	price := make([]float64, n)
	for i, p := range series {
		emf[i] = p.EMF
		price[i] = p.Price
	}
	floats.CumSum(emf, emf)
	floats.CumSum(price, price)

	baseEMF := lc * avg.EMF * float64(w)
	basePrice := lc * avg.Price * float64(w)
	for t := 0; t < n; t++ {
		if t+w > n {
			// Remaining starts stay at the zero value.
			break
		}
		out[t] = model.ReductionPoint{
			Emission: -lc*prefixRange(emf, t, w) + baseEMF,
			Cost:     -lc*prefixRange(price, t, w) + basePrice,
		}
	}
	return out
}

// prefixRange reads the sum over [t, t+w) from a cumulative-sum slice.
func prefixRange(cum []float64, t, w int) float64 {
	if w <= 0 {
		return 0
	}
	hi := cum[t+w-1]
	if t == 0 {
		return hi
	}
	return hi - cum[t-1]
}
