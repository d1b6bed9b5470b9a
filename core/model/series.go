package model

// SeriesPoint is one quarter hour of the annual market series.
type SeriesPoint struct {
	Price float64 // day-ahead electricity price in EUR/MWh
	EMF   float64 // CO2 emission factor of the grid mix in g/kWh
}

// AverageReference carries the annual mean values a window reduction is
// measured against.
type AverageReference struct {
	Price float64 // EUR/MWh
	EMF   float64 // g/kWh
}

// Quarter-hour counts of a regular and a leap year. The engine accepts any
// series length, these are only used for ingest plausibility logging.
const (
	QuartersRegularYear = 365 * 96
	QuartersLeapYear    = 366 * 96
)
