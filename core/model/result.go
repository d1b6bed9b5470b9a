package model

// ReductionPoint holds the reduction a single activation starting at one
// quarter hour would achieve, relative to the annual average. Emission is in
// kg CO2, cost in EUR. Positive values beat the average.
type ReductionPoint struct {
	Emission float64
	Cost     float64
}

// Block summarizes one cycle-length segment of the year: the best start for
// each objective and the other objective's value at that same start.
type Block struct {
	MaxEmission   float64 // best emission reduction in the block, kg CO2
	AssocCost     float64 // cost reduction at the emission-optimal start, EUR
	MaxCost       float64 // best cost reduction in the block, EUR
	AssocEmission float64 // emission reduction at the cost-optimal start, kg CO2

	EmissionIndex int // series index of the emission-optimal start
	CostIndex     int // series index of the cost-optimal start
}

// ObjectiveResult is one half of an annual result. Computed distinguishes a
// genuine zero potential from an objective that was never evaluated.
type ObjectiveResult struct {
	Reduction  float64
	Associated float64
	Computed   bool
}

// AnnualResult is the outcome of the full pipeline for one measure case.
// Emission holds the emission-led numbers (max emission reduction and the
// cost reduction coupled to it), Cost the cost-led ones.
type AnnualResult struct {
	TP           string
	Name         string
	Scope        Scope
	Maximization Maximization
	LoadChange   LoadChange

	Emission ObjectiveResult
	Cost     ObjectiveResult
}
