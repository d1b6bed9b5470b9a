package potential

import (
	"sort"

	"github.com/flexworks/co2flex/core/model"
)

// Aggregate condenses the blocks of one measure case into its annual result.
// Per requested objective the k best blocks are taken, k being the measure's
// activation frequency; blocks whose best value is not positive contribute
// nothing and are dropped. The paired Assoc value of every kept block is
// summed alongside, it tells what the other objective does at those same
// activation times.
//
// An objective that was not requested comes back with Computed=false, which
// is distinct from a computed potential of zero.
func Aggregate(blocks []model.Block, k int, wantEmission, wantCost bool) (emission, cost model.ObjectiveResult) {
	if wantEmission {
		emission = sumTop(blocks, k,
			func(b model.Block) (float64, float64) { return b.MaxEmission, b.AssocCost })
	}
	if wantCost {
		cost = sumTop(blocks, k,
			func(b model.Block) (float64, float64) { return b.MaxCost, b.AssocEmission })
	}
	return emission, cost
}

// sumTop sorts a copy of blocks descending by the objective value and sums
// the first k positive entries. The sort is stable so ties resolve to the
// earlier block of the year.
func sumTop(blocks []model.Block, k int, pick func(model.Block) (max, assoc float64)) model.ObjectiveResult {
	sorted := make([]model.Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		mi, _ := pick(sorted[i])
		mj, _ := pick(sorted[j])
		return mi > mj
	})

	if k > len(sorted) {
		k = len(sorted)
	}
	res := model.ObjectiveResult{Computed: true}
	for _, b := range sorted[:max(k, 0)] {
		m, assoc := pick(b)
		if m <= 0 {
			// Descending order, nothing positive follows.
			break
		}
		res.Reduction += m
		res.Associated += assoc
	}
	return res
}
