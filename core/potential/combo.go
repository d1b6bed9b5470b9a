package potential

import (
	"fmt"

	"github.com/flexworks/co2flex/core/model"
)

// CombineBlocks merges the block lists of a load-reduction and a
// load-increase case that share the same cycle length. Per index the
// dominant direction is kept; when neither direction dominates both
// objectives the block is split between them.
func CombineBlocks(reduction, increase []model.Block) ([]model.Block, error) {
	if len(reduction) != len(increase) {
		return nil, fmt.Errorf("block count mismatch: %d vs %d", len(reduction), len(increase))
	}
	out := make([]model.Block, len(reduction))
	for i := range reduction {
		out[i] = dominant(reduction[i], increase[i])
	}
	return out, nil
}

// dominant resolves one block pair. Comparisons are strict; a tie on either
// objective falls through to the last branch, which takes the increase's
// emission side and the reduction's cost side.
func dominant(r, i model.Block) model.Block {
	switch {
	case r.MaxEmission > i.MaxEmission && r.MaxCost > i.MaxCost:
		return r
	case i.MaxEmission > r.MaxEmission && i.MaxCost > r.MaxCost:
		return i
	case r.MaxEmission > i.MaxEmission && i.MaxCost > r.MaxCost:
		return model.Block{
			MaxEmission:   r.MaxEmission,
			AssocCost:     r.AssocCost,
			MaxCost:       i.MaxCost,
			AssocEmission: i.AssocEmission,
			EmissionIndex: r.EmissionIndex,
			CostIndex:     i.CostIndex,
		}
	default:
		return model.Block{
			MaxEmission:   i.MaxEmission,
			AssocCost:     i.AssocCost,
			MaxCost:       r.MaxCost,
			AssocEmission: r.AssocEmission,
			EmissionIndex: i.EmissionIndex,
			CostIndex:     r.CostIndex,
		}
	}
}
