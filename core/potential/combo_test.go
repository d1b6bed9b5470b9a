package potential

import (
	"testing"

	"github.com/flexworks/co2flex/core/model"
)

func TestDominantReductionWinsBoth(t *testing.T) {
	r := model.Block{MaxEmission: 5, AssocCost: 1, MaxCost: 6, AssocEmission: 2, EmissionIndex: 10, CostIndex: 11}
	i := model.Block{MaxEmission: 3, AssocCost: 9, MaxCost: 4, AssocEmission: 9, EmissionIndex: 20, CostIndex: 21}
	if got := dominant(r, i); got != r {
		t.Fatalf("expected the reduction block, got %+v", got)
	}
}

func TestDominantIncreaseWinsBoth(t *testing.T) {
	r := model.Block{MaxEmission: 3, MaxCost: 4}
	i := model.Block{MaxEmission: 5, AssocCost: 1, MaxCost: 6, AssocEmission: 2, EmissionIndex: 30, CostIndex: 31}
	if got := dominant(r, i); got != i {
		t.Fatalf("expected the increase block, got %+v", got)
	}
}

func TestDominantSplitAcrossDirections(t *testing.T) {
	r := model.Block{MaxEmission: 5, AssocCost: 1, MaxCost: 2, AssocEmission: 3, EmissionIndex: 1, CostIndex: 2}
	i := model.Block{MaxEmission: 4, AssocCost: 8, MaxCost: 7, AssocEmission: 6, EmissionIndex: 3, CostIndex: 4}
	got := dominant(r, i)
	want := model.Block{MaxEmission: 5, AssocCost: 1, MaxCost: 7, AssocEmission: 6, EmissionIndex: 1, CostIndex: 4}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestDominantTieFallsToFinalBranch(t *testing.T) {
	// Equal emission maxima: no strict comparison matches, the final branch
	// takes the increase's emission side and the reduction's cost side.
	r := model.Block{MaxEmission: 5, AssocCost: 1, MaxCost: 9, AssocEmission: 2, EmissionIndex: 1, CostIndex: 2}
	i := model.Block{MaxEmission: 5, AssocCost: 3, MaxCost: 4, AssocEmission: 6, EmissionIndex: 3, CostIndex: 4}
	got := dominant(r, i)
	want := model.Block{MaxEmission: 5, AssocCost: 3, MaxCost: 9, AssocEmission: 2, EmissionIndex: 3, CostIndex: 2}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestCombineBlocks(t *testing.T) {
	r := []model.Block{
		{MaxEmission: -1, MaxCost: -1},
		{MaxEmission: 2, AssocCost: 1, MaxCost: 2, AssocEmission: 1},
	}
	i := []model.Block{
		{MaxEmission: 1, AssocCost: 1, MaxCost: 1, AssocEmission: 1},
		{MaxEmission: -2, MaxCost: -2},
	}
	out, err := CombineBlocks(r, i)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(out))
	}
	if out[0] != i[0] {
		t.Errorf("block 0: increase dominates, got %+v", out[0])
	}
	if out[1] != r[1] {
		t.Errorf("block 1: reduction dominates, got %+v", out[1])
	}
}

func TestCombineBlocksLengthMismatch(t *testing.T) {
	if _, err := CombineBlocks(make([]model.Block, 2), make([]model.Block, 3)); err == nil {
		t.Fatal("expected an error for mismatched block counts")
	}
}
