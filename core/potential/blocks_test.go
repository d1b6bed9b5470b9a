package potential

import (
	"testing"

	"github.com/flexworks/co2flex/core/model"
)

func TestBlockLength(t *testing.T) {
	checks := []struct {
		c    model.MeasureCase
		want int
	}{
		{model.MeasureCase{RetrievalH: 0.25}, 1},
		{model.MeasureCase{RetrievalH: 0.25, CatchUpH: 0.25}, 2},
		{model.MeasureCase{RetrievalH: 1, ActivationH: 0.25, CatchUpH: 0.75}, 8},
		// Raw activation durations stay off-grid and truncate.
		{model.MeasureCase{RetrievalH: 0.25, ActivationH: 0.1}, 1},
	}
	for i, ck := range checks {
		if got := BlockLength(ck.c); got != ck.want {
			t.Errorf("check %d: expected %d, got %d", i, ck.want, got)
		}
	}
}

func TestPartition(t *testing.T) {
	points := []model.ReductionPoint{
		{Emission: 1, Cost: 9},
		{Emission: 2, Cost: 3},
		{Emission: -1, Cost: 4},
		{Emission: 5, Cost: -2},
		{Emission: 0, Cost: 0},
	}
	c := model.MeasureCase{RetrievalH: 0.5} // L=2

	blocks := Partition(points, c)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	// Block 0: emission max at 1 (2 > 1), cost max at 0.
	if blocks[0].MaxEmission != 2 || blocks[0].AssocCost != 3 {
		t.Errorf("block 0 emission side: got %+v", blocks[0])
	}
	if blocks[0].MaxCost != 9 || blocks[0].AssocEmission != 1 {
		t.Errorf("block 0 cost side: got %+v", blocks[0])
	}
	if blocks[0].EmissionIndex != 1 || blocks[0].CostIndex != 0 {
		t.Errorf("block 0 indices: got %+v", blocks[0])
	}
	// Block 1: emission max at 3, cost max at 2.
	if blocks[1].MaxEmission != 5 || blocks[1].AssocCost != -2 || blocks[1].MaxCost != 4 || blocks[1].AssocEmission != -1 {
		t.Errorf("block 1: got %+v", blocks[1])
	}
	// Block 2 is the short tail.
	if blocks[2].EmissionIndex != 4 || blocks[2].CostIndex != 4 {
		t.Errorf("block 2: got %+v", blocks[2])
	}
}

func TestPartitionTieKeepsFirstIndex(t *testing.T) {
	points := []model.ReductionPoint{
		{Emission: 7, Cost: 1},
		{Emission: 7, Cost: 1},
		{Emission: 7, Cost: 1},
		{Emission: 7, Cost: 1},
	}
	c := model.MeasureCase{RetrievalH: 1} // L=4
	blocks := Partition(points, c)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].EmissionIndex != 0 || blocks[0].CostIndex != 0 {
		t.Fatalf("tie must keep the first index, got %+v", blocks[0])
	}
}

func TestPartitionDegenerate(t *testing.T) {
	if b := Partition(nil, model.MeasureCase{RetrievalH: 0.25}); b != nil {
		t.Fatalf("expected nil for empty points, got %v", b)
	}
	pts := []model.ReductionPoint{{Emission: 1}}
	if b := Partition(pts, model.MeasureCase{}); b != nil {
		t.Fatalf("expected nil for zero cycle length, got %v", b)
	}
}
