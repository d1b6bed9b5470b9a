package potential

import "github.com/flexworks/co2flex/core/model"

// BlockLength returns the measure's full cycle length in quarter hours,
// truncated to an integer. Activation durations can stay off-grid (raw
// seconds from the data sheets), truncation keeps those cycles aligned with
// the grid they mostly fill.
func BlockLength(c model.MeasureCase) int {
	return int(c.CycleH() * 4)
}

// Partition cuts the reduction series into consecutive blocks of the
// measure's cycle length and keeps, per block, the best start for each
// objective together with the other objective's value at that start. The
// last block may be shorter. On ties the earliest start wins.
func Partition(points []model.ReductionPoint, c model.MeasureCase) []model.Block {
	n := len(points)
	length := BlockLength(c)
	if n == 0 || length < 1 {
		return nil
	}

	blocks := make([]model.Block, 0, (n+length-1)/length)
	for s := 0; s < n; s += length {
		end := min(s+length, n)
		be, bc := s, s
		for i := s + 1; i < end; i++ {
			if points[i].Emission > points[be].Emission {
				be = i
			}
			if points[i].Cost > points[bc].Cost {
				bc = i
			}
		}
		blocks = append(blocks, model.Block{
			MaxEmission:   points[be].Emission,
			AssocCost:     points[be].Cost,
			MaxCost:       points[bc].Cost,
			AssocEmission: points[bc].Emission,
			EmissionIndex: be,
			CostIndex:     bc,
		})
	}
	return blocks
}
