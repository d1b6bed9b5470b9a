// Package potential implements the annual reduction pipeline for flexibility
// measures. For one measure case the stages are:
//
//  1. WindowReductions: for every quarter hour of the year, the emission and
//     cost reduction an activation starting there would achieve against the
//     annual average.
//  2. Partition: the year cut into cycle-length blocks, keeping the best
//     start per objective and block.
//  3. Aggregate: the k best blocks summed into the annual potential, k being
//     the measure's activation frequency.
//
// The Engine runs this pipeline for a batch of cases on a worker pool and,
// in combination mode, merges matching load-reduction/load-increase pairs
// into an additional combination result per pair.
package potential
