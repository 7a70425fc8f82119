// Package seqkit implements the Sequence Primitives of spec.md §4.2:
// symmetric skeleton construction, adjacency repair, the three
// symmetry-preserving move operators, and grouping statistics. Every move
// operator here is an explicit do/undo edit on an owned, mutable buffer
// (spec.md §9: "implement as explicit do/undo rather than copy-on-write to
// keep inner loops allocation-free").
package seqkit

import "github.com/plystack/laminate/ply"

// GroupingStats is the grouping/run breakdown spec.md §4.2 requires:
// adjacent-identical pair count, counts of runs of length exactly 2, 3,
// and >= 4, and the maximum run length.
type GroupingStats struct {
	AdjacentPairs int // count of indices i where seq[i] == seq[i+1]
	Runs2         int // runs of length exactly 2
	Runs3         int // runs of length exactly 3
	RunsGE4       int // runs of length >= 4
	MaxRunLength  int
}

// ComputeGroupingStats scans seq once and returns its run statistics.
func ComputeGroupingStats(seq ply.Sequence) GroupingStats {
	var gs GroupingStats
	n := len(seq)
	if n == 0 {
		return gs
	}
	runLen := 1
	flush := func() {
		if runLen >= 2 {
			gs.AdjacentPairs += runLen - 1
		}
		switch {
		case runLen == 2:
			gs.Runs2++
		case runLen == 3:
			gs.Runs3++
		case runLen >= 4:
			gs.RunsGE4++
		}
		if runLen > gs.MaxRunLength {
			gs.MaxRunLength = runLen
		}
	}
	for i := 1; i < n; i++ {
		if seq[i] == seq[i-1] {
			runLen++
		} else {
			flush()
			runLen = 1
		}
	}
	flush()
	return gs
}

// CountGroupsOfSize returns the number of maximal runs of exactly size k
// (k>=1).
func CountGroupsOfSize(seq ply.Sequence, k int) int {
	n := len(seq)
	if n == 0 {
		return 0
	}
	count := 0
	runLen := 1
	for i := 1; i <= n; i++ {
		if i < n && seq[i] == seq[i-1] {
			runLen++
			continue
		}
		if runLen == k {
			count++
		}
		runLen = 1
	}
	return count
}
