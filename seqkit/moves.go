package seqkit

import (
	"math/rand"

	"github.com/plystack/laminate/ply"
)

// swapMirrorPair swaps seq[i]<->seq[j] and their mirror-image positions
// seq[n-1-i]<->seq[n-1-j], preserving mid-plane symmetry by construction.
// Returns the two mirror indices (mi, mj) for do/undo bookkeeping.
func swapMirrorPair(seq ply.Sequence, i, j int) (mi, mj int) {
	n := len(seq)
	mi, mj = n-1-i, n-1-j
	seq[i], seq[j] = seq[j], seq[i]
	seq[mi], seq[mj] = seq[mj], seq[mi]
	return mi, mj
}

// violatesAfterSwap reports whether any of the four touched indices now
// participates in a 0/90 adjacency.
func violatesAfterSwap(seq ply.Sequence, i, j, mi, mj int) bool {
	for _, idx := range [4]int{i, j, mi, mj} {
		if createsViolationAround(seq, idx) {
			return true
		}
	}
	return false
}

// eligibleLeftIndices returns left-half indices excluding the protected
// outer positions {0,1}, i.e. [2, h).
func eligibleLeftIndices(seq ply.Sequence) []int {
	h := seq.HalfLen()
	if h <= 2 {
		return nil
	}
	out := make([]int, 0, h-2)
	for i := 2; i < h; i++ {
		out = append(out, i)
	}
	return out
}

// SymmetryPreservingSwap picks two distinct left-half indices (excluding
// {0,1}), swaps them along with their mirrors, and rolls back if the move
// introduces a 0/90 adjacency. Returns whether a swap was applied.
func SymmetryPreservingSwap(seq ply.Sequence, rng *rand.Rand) bool {
	elig := eligibleLeftIndices(seq)
	if len(elig) < 2 {
		return false
	}
	i := elig[rng.Intn(len(elig))]
	j := i
	for j == i {
		j = elig[rng.Intn(len(elig))]
	}
	return applySwapIfValid(seq, i, j)
}

func applySwapIfValid(seq ply.Sequence, i, j int) bool {
	if seq[i] == seq[j] {
		return false // no-op swap; never counts as an applied move
	}
	mi, mj := swapMirrorPair(seq, i, j)
	if violatesAfterSwap(seq, i, j, mi, mj) {
		swapMirrorPair(seq, i, j) // undo (swap is its own inverse)
		return false
	}
	return true
}

// BalanceAwareMove finds a +45 and a -45 position in the left half
// (excluding {0,1}), swaps them and their mirrors, and rolls back on
// adjacency violation.
func BalanceAwareMove(seq ply.Sequence, rng *rand.Rand) bool {
	elig := eligibleLeftIndices(seq)
	var plus, minus []int
	for _, i := range elig {
		switch seq[i] {
		case ply.AnglePlus45:
			plus = append(plus, i)
		case ply.AngleMinus45:
			minus = append(minus, i)
		}
	}
	if len(plus) == 0 || len(minus) == 0 {
		return false
	}
	i := plus[rng.Intn(len(plus))]
	j := minus[rng.Intn(len(minus))]
	return applySwapIfValid(seq, i, j)
}

// GroupingAwareMove enumerates all symmetry-preserving swaps that
// strictly reduce the adjacent-identical pair count, picks one uniformly
// at random, applies it, and returns whether an improving swap existed.
func GroupingAwareMove(seq ply.Sequence, rng *rand.Rand) bool {
	elig := eligibleLeftIndices(seq)
	if len(elig) < 2 {
		return false
	}
	before := ComputeGroupingStats(seq).AdjacentPairs

	type pair struct{ i, j int }
	var improving []pair
	for a := 0; a < len(elig); a++ {
		for b := a + 1; b < len(elig); b++ {
			i, j := elig[a], elig[b]
			if seq[i] == seq[j] {
				continue
			}
			mi, mj := swapMirrorPair(seq, i, j)
			ok := !violatesAfterSwap(seq, i, j, mi, mj)
			after := ComputeGroupingStats(seq).AdjacentPairs
			swapMirrorPair(seq, i, j) // always undo; we're only probing
			if ok && after < before {
				improving = append(improving, pair{i, j})
			}
		}
	}
	if len(improving) == 0 {
		return false
	}
	p := improving[rng.Intn(len(improving))]
	mi, mj := swapMirrorPair(seq, p.i, p.j)
	_ = mi
	_ = mj
	return true
}
