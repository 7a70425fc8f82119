package optimizer

import (
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/plystack/laminate/seqkit"
)

// hillClimbCap is the maximum number of accepted swaps (spec.md §4.3
// Phase 3).
const hillClimbCap = 60

// hillClimbKey is the explicit compound acceptance key of spec.md §4.3
// Phase 3 and §9 ("implement as explicit compound-key types with a total
// order function; never rely on implicit tuple ordering"). Priority,
// descending: runs-of-3 reduction, adjacent-pair reduction, their raw
// combined delta, then fitness.
type hillClimbKey struct {
	runs3Reduction    int
	adjPairsReduction int
	rawDelta          int
	fitness           float64
}

// better reports whether k is strictly preferred over other under the
// lexicographic order of spec.md §4.3.
func (k hillClimbKey) better(other hillClimbKey) bool {
	if k.runs3Reduction != other.runs3Reduction {
		return k.runs3Reduction > other.runs3Reduction
	}
	if k.adjPairsReduction != other.adjPairsReduction {
		return k.adjPairsReduction > other.adjPairsReduction
	}
	if k.rawDelta != other.rawDelta {
		return k.rawDelta > other.rawDelta
	}
	return k.fitness > other.fitness
}

// hillClimb repeatedly examines every symmetry-preserving left-half swap
// (excluding positions {0,1}) and accepts the single best one under
// hillClimbKey, stopping when no improving swap exists or the iteration
// cap is reached. Candidates whose resulting fitness is <= 0 are ignored.
func hillClimb(start individual, weights ply.WeightMap, scorer rules.Scorer) individual {
	return hillClimbCapped(start, weights, scorer, hillClimbCap)
}

// Polish runs the same bounded hill-climb local search Phase 3 uses, but
// with a caller-supplied iteration cap — used by the orchestrator to
// polish a drop-off child with a 25-iteration budget (spec.md §4.5)
// rather than Phase 3's own 60-iteration cap.
func Polish(seq ply.Sequence, fitness ply.FitnessResult, weights ply.WeightMap, scorer rules.Scorer, maxIterations int) (ply.Sequence, ply.FitnessResult) {
	out := hillClimbCapped(individual{seq: seq, fitness: fitness}, weights, scorer, maxIterations)
	out.fitness = rules.Exact{}.Score(out.seq, weights)
	return out.seq, out.fitness
}

func hillClimbCapped(start individual, weights ply.WeightMap, scorer rules.Scorer, cap int) individual {
	current := individual{seq: start.seq.Clone(), fitness: start.fitness}
	curGS := seqkit.ComputeGroupingStats(current.seq)

	for iter := 0; iter < cap; iter++ {
		elig := eligibleIndicesFor(current.seq)
		if len(elig) < 2 {
			break
		}

		baseline := hillClimbKey{fitness: current.fitness.Total}
		var bestKey hillClimbKey
		haveBest := false
		bestI, bestJ := -1, -1

		for a := 0; a < len(elig); a++ {
			for b := a + 1; b < len(elig); b++ {
				i, j := elig[a], elig[b]
				if current.seq[i] == current.seq[j] {
					continue
				}
				mi, mj := swapMirrorPairExported(current.seq, i, j)
				valid := !violatesAfterSwap(current.seq, i, j, mi, mj)
				var trialFit ply.FitnessResult
				var trialGS seqkit.GroupingStats
				if valid {
					trialFit = scorer.Score(current.seq, weights)
					trialGS = seqkit.ComputeGroupingStats(current.seq)
				}
				swapMirrorPairExported(current.seq, i, j) // always undo the probe

				if !valid || trialFit.Total <= 0 {
					continue
				}

				key := hillClimbKey{
					runs3Reduction:    curGS.Runs3 - trialGS.Runs3,
					adjPairsReduction: curGS.AdjacentPairs - trialGS.AdjacentPairs,
					fitness:           trialFit.Total,
				}
				key.rawDelta = key.runs3Reduction + key.adjPairsReduction

				if !haveBest || key.better(bestKey) {
					bestKey, haveBest = key, true
					bestI, bestJ = i, j
				}
			}
		}

		if !haveBest || !bestKey.better(baseline) {
			break
		}

		swapMirrorPairExported(current.seq, bestI, bestJ)
		current.fitness = scorer.Score(current.seq, weights)
		curGS = seqkit.ComputeGroupingStats(current.seq)
	}

	return current
}

func eligibleIndicesFor(seq ply.Sequence) []int {
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

// swapMirrorPairExported is a thin local wrapper so this file does not
// need to reach into seqkit's unexported swap helper; it performs the
// identical symmetric swap-and-mirror used by seqkit's move operators.
func swapMirrorPairExported(seq ply.Sequence, i, j int) (mi, mj int) {
	n := len(seq)
	mi, mj = n-1-i, n-1-j
	seq[i], seq[j] = seq[j], seq[i]
	seq[mi], seq[mj] = seq[mj], seq[mi]
	return mi, mj
}

// violatesAfterSwap mirrors seqkit's adjacency check for the four touched
// indices after a mirrored swap.
func violatesAfterSwap(seq ply.Sequence, i, j, mi, mj int) bool {
	for _, idx := range [4]int{i, j, mi, mj} {
		if idx > 0 && formsZeroNinety90(seq[idx-1], seq[idx]) {
			return true
		}
		if idx+1 < len(seq) && formsZeroNinety90(seq[idx], seq[idx+1]) {
			return true
		}
	}
	return false
}

func formsZeroNinety90(a, b ply.Angle) bool {
	return (a == ply.Angle0 && b == ply.Angle90) || (a == ply.Angle90 && b == ply.Angle0)
}
