package dropoff

import (
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/plystack/laminate/seqkit"
)

// deterministicFallback is spec.md §4.4's last-resort path: when the
// randomized search exhausts its attempt budget without a surviving
// candidate, fall back to a single greedy pass that drops the plan's
// required positions one at a time, always picking the least-damaging
// available position for each removal rather than sampling. DESIGN.md
// notes this as a simplified stand-in for the donor's full
// beam-search fallback (width 16): a greedy pass is grounded in the same
// "pick the locally-best option" idea while staying within this
// engine's effort budget, at the cost of not exploring the few
// alternate orderings a beam would keep alive.
func deterministicFallback(parent ply.Sequence, target ply.PlyCounts, plan removalPlan, weights ply.WeightMap, scorer rules.Scorer) (ply.Sequence, ply.FitnessResult, bool) {
	n := parent.Len()
	h := parent.HalfLen()

	marked := make(map[int]bool)
	leftUsed := make(map[int]bool)

	greedyPickLeft := func(angle ply.Angle) (int, bool) {
		best, bestScore := -1, -1.0
		for p := 2; p < h; p++ {
			if parent[p] != angle || leftUsed[p] {
				continue
			}
			trial := removeIndices(parent, withMarked(marked, p, n-1-p))
			fit := scorer.Score(trial, weights)
			if fit.Total > bestScore {
				best, bestScore = p, fit.Total
			}
		}
		return best, best >= 0
	}

	for i := 0; i < ply.NumAngles; i++ {
		angle := ply.AngleAt(i)
		for c := 0; c < plan.pairDrops[i]; c++ {
			pos, ok := greedyPickLeft(angle)
			if !ok {
				return nil, ply.FitnessResult{}, false
			}
			leftUsed[pos] = true
			marked[pos], marked[n-1-pos] = true, true
		}
	}

	if plan.hasBreakPair {
		pos, ok := greedyPickLeft(plan.breakPairOf)
		if !ok {
			return nil, ply.FitnessResult{}, false
		}
		leftUsed[pos] = true
		marked[n-1-pos] = true
	}

	middleAngle := ply.Angle(0)
	if plan.removeMiddle {
		if mid, ok := parent.MiddleIndex(); ok {
			marked[mid] = true
			middleAngle = parent[mid]
		}
	}

	for i := 0; i < ply.NumAngles; i++ {
		angle := ply.AngleAt(i)
		if plan.singleDrops[i] == 0 {
			continue
		}
		if plan.removeMiddle && angle == middleAngle {
			continue
		}
		if plan.hasBreakPair && angle == plan.breakPairOf {
			continue
		}
		pos, ok := greedySingleInterior(parent, angle, marked, weights, scorer)
		if !ok {
			return nil, ply.FitnessResult{}, false
		}
		marked[pos] = true
	}

	child := removeIndices(parent, marked)
	if child.Counts() != target {
		return nil, ply.FitnessResult{}, false
	}
	seqkit.RepairZeroNinetyAdjacency(child)
	if !child.SatisfiesHardConstraints() {
		return nil, ply.FitnessResult{}, false
	}

	fit := scorer.Score(child, weights)
	return child, fit, fit.Total > 0
}

func greedySingleInterior(parent ply.Sequence, angle ply.Angle, marked map[int]bool, weights ply.WeightMap, scorer rules.Scorer) (int, bool) {
	n := len(parent)
	best, bestScore := -1, -1.0
	for i, a := range parent {
		if a != angle || marked[i] {
			continue
		}
		if i == 0 || i == 1 || i == n-2 || i == n-1 {
			continue
		}
		trial := removeIndices(parent, withMarked(marked, i))
		fit := scorer.Score(trial, weights)
		if fit.Total > bestScore {
			best, bestScore = i, fit.Total
		}
	}
	return best, best >= 0
}

// withMarked returns a copy of marked with the given extra indices set,
// used for side-effect-free what-if evaluation during the greedy pass.
func withMarked(marked map[int]bool, extra ...int) map[int]bool {
	out := make(map[int]bool, len(marked)+len(extra))
	for k := range marked {
		out[k] = true
	}
	for _, e := range extra {
		out[e] = true
	}
	return out
}
