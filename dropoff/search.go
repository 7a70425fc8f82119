package dropoff

import (
	"math"
	"math/rand"
	"sort"

	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/plystack/laminate/seqkit"
)

// maxAttempts is the randomized search budget of spec.md §4.4.
const maxAttempts = 3000

// minScoreRatio thresholds per rule (spec.md §4.4); a candidate is
// rejected if more than two rules fall below their threshold.
var minScoreRatio = [ply.NumRules]float64{
	ply.R1Symmetry:       0.85,
	ply.R2Balance45:      0.80,
	ply.R3Percentage:     0.80,
	ply.R4ExternalPlies:  0.75,
	ply.R5Distribution:   0.70,
	ply.R6Grouping:       0.75,
	ply.R7Buckling:       0.75,
	ply.R8LateralBending: 0.85,
}

// rankKey is the explicit 13-field lexicographic minimization key of
// spec.md §4.4, kept as an explicit compound type per spec.md §9 rather
// than relying on implicit tuple ordering.
type rankKey struct {
	ruleViolations  int
	runs3           int
	runsGE4         int
	r6Penalty       float64
	ninetyDropHalf  float64 // 90°-drop count * 0.5
	r1PlusR8Penalty float64
	spacingStd      float64
	balanceGap      float64
	negDiversity    float64
	negHasPM45Drop  int
	negHas0Drop     int
	totalPenalty    float64
	negTotalScore   float64
}

// less reports whether k ranks strictly better (minimization) than other.
func (k rankKey) less(other rankKey) bool {
	af := []float64{
		float64(k.ruleViolations), float64(k.runs3), float64(k.runsGE4), k.r6Penalty,
		k.ninetyDropHalf, k.r1PlusR8Penalty, k.spacingStd, k.balanceGap, k.negDiversity,
		float64(k.negHasPM45Drop), float64(k.negHas0Drop), k.totalPenalty, k.negTotalScore,
	}
	bf := []float64{
		float64(other.ruleViolations), float64(other.runs3), float64(other.runsGE4), other.r6Penalty,
		other.ninetyDropHalf, other.r1PlusR8Penalty, other.spacingStd, other.balanceGap, other.negDiversity,
		float64(other.negHasPM45Drop), float64(other.negHas0Drop), other.totalPenalty, other.negTotalScore,
	}
	for i := range af {
		if af[i] != bf[i] {
			return af[i] < bf[i]
		}
	}
	return false
}

// candidateResult is a surviving randomized-search candidate.
type candidateResult struct {
	child    ply.Sequence
	removed  map[ply.Angle][]int // parent indices removed, per angle
	fitness  ply.FitnessResult
	key      rankKey
}

// randomizedSearch runs up to maxAttempts randomized drop-set attempts
// and returns the best surviving candidate by rankKey, or ok=false if
// none survived every rejection rule.
func randomizedSearch(parent ply.Sequence, target ply.PlyCounts, plan removalPlan, weights ply.WeightMap, scorer rules.Scorer, rng *rand.Rand) (candidateResult, bool) {
	var best candidateResult
	haveBest := false

	for attempt := 0; attempt < maxAttempts; attempt++ {
		cand, ok := tryOneAttempt(parent, target, plan, weights, scorer, rng)
		if !ok {
			continue
		}
		if !haveBest || cand.key.less(best.key) {
			best, haveBest = cand, true
		}
	}
	return best, haveBest
}

func tryOneAttempt(parent ply.Sequence, target ply.PlyCounts, plan removalPlan, weights ply.WeightMap, scorer rules.Scorer, rng *rand.Rand) (candidateResult, bool) {
	n := parent.Len()
	h := parent.HalfLen()

	marked := make(map[int]bool)
	leftUsed := make(map[int]bool)
	removedByAngle := make(map[ply.Angle][]int)
	// leftPairIdx/leftPairByAngle hold only the left-half positions chosen
	// for symmetric-pair removal (spec.md §4.4: "select left-half
	// positions per angle for symmetric-pair removals"), excluding the
	// break-pair position, the middle ply, and any single-ply drops — the
	// domain the consecutive-adjacency, spacing, and angle-diversity
	// rejection rules and rankKey.spacingStd are defined over.
	var leftPairIdx []int
	leftPairByAngle := make(map[ply.Angle][]int)

	pickLeft := func(angle ply.Angle) (int, bool) {
		var candidates []int
		for p := 2; p < h; p++ {
			if parent[p] == angle && !leftUsed[p] {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			return 0, false
		}
		return candidates[rng.Intn(len(candidates))], true
	}

	for i := 0; i < ply.NumAngles; i++ {
		angle := ply.AngleAt(i)
		for c := 0; c < plan.pairDrops[i]; c++ {
			pos, ok := pickLeft(angle)
			if !ok {
				return candidateResult{}, false
			}
			leftUsed[pos] = true
			mirror := n - 1 - pos
			marked[pos], marked[mirror] = true, true
			removedByAngle[angle] = append(removedByAngle[angle], pos, mirror)
			leftPairIdx = append(leftPairIdx, pos)
			leftPairByAngle[angle] = append(leftPairByAngle[angle], pos)
		}
	}

	if plan.hasBreakPair {
		pos, ok := pickLeft(plan.breakPairOf)
		if !ok {
			return candidateResult{}, false
		}
		leftUsed[pos] = true
		mirror := n - 1 - pos
		marked[mirror] = true
		removedByAngle[plan.breakPairOf] = append(removedByAngle[plan.breakPairOf], mirror)
	}

	if plan.removeMiddle {
		mid, ok := parent.MiddleIndex()
		if ok && !marked[mid] {
			marked[mid] = true
			removedByAngle[parent[mid]] = append(removedByAngle[parent[mid]], mid)
		}
	}

	middleAngle := ply.Angle(0)
	if plan.removeMiddle {
		if mid, ok := parent.MiddleIndex(); ok {
			middleAngle = parent[mid]
		}
	}
	for i := 0; i < ply.NumAngles; i++ {
		angle := ply.AngleAt(i)
		if plan.singleDrops[i] == 0 {
			continue
		}
		if plan.removeMiddle && angle == middleAngle {
			continue // already accounted for by the middle removal
		}
		if plan.hasBreakPair && angle == plan.breakPairOf {
			continue // already accounted for by the pair break
		}
		pos, ok := pickSingleInterior(parent, angle, marked, rng)
		if !ok {
			return candidateResult{}, false
		}
		marked[pos] = true
		removedByAngle[angle] = append(removedByAngle[angle], pos)
	}

	if !passesDropRejectionRules(leftPairIdx, leftPairByAngle, removedByAngle) {
		return candidateResult{}, false
	}

	child := removeIndices(parent, marked)
	if child.Counts() != target {
		return candidateResult{}, false
	}
	seqkit.RepairZeroNinetyAdjacency(child)
	if !child.SatisfiesHardConstraints() {
		return candidateResult{}, false
	}

	fit := scorer.Score(child, weights)
	if fit.Total <= 0 {
		return candidateResult{}, false
	}

	gs := seqkit.ComputeGroupingStats(child)
	if gs.MaxRunLength >= 4 || gs.Runs3 > 3 {
		return candidateResult{}, false
	}

	violations := 0
	for _, r := range fit.Breakdown {
		if r.Weight == 0 {
			continue
		}
		if r.Score/r.Weight < minScoreRatio[r.ID] {
			violations++
		}
	}
	if violations > 2 {
		return candidateResult{}, false
	}

	key := buildRankKey(fit, gs, removedByAngle, leftPairIdx, violations)
	return candidateResult{child: child, removed: removedByAngle, fitness: fit, key: key}, true
}

// pickSingleInterior chooses one occurrence of angle anywhere in parent,
// excluding the four protected outer positions and already-marked
// indices.
func pickSingleInterior(parent ply.Sequence, angle ply.Angle, marked map[int]bool, rng *rand.Rand) (int, bool) {
	n := len(parent)
	var candidates []int
	for i, a := range parent {
		if a != angle || marked[i] {
			continue
		}
		if i == 0 || i == 1 || i == n-2 || i == n-1 {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

func removeIndices(parent ply.Sequence, marked map[int]bool) ply.Sequence {
	out := make(ply.Sequence, 0, len(parent)-len(marked))
	for i, a := range parent {
		if !marked[i] {
			out = append(out, a)
		}
	}
	return out
}

// passesDropRejectionRules applies the primary-search rejection rules of
// spec.md §4.4. The consecutive-adjacency, spacing-uniformity, and
// single-angle-diversity checks are defined over left-half pair-drop
// positions only (leftPairIdx/leftPairByAngle — these exclude the
// break-pair position, the middle ply, and single-ply drops), matching
// both spec.md §4.4's literal "left-half positions" wording and the
// original implementation's `left_drops`/`all_left_drops`, which are
// built and checked before mirrors, the middle ply, the break pair, or
// singles are folded in. The 90° pair-count cap and ±45 presence/balance
// checks apply to every removed position, via removedByAngle.
func passesDropRejectionRules(leftPairIdx []int, leftPairByAngle map[ply.Angle][]int, removedByAngle map[ply.Angle][]int) bool {
	idx := append([]int(nil), leftPairIdx...)
	sort.Ints(idx)

	for i := 1; i < len(idx); i++ {
		if idx[i] == idx[i-1]+1 {
			return false // clustered drops
		}
	}

	if len(idx) >= 2 {
		gaps := make([]float64, 0, len(idx)-1)
		for i := 1; i < len(idx); i++ {
			gaps = append(gaps, float64(idx[i]-idx[i-1]))
		}
		mean := meanOf(gaps)
		if mean > 0 && stddevOf(gaps) > 0.70*mean {
			return false
		}
	}

	total := len(idx)
	anglesUsed := 0
	for _, v := range leftPairByAngle {
		if len(v) > 0 {
			anglesUsed++
		}
	}
	if total > 2 && anglesUsed <= 1 {
		return false // all drops from a single angle
	}

	ninetyPairs := len(removedByAngle[ply.Angle90]) / 2
	if ninetyPairs > 3 {
		return false
	}

	p45 := len(removedByAngle[ply.AnglePlus45])
	m45 := len(removedByAngle[ply.AngleMinus45])
	allTotal := 0
	for _, v := range removedByAngle {
		allTotal += len(v)
	}
	if allTotal >= 4 && p45 == 0 && m45 == 0 {
		return false // no ±45 drop among >=4 total drops
	}
	if p45 > 0 && m45 > 0 {
		diff := p45 - m45
		if diff < 0 {
			diff = -diff
		}
		if diff > 2 {
			return false
		}
	} else if p45 > 2 || m45 > 2 {
		return false // single-sign cluster with nothing on the other side
	}

	return true
}

func buildRankKey(fit ply.FitnessResult, gs seqkit.GroupingStats, removedByAngle map[ply.Angle][]int, leftPairIdx []int, violations int) rankKey {
	var r1Penalty, r6Penalty, r8Penalty float64
	for _, r := range fit.Breakdown {
		switch r.ID {
		case ply.R1Symmetry:
			r1Penalty = r.Penalty()
		case ply.R6Grouping:
			r6Penalty = r.Penalty()
		case ply.R8LateralBending:
			r8Penalty = r.Penalty()
		}
	}

	ninetyPairs := len(removedByAngle[ply.Angle90]) / 2
	p45 := len(removedByAngle[ply.AnglePlus45])
	m45 := len(removedByAngle[ply.AngleMinus45])
	balanceGap := float64(p45 - m45)
	if balanceGap < 0 {
		balanceGap = -balanceGap
	}

	diversity := 0
	for _, idxs := range removedByAngle {
		if len(idxs) > 0 {
			diversity++
		}
	}

	// spacingStd ranks by the same left-half-only domain the spacing
	// rejection rule checks (spec.md §4.4), not every removed index.
	leftIdx := append([]int(nil), leftPairIdx...)
	sort.Ints(leftIdx)
	spacingStd := 0.0
	if len(leftIdx) >= 2 {
		gaps := make([]float64, 0, len(leftIdx)-1)
		for i := 1; i < len(leftIdx); i++ {
			gaps = append(gaps, float64(leftIdx[i]-leftIdx[i-1]))
		}
		spacingStd = stddevOf(gaps)
	}

	totalPenalty := ply.MaxFitness - fit.Total
	hasPM45 := 0
	if p45 > 0 || m45 > 0 {
		hasPM45 = 1
	}
	has0 := 0
	if len(removedByAngle[ply.Angle0]) > 0 {
		has0 = 1
	}

	return rankKey{
		ruleViolations:  violations,
		runs3:           gs.Runs3,
		runsGE4:         gs.RunsGE4,
		r6Penalty:       r6Penalty,
		ninetyDropHalf:  float64(ninetyPairs) * 0.5,
		r1PlusR8Penalty: r1Penalty + r8Penalty,
		spacingStd:      spacingStd,
		balanceGap:      balanceGap,
		negDiversity:    -float64(diversity),
		negHasPM45Drop:  -hasPM45,
		negHas0Drop:     -has0,
		totalPenalty:    totalPenalty,
		negTotalScore:   -fit.Total,
	}
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

func stddevOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := meanOf(xs)
	v := 0.0
	for _, x := range xs {
		d := x - m
		v += d * d
	}
	return math.Sqrt(v / float64(len(xs)))
}
