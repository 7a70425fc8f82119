package rules

import (
	"fmt"
	"math"
	"sort"

	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/seqkit"
)

// r5Distribution implements R5 (spec.md §4.1): for each angle present,
// combine (60%) normalized spacing standard deviation and (40%) a
// span-ratio deficit; each angle contributes up to weight/4.
func r5Distribution(seq ply.Sequence, weight float64) ply.RuleResult {
	n := seq.Len()
	if n == 0 {
		return ply.RuleResult{ID: ply.R5Distribution, Weight: weight, Score: weight, Reason: "empty sequence"}
	}
	perAngle := weight / 4
	penalty := 0.0
	for i := 0; i < ply.NumAngles; i++ {
		a := ply.AngleAt(i)
		idx := indicesOf(seq, a)
		if len(idx) == 0 {
			continue
		}
		penalty += perAngle * angleDistributionPenaltyRatio(idx, n)
	}
	return ply.RuleResult{
		ID:     ply.R5Distribution,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: "spacing uniformity and span coverage",
	}
}

// angleDistributionPenaltyRatio returns a value in [0,1]: the combined
// (60% spacing std, 40% span deficit) penalty ratio for one angle's
// occurrence indices idx within a sequence of length n.
func angleDistributionPenaltyRatio(idx []int, n int) float64 {
	count := len(idx)
	idealSpacing := float64(n) / float64(count)

	stdRatio := 0.0
	if count >= 2 {
		gaps := make([]float64, 0, count-1)
		for i := 1; i < count; i++ {
			gaps = append(gaps, float64(idx[i]-idx[i-1]))
		}
		stdRatio = stddev(gaps) / idealSpacing
		if stdRatio > 1 {
			stdRatio = 1
		}
	}

	spanRatio := 0.0
	if n > 1 {
		spanRatio = float64(idx[count-1]-idx[0]) / float64(n-1)
	}
	deficit := 0.0
	if spanRatio < 0.6 {
		deficit = (0.6 - spanRatio) / 0.6
	}

	return 0.6*stdRatio + 0.4*deficit
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return math.Sqrt(variance)
}

func indicesOf(seq ply.Sequence, a ply.Angle) []int {
	var out []int
	for i, v := range seq {
		if v == a {
			out = append(out, i)
		}
	}
	sort.Ints(out) // already sorted by construction; defensive.
	return out
}

// r6Grouping implements R6 (spec.md §4.1): penalizes long runs, runs of
// exactly 3, adjacent-identical 0/90 pairs, and overall clustering.
func r6Grouping(seq ply.Sequence, weight float64) ply.RuleResult {
	n := seq.Len()
	gs := seqkit.ComputeGroupingStats(seq)

	penalty := 0.0
	if gs.MaxRunLength > 3 {
		penalty += float64(gs.MaxRunLength-3) * 0.35 * weight
	}
	penalty += float64(gs.Runs3) * 2.0
	penalty += float64(count0_90AdjacentPairs(seq)) * 0.3
	if n > 1 {
		penalty += 0.50 * weight * (float64(gs.AdjacentPairs) / float64(n-1))
	}

	return ply.RuleResult{
		ID:     ply.R6Grouping,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: fmt.Sprintf("maxRun=%d runs3=%d adjPairs=%d", gs.MaxRunLength, gs.Runs3, gs.AdjacentPairs),
	}
}

func count0_90AdjacentPairs(seq ply.Sequence) int {
	n := 0
	for i := 0; i+1 < len(seq); i++ {
		if seq[i] == seq[i+1] && (seq[i] == ply.Angle0 || seq[i] == ply.Angle90) {
			n++
		}
	}
	return n
}
