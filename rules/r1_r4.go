package rules

import (
	"fmt"

	"github.com/plystack/laminate/ply"
)

// r1Symmetry implements R1 (spec.md §4.1): penalty accumulates across
// mirror-pair mismatches, each mismatch weighted by its normalized
// distance from the mid-plane, capped at weight.
func r1Symmetry(seq ply.Sequence, weight float64) ply.RuleResult {
	n := seq.Len()
	h := seq.HalfLen()
	if h == 0 {
		return ply.RuleResult{ID: ply.R1Symmetry, Weight: weight, Score: weight, Reason: "no mirror pairs"}
	}
	sum := 0.0
	mismatches := 0
	for i := 0; i < h; i++ {
		if seq[i] != seq[n-1-i] {
			mismatches++
			sum += ply.NormalizedMidplaneDistance(i, n)
		}
	}
	penalty := weight * (sum / float64(h))
	return ply.RuleResult{
		ID:     ply.R1Symmetry,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: fmt.Sprintf("%d/%d mirror pairs mismatched", mismatches, h),
	}
}

// r2Balance implements R2: d = |count(+45) - count(-45)|; penalty scales
// with d relative to the average of the two counts.
func r2Balance(seq ply.Sequence, weight float64) ply.RuleResult {
	counts := seq.Counts()
	p45, m45 := counts.Get(ply.AnglePlus45), counts.Get(ply.AngleMinus45)
	d := abs(p45 - m45)
	denom := maxInt(1, (p45+m45)/2)
	penalty := weight * minFloat(1, float64(d)/float64(denom))
	return ply.RuleResult{
		ID:     ply.R2Balance45,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: fmt.Sprintf("+45=%d -45=%d diff=%d", p45, m45, d),
	}
}

// r3Percentage implements R3: each angle whose ratio count/n falls outside
// [0.08, 0.67] contributes weight/4 penalty.
func r3Percentage(seq ply.Sequence, weight float64) ply.RuleResult {
	n := seq.Len()
	counts := seq.Counts()
	penalty := 0.0
	violations := 0
	if n > 0 {
		for i := 0; i < ply.NumAngles; i++ {
			ratio := float64(counts[i]) / float64(n)
			if ratio < 0.08 || ratio > 0.67 {
				penalty += weight / 4
				violations++
			}
		}
	}
	return ply.RuleResult{
		ID:     ply.R3Percentage,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: fmt.Sprintf("%d angle(s) outside [0.08,0.67]", violations),
	}
}

// r4ExternalPlies implements R4: start from full score, subtract 15% of
// weight for each matching outer pair (seq[0]==seq[1], seq[n-2]==seq[n-1]).
func r4ExternalPlies(seq ply.Sequence, weight float64) ply.RuleResult {
	n := seq.Len()
	penalty := 0.0
	if n >= 2 {
		if seq[0] == seq[1] {
			penalty += 0.15 * weight
		}
		if seq[n-2] == seq[n-1] {
			penalty += 0.15 * weight
		}
	}
	return ply.RuleResult{
		ID:     ply.R4ExternalPlies,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: "outer-pair angle match check",
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
