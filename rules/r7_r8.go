package rules

import (
	"fmt"
	"math"

	"github.com/plystack/laminate/ply"
)

// r7Buckling implements R7 (spec.md §4.1): each ±45 ply within normalized
// mid-plane distance 0.15 contributes a penalty term, normalized by the
// count of ±45 plies and scaled by weight.
func r7Buckling(seq ply.Sequence, weight float64) ply.RuleResult {
	n := seq.Len()
	sum := 0.0
	count := 0
	for i, a := range seq {
		if !a.Is45() {
			continue
		}
		count++
		d := ply.NormalizedMidplaneDistance(i, n)
		if d < 0.15 {
			sum += math.Pow((0.15-d)/0.15, 0.5) * 0.5
		}
	}
	penalty := 0.0
	if count > 0 {
		penalty = weight * (sum / float64(count))
	}
	return ply.RuleResult{
		ID:     ply.R7Buckling,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: fmt.Sprintf("%d ±45 plies near mid-plane", closeCount45(seq, n)),
	}
}

func closeCount45(seq ply.Sequence, n int) int {
	c := 0
	for i, a := range seq {
		if a.Is45() && ply.NormalizedMidplaneDistance(i, n) < 0.15 {
			c++
		}
	}
	return c
}

// r8LateralBending implements R8 (spec.md §4.1): each 90° ply within
// normalized mid-plane distance 0.20 contributes a penalty term; floors
// the final penalty at 0.85·weight (one center hit) or 0.95·weight (two
// or more), then caps at weight.
func r8LateralBending(seq ply.Sequence, weight float64) ply.RuleResult {
	n := seq.Len()
	sum := 0.0
	count := 0
	centerHits := 0
	for i, a := range seq {
		if a != ply.Angle90 {
			continue
		}
		count++
		d := ply.NormalizedMidplaneDistance(i, n)
		if d < 0.20 {
			sum += math.Pow((0.20-d)/0.20, 0.4) * 1.5
			centerHits++
		}
	}
	penalty := 0.0
	if count > 0 {
		penalty = weight * (sum / float64(count))
		if centerHits >= 2 {
			penalty = math.Max(penalty, 0.95*weight)
		} else if centerHits >= 1 {
			penalty = math.Max(penalty, 0.85*weight)
		}
	}
	return ply.RuleResult{
		ID:     ply.R8LateralBending,
		Weight: weight,
		Score:  clampScore(weight, penalty),
		Reason: fmt.Sprintf("%d 90deg plies near mid-plane", centerHits),
	}
}
