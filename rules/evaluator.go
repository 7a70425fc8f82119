// Package rules implements the Rule Evaluator of spec.md §4.1: a pure,
// deterministic scoring function over a ply.Sequence. Evaluate never
// mutates its input, never performs I/O, and never draws randomness —
// the same sequence and weight map always produce the same FitnessResult
// (spec.md §7: "the Rule Evaluator is total, never errors").
package rules

import (
	"math"

	"github.com/plystack/laminate/ply"
)

// Scorer is the swappable evaluator contract spec.md §4.3/§9 requires so an
// approximate (surrogate) evaluator can stand in for Evaluate during most
// generations of the evolutionary search, with the exact evaluator doing
// periodic calibration and always re-verifying the eventual winner.
type Scorer interface {
	Score(seq ply.Sequence, weights ply.WeightMap) ply.FitnessResult
}

// Exact is the canonical Scorer backed directly by Evaluate.
type Exact struct{}

// Score implements Scorer.
func (Exact) Score(seq ply.Sequence, weights ply.WeightMap) ply.FitnessResult {
	return Evaluate(seq, weights)
}

// Evaluate scores seq against weights, enforcing the three hard
// constraints first (short-circuit to Total=0) and otherwise computing the
// eight soft-rule sub-scores of spec.md §4.1.
func Evaluate(seq ply.Sequence, weights ply.WeightMap) ply.FitnessResult {
	if hf, ok := hardFail(seq); ok {
		return hf
	}

	breakdown := make([]ply.RuleResult, ply.NumRules)
	breakdown[ply.R1Symmetry] = r1Symmetry(seq, weights[ply.R1Symmetry])
	breakdown[ply.R2Balance45] = r2Balance(seq, weights[ply.R2Balance45])
	breakdown[ply.R3Percentage] = r3Percentage(seq, weights[ply.R3Percentage])
	breakdown[ply.R4ExternalPlies] = r4ExternalPlies(seq, weights[ply.R4ExternalPlies])
	breakdown[ply.R5Distribution] = r5Distribution(seq, weights[ply.R5Distribution])
	breakdown[ply.R6Grouping] = r6Grouping(seq, weights[ply.R6Grouping])
	breakdown[ply.R7Buckling] = r7Buckling(seq, weights[ply.R7Buckling])
	breakdown[ply.R8LateralBending] = r8LateralBending(seq, weights[ply.R8LateralBending])

	total := 0.0
	for _, r := range breakdown {
		total += r.Score
	}
	return ply.FitnessResult{Total: round2(total), Breakdown: breakdown}
}

// hardFail checks the three hard constraints of spec.md §4.1 in order and,
// if any is violated, returns a Total=0 result with a single diagnostic
// entry.
func hardFail(seq ply.Sequence) (ply.FitnessResult, bool) {
	n := seq.Len()
	if n == 0 {
		return ply.FitnessResult{}, false
	}
	if !seq.EndpointsNotZero() {
		return hardFailResult(ply.HardFailEndpointZero, "endpoint ply is 0 degrees"), true
	}
	if seq.HasZeroNinetyAdjacency() {
		return hardFailResult(ply.HardFailAdjacency0_90, "adjacent 0/90 plies"), true
	}
	if n >= 4 && !seq.OuterPliesAre45() {
		return hardFailResult(ply.HardFailExternalPlies, "outer plies are not +-45"), true
	}
	return ply.FitnessResult{}, false
}

func hardFailResult(id ply.RuleID, reason string) ply.FitnessResult {
	return ply.FitnessResult{
		Total:      0,
		HardFailed: true,
		Breakdown: []ply.RuleResult{{
			ID:     id,
			Weight: ply.HardFailWeight,
			Score:  0,
			Reason: reason,
		}},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(weight, penalty float64) float64 {
	if penalty > weight {
		penalty = weight
	}
	if penalty < 0 {
		penalty = 0
	}
	return weight - penalty
}
