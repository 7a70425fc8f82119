package ply

import "errors"

// RuleID names one of the eight soft lamination rules (spec.md §4.1).
type RuleID int

const (
	R1Symmetry RuleID = iota
	R2Balance45
	R3Percentage
	R4ExternalPlies
	R5Distribution
	R6Grouping
	R7Buckling
	R8LateralBending
	NumRules

	// Synthetic hard-constraint diagnostic markers (spec.md §4.1's
	// "single synthetic rule entry"), weight 999 to make their dominance
	// unmistakable in any printed breakdown. Never part of a successful
	// (non-hard-failed) Breakdown.
	HardFailEndpointZero
	HardFailAdjacency0_90
	HardFailExternalPlies
)

// String renders the canonical rule name, e.g. "R1".
func (r RuleID) String() string {
	names := [NumRules]string{"R1", "R2", "R3", "R4", "R5", "R6", "R7", "R8"}
	switch {
	case r >= 0 && int(r) < int(NumRules):
		return names[r]
	case r == HardFailEndpointZero:
		return "ENDPOINT_ZERO"
	case r == HardFailAdjacency0_90:
		return "ADJ_0_90"
	case r == HardFailExternalPlies:
		return "EXTERNAL_45"
	default:
		return "R?"
	}
}

// HardFailWeight is the synthetic weight reported for hard-constraint
// diagnostic entries, mirroring the donor's "999.0" sentinel.
const HardFailWeight = 999.0

// DefaultWeights are the weights from spec.md §4.1, summing to 100.
var DefaultWeights = WeightMap{18.0, 12.0, 13.0, 12.0, 14.0, 20.5, 3.5, 7.0}

// ErrWeightSumMismatch indicates a caller-supplied WeightMap does not sum
// to 100, as required by spec.md §8 ("Rule weight map sums to 100").
var ErrWeightSumMismatch = errors.New("ply: rule weights must sum to 100")

// ErrNegativeWeight indicates a caller-supplied WeightMap has a negative
// entry.
var ErrNegativeWeight = errors.New("ply: rule weight must be non-negative")

// WeightMap assigns a weight to each of R1..R8, keyed by RuleID.
type WeightMap [NumRules]float64

// Validate checks the invariants spec.md §8 requires of any weight map
// used by the Rule Evaluator: non-negative entries summing to 100 (within
// floating-point tolerance).
func (w WeightMap) Validate() error {
	sum := 0.0
	for _, v := range w {
		if v < 0 {
			return ErrNegativeWeight
		}
		sum += v
	}
	const tol = 1e-6
	if sum < 100-tol || sum > 100+tol {
		return ErrWeightSumMismatch
	}
	return nil
}

// RuleResult is the per-rule breakdown of spec.md §3: weight, score, and a
// human-readable reason. Penalty is always Weight - Score.
type RuleResult struct {
	ID     RuleID
	Weight float64
	Score  float64
	Reason string
}

// Penalty returns Weight - Score.
func (r RuleResult) Penalty() float64 {
	return r.Weight - r.Score
}

// FitnessResult is the outcome of the Rule Evaluator (spec.md §3): either a
// hard-fail (Total == 0, a single diagnostic entry in Breakdown) or a
// success tuple (Total == sum of per-rule scores, full Breakdown).
type FitnessResult struct {
	Total      float64
	Breakdown  []RuleResult
	HardFailed bool
}

// MaxFitness is the maximum achievable total score (spec.md §3).
const MaxFitness = 100.0
