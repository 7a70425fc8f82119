// Package optimizer implements the Single-zone Stacking Optimizer of
// spec.md §4.3: a three-phase hybrid search (symmetric skeleton
// construction, multi-start evolutionary search, hill-climbing local
// search) wrapped in a multi-restart loop, specialized to preserve
// mid-plane symmetry and the ±45° outer-ply constraint under every move.
package optimizer

import (
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/sirupsen/logrus"
)

// Options configures an Optimize/Quick call.
type Options struct {
	// Weights overrides ply.DefaultWeights when non-zero-value.
	Weights ply.WeightMap
	// Seed is the deterministic RNG seed; 0 uses a fixed default.
	Seed int64
	// Scorer overrides the exact evaluator (spec.md §4.3's swappable
	// Scorer contract). Nil uses rules.Exact{}.
	Scorer rules.Scorer
	// Logger is accepted but the optimizer does not write to it.
	Logger *logrus.Entry
}

func (o Options) weights() ply.WeightMap {
	if o.Weights == (ply.WeightMap{}) {
		return ply.DefaultWeights
	}
	return o.Weights
}

func (o Options) scorer() rules.Scorer {
	if o.Scorer == nil {
		return rules.Exact{}
	}
	return o.Scorer
}

// HistoryPoint records one best-so-far observation for the caller-visible
// trace spec.md §6 calls for ("history (best-so-far trace)").
type HistoryPoint struct {
	Restart    int
	Phase      string
	Generation int
	Best       float64
}

// Result is the outcome of Optimize/Quick: the winning sequence, its
// exact fitness, and the optimization trace.
type Result struct {
	Sequence ply.Sequence
	Fitness  ply.FitnessResult
	History  []HistoryPoint
}

// individual is one population member: an owned sequence buffer plus its
// cached fitness, avoiding repeated allocation in the evolutionary loop's
// hot path.
type individual struct {
	seq     ply.Sequence
	fitness ply.FitnessResult
}

func (ind individual) score() float64 { return ind.fitness.Total }
