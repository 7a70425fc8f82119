package dropoff

import (
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/sirupsen/logrus"
)

// Options configures a ToLength/ToAngleCounts call.
type Options struct {
	// Weights overrides ply.DefaultWeights when non-zero-value.
	Weights ply.WeightMap
	// Seed is the deterministic RNG seed for the randomized search; 0
	// uses a fixed default.
	Seed int64
	// Scorer overrides the exact evaluator. Nil uses rules.Exact{}.
	Scorer rules.Scorer
	// Logger receives progress diagnostics; nil logs nothing.
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

// Result is the outcome of a drop-off: the winning child sequence, its
// exact fitness, and whether the randomized search produced it (false
// means the deterministic fallback was used).
type Result struct {
	Sequence       ply.Sequence
	Fitness        ply.FitnessResult
	UsedRandomized bool
}

// ToAngleCounts drops parent to the given per-angle target counts,
// implementing the Drop-off Engine of spec.md §4.4: feasibility check,
// parity-aware removal plan, randomized search, and — if that search
// exhausts its budget — a deterministic greedy fallback.
func ToAngleCounts(parent ply.Sequence, target ply.PlyCounts, opts Options) (Result, error) {
	parentCounts := parent.Counts()
	if err := checkFeasible(parentCounts, target); err != nil {
		return Result{}, err
	}
	if target == parentCounts {
		return Result{Sequence: parent.Clone(), Fitness: opts.scorer().Score(parent, opts.weights()), UsedRandomized: false}, nil
	}

	plan := buildPlan(parent, target)
	weights := opts.weights()
	scorer := opts.scorer()
	rng := rngFromSeed(opts.Seed)

	if cand, ok := randomizedSearch(parent, target, plan, weights, scorer, rng); ok {
		logProgress(opts.Logger, "dropoff: randomized search succeeded")
		// spec.md §4.3's exact-re-verification-before-publication clause
		// applies to every winning sequence the core publishes, not only
		// the single-zone optimizer's; a no-op cost when scorer is
		// already rules.Exact{}.
		fit := rules.Exact{}.Score(cand.child, weights)
		return Result{Sequence: cand.child, Fitness: fit, UsedRandomized: true}, nil
	}

	logProgress(opts.Logger, "dropoff: randomized search exhausted, falling back to deterministic greedy pass")
	child, _, ok := deterministicFallback(parent, target, plan, weights, scorer)
	if !ok {
		return Result{}, ErrSearchExhausted
	}
	fit := rules.Exact{}.Score(child, weights)
	return Result{Sequence: child, Fitness: fit, UsedRandomized: false}, nil
}

// ToLength drops parent to a requested total ply count, deriving a
// per-angle target via the largest-remainder method against the
// parent's current proportions (SPEC_FULL.md §9 supplement), then
// delegates to ToAngleCounts.
func ToLength(parent ply.Sequence, targetLength int, opts Options) (Result, error) {
	target := proportionalTargetCounts(parent, targetLength)
	return ToAngleCounts(parent, target, opts)
}

func logProgress(logger *logrus.Entry, msg string) {
	if logger == nil {
		return
	}
	logger.Debug(msg)
}
