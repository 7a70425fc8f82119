package optimizer

import (
	"errors"
	"math/rand"

	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
)

// errNoRestartSucceeded indicates every restart's skeleton construction
// failed (e.g. insufficient ±45 stock); surfaced as an input infeasibility
// per spec.md §7 category 2.
var errNoRestartSucceeded = errors.New("optimizer: no restart produced a valid skeleton")

// restarts is the multi-restart wrapper count of spec.md §4.3: the whole
// three-phase pipeline runs this many times from fresh skeletons, and the
// best total across restarts is returned.
const restarts = 3

// Optimize runs the full spec.md §4.3 pipeline: Phase 1 (smart skeleton)
// -> Phase 2 (multi-start evolutionary search) -> Phase 3 (hill climbing),
// repeated `restarts` times from fresh skeletons, returning the best
// result across all restarts.
func Optimize(counts ply.PlyCounts, opts Options) (Result, error) {
	weights := opts.weights()
	scorer := opts.scorer()
	baseRNG := rngFromSeed(opts.Seed)

	var best Result
	haveBest := false

	for r := 0; r < restarts; r++ {
		restartRNG := deriveRNG(baseRNG, uint64(r))

		res, err := runOnePipeline(counts, weights, scorer, restartRNG, r)
		if err != nil {
			continue
		}
		if !haveBest || res.Fitness.Total > best.Fitness.Total {
			best = res
			haveBest = true
		}
	}
	if !haveBest {
		return Result{}, errNoRestartSucceeded
	}
	return best, nil
}

// Quick runs a single pass of the three-phase pipeline with no
// multi-restart wrapper, mirroring the donor's legacy single-pipeline
// convenience entry point (SPEC_FULL.md §9 supplement).
func Quick(counts ply.PlyCounts, opts Options) (Result, error) {
	weights := opts.weights()
	scorer := opts.scorer()
	baseRNG := rngFromSeed(opts.Seed)
	return runOnePipeline(counts, weights, scorer, baseRNG, 0)
}

func runOnePipeline(counts ply.PlyCounts, weights ply.WeightMap, scorer rules.Scorer, rng *rand.Rand, restartIdx int) (Result, error) {
	skeleton, err := buildSmartSkeleton(counts, weights, scorer, rng)
	if err != nil {
		return Result{}, err
	}

	evolved, history := runPhase2(skeleton, counts, weights, scorer, rng)
	for i := range history {
		history[i].Restart = restartIdx
	}

	polished := hillClimb(evolved, weights, scorer)
	for i := range history {
		history[i].Phase = "evolution"
	}

	// spec.md §4.3: "The winning sequence's fitness must always be
	// re-verified by the exact evaluator before publication" — a no-op
	// in cost when scorer is already rules.Exact{}, but mandatory when a
	// surrogate Scorer was supplied.
	polished.fitness = rules.Exact{}.Score(polished.seq, weights)

	history = append(history, HistoryPoint{Restart: restartIdx, Phase: "hillclimb", Best: polished.score()})

	return Result{Sequence: polished.seq, Fitness: polished.fitness, History: history}, nil
}
