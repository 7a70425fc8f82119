package optimizer

import (
	"math/rand"

	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/plystack/laminate/seqkit"
)

// smartSkeletonCandidates is K in spec.md §4.3 Phase 1.
const smartSkeletonCandidates = 15

// buildSmartSkeleton generates K candidate skeletons and returns the
// best-scoring one. Purely constructive; no local search here.
func buildSmartSkeleton(counts ply.PlyCounts, weights ply.WeightMap, scorer rules.Scorer, rng *rand.Rand) (individual, error) {
	var best individual
	haveBest := false
	for k := 0; k < smartSkeletonCandidates; k++ {
		streamRNG := deriveRNG(rng, uint64(k)+1)
		seq, err := seqkit.BuildSymmetricSkeleton(counts, streamRNG)
		if err != nil {
			continue
		}
		fit := scorer.Score(seq, weights)
		if !haveBest || fit.Total > best.fitness.Total {
			best = individual{seq: seq, fitness: fit}
			haveBest = true
		}
	}
	if !haveBest {
		return individual{}, seqkit.ErrSequenceTooShort
	}
	return best, nil
}
