package rules

import (
	"testing"

	"github.com/plystack/laminate/ply"
	"github.com/stretchr/testify/require"
)

func seqFrom(angles ...int) ply.Sequence {
	out := make(ply.Sequence, len(angles))
	for i, a := range angles {
		out[i] = ply.Angle(a)
	}
	return out
}

func TestEvaluate_HardFail_EndpointZero(t *testing.T) {
	seq := seqFrom(0, 45, -45, 90, -45, 45, 45, -45)
	res := Evaluate(seq, ply.DefaultWeights)
	require.True(t, res.HardFailed)
	require.Equal(t, 0.0, res.Total)
	require.Len(t, res.Breakdown, 1)
}

func TestEvaluate_HardFail_Adjacent0_90(t *testing.T) {
	seq := seqFrom(45, -45, 0, 90, -45, 45, 45, -45)
	res := Evaluate(seq, ply.DefaultWeights)
	require.True(t, res.HardFailed)
}

func TestEvaluate_HardFail_OuterNot45(t *testing.T) {
	seq := seqFrom(45, 0, 45, -45, 45, -45, 0, 45)
	res := Evaluate(seq, ply.DefaultWeights)
	require.True(t, res.HardFailed)
}

func TestEvaluate_SymmetricBalanced_ScoreWithinBounds(t *testing.T) {
	// Hand-built symmetric sequence, alternating +/-45 outer, balanced 0/90.
	seq := seqFrom(45, -45, 0, 0, 45, 90, 90, -45, 0, 0, 45, 90, 90, -45, 45, -45,
		-45, 45, -45, 90, 90, 45, 0, 0, -45, 90, 90, 45, 0, 0, -45, 45)
	res := Evaluate(seq, ply.DefaultWeights)
	require.False(t, res.HardFailed)
	require.True(t, seq.IsSymmetric())
	require.GreaterOrEqual(t, res.Total, 0.0)
	require.LessOrEqual(t, res.Total, ply.MaxFitness)
}

func TestEvaluate_ScoreBounds_And_PenaltyIdentity(t *testing.T) {
	seq := seqFrom(45, -45, 90, 90, -45, 45, 45, -45, 0, 0, -45, 45)
	res := Evaluate(seq, ply.DefaultWeights)
	require.False(t, res.HardFailed)
	sum := 0.0
	for _, r := range res.Breakdown {
		require.InDelta(t, r.Weight-r.Score, r.Penalty(), 1e-9)
		require.GreaterOrEqual(t, r.Score, 0.0)
		require.LessOrEqual(t, r.Score, r.Weight)
		sum += r.Score
	}
	require.InDelta(t, sum, res.Total, 0.02)
}

func TestWeightMap_Validate(t *testing.T) {
	require.NoError(t, ply.DefaultWeights.Validate())
	bad := ply.WeightMap{1, 1, 1, 1, 1, 1, 1, 1}
	require.ErrorIs(t, bad.Validate(), ply.ErrWeightSumMismatch)
	neg := ply.DefaultWeights
	neg[0] = -1
	require.ErrorIs(t, neg.Validate(), ply.ErrNegativeWeight)
}
