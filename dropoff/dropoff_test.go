package dropoff

import (
	"math/rand"
	"testing"

	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/seqkit"
	"github.com/stretchr/testify/require"
)

func mkCounts(a0, a90, p45, m45 int) ply.PlyCounts {
	pc, err := ply.NewPlyCounts(map[ply.Angle]int{
		ply.Angle0: a0, ply.Angle90: a90, ply.AnglePlus45: p45, ply.AngleMinus45: m45,
	})
	if err != nil {
		panic(err)
	}
	return pc
}

func buildParent(t *testing.T, counts ply.PlyCounts, seed int64) ply.Sequence {
	t.Helper()
	seq, err := seqkit.BuildSymmetricSkeleton(counts, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return seq
}

func requireValidChild(t *testing.T, res Result, target ply.PlyCounts) {
	t.Helper()
	require.Equal(t, target, res.Sequence.Counts())
	require.True(t, res.Sequence.SatisfiesHardConstraints())
	require.Greater(t, res.Fitness.Total, 0.0)
}

func TestToAngleCounts_EvenEven_PairsOnly(t *testing.T) {
	parent := buildParent(t, mkCounts(12, 8, 8, 8), 1) // n=36
	target := mkCounts(10, 6, 8, 8)                     // n=32, both even

	res, err := ToAngleCounts(parent, target, Options{Seed: 11})
	require.NoError(t, err)
	requireValidChild(t, res, target)
}

func TestToAngleCounts_OddOdd_PairsOnly(t *testing.T) {
	parent := buildParent(t, mkCounts(13, 8, 8, 8), 2) // n=37
	target := mkCounts(11, 6, 8, 8)                     // n=33, both odd

	res, err := ToAngleCounts(parent, target, Options{Seed: 12})
	require.NoError(t, err)
	requireValidChild(t, res, target)
}

func TestToAngleCounts_OddEven_RemovesMiddle(t *testing.T) {
	parent := buildParent(t, mkCounts(13, 8, 8, 8), 3) // n=37, odd
	target := mkCounts(12, 8, 8, 8)                     // n=36, even

	res, err := ToAngleCounts(parent, target, Options{Seed: 13})
	require.NoError(t, err)
	requireValidChild(t, res, target)
}

// TestToAngleCounts_EvenEven_Scenario4 mirrors spec.md's literal scenario
// 4: parent n=32 all-even {0:8,45:8,-45:8,90:8} dropped to n=30 target
// {0:8,45:7,-45:7,90:8}. Both lengths are even, so the ±45 odd deltas are
// each handled as an independent asymmetric single removal; no pair-break
// is needed.
func TestToAngleCounts_EvenEven_Scenario4(t *testing.T) {
	parent := buildParent(t, mkCounts(8, 8, 8, 8), 4) // n=32
	target := mkCounts(8, 8, 7, 7)                     // n=30

	res, err := ToAngleCounts(parent, target, Options{Seed: 14})
	require.NoError(t, err)
	requireValidChild(t, res, target)
}

// TestToAngleCounts_EvenOdd_BreaksPair exercises the structural even->odd
// case: parent length even, target length odd, so the engine must break
// one symmetric pair to manufacture the new middle ply.
func TestToAngleCounts_EvenOdd_BreaksPair(t *testing.T) {
	parent := buildParent(t, mkCounts(8, 8, 8, 8), 15) // n=32
	target := mkCounts(8, 8, 8, 7)                      // n=31

	res, err := ToAngleCounts(parent, target, Options{Seed: 16})
	require.NoError(t, err)
	requireValidChild(t, res, target)
}

func TestToAngleCounts_SameAsParent_NoOp(t *testing.T) {
	parent := buildParent(t, mkCounts(12, 8, 8, 8), 5)
	res, err := ToAngleCounts(parent, parent.Counts(), Options{})
	require.NoError(t, err)
	require.Equal(t, parent, res.Sequence)
	require.False(t, res.UsedRandomized)
}

func TestToAngleCounts_TargetExceedsParent(t *testing.T) {
	parent := buildParent(t, mkCounts(12, 8, 8, 8), 6)
	target := mkCounts(12, 8, 8, 20) // -45 exceeds parent's stock

	_, err := ToAngleCounts(parent, target, Options{})
	require.ErrorIs(t, err, ErrTargetExceedsParent)
	var typed *TargetExceedsParentError
	require.ErrorAs(t, err, &typed)
	require.Equal(t, ply.AngleMinus45, typed.Angle)
}

func TestToLength_DerivesProportionalTarget(t *testing.T) {
	parent := buildParent(t, mkCounts(12, 8, 8, 8), 7) // n=36
	res, err := ToLength(parent, 32, Options{Seed: 21})
	require.NoError(t, err)
	require.Equal(t, 32, res.Sequence.Len())
	require.True(t, res.Sequence.SatisfiesHardConstraints())
}
