package orchestrator

import (
	"testing"

	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/zonegraph"
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

// TestOptimize_Scenario5 mirrors spec.md's literal scenario 5: three
// zones with no geometry; root is zone 0 (36 plies). Without geometry
// every zone is adjacent to every other, and the parent rule picks the
// thickest visited neighbour, so zones 1 and 2 both derive from zone 0
// (zone 2 is not derived from zone 1). This test asserts the documented
// invariants rather than one specific parent assignment.
func TestOptimize_Scenario5(t *testing.T) {
	req := Request{
		ZoneCounts: []ply.PlyCounts{
			mkCounts(12, 8, 8, 8), // zone 0: 36
			mkCounts(8, 8, 8, 8),  // zone 1: 32
			mkCounts(6, 6, 6, 6),  // zone 2: 24
		},
		Seed: 42,
	}
	res, err := Optimize(req)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 0, res.RootIndex)
	require.Len(t, res.Zones, 3)

	for _, zr := range res.Zones {
		require.True(t, zr.Sequence.SatisfiesHardConstraints())
		require.Equal(t, req.ZoneCounts[zr.Index], zr.Sequence.Counts())
	}

	// Every non-root zone's counts are componentwise <= its parent's.
	parentOf := make(map[int]int)
	for _, tr := range res.Transitions {
		parentOf[tr.Zone] = tr.Parent
	}
	for z, p := range parentOf {
		require.True(t, req.ZoneCounts[z].LessOrEqual(req.ZoneCounts[p]))
	}
}

// TestOptimize_Scenario6 mirrors spec.md's literal scenario 6: zone 2 is
// geometrically isolated from the root component.
func TestOptimize_Scenario6(t *testing.T) {
	req := Request{
		ZoneCounts: []ply.PlyCounts{
			mkCounts(12, 8, 8, 8),
			mkCounts(8, 8, 8, 8),
			mkCounts(6, 6, 6, 6),
		},
		Rects: []zonegraph.Rect{
			{X: 0, Y: 0, W: 100, H: 100},
			{X: 110, Y: 0, W: 100, H: 100},
			{X: 0, Y: 500, W: 100, H: 100}, // far away, isolated
		},
		Seed: 42,
	}
	res, err := Optimize(req)
	require.Error(t, err)
	require.False(t, res.Success)
	var cerr *ConnectivityError
	require.ErrorAs(t, err, &cerr)
	require.Contains(t, cerr.Disconnected, 2)
}

// TestOptimize_AdjacencyTolerancePxOverride confirms Request.AdjacencyTolerancePx
// actually reaches zonegraph.Build: a 65px gap is outside the package
// default (40px) but within a 70px override, so the same rects are
// disconnected at the default and connected once overridden.
func TestOptimize_AdjacencyTolerancePxOverride(t *testing.T) {
	rects := []zonegraph.Rect{
		{X: 0, Y: 0, W: 100, H: 100},
		{X: 110, Y: 0, W: 100, H: 100},
		{X: 275, Y: 0, W: 100, H: 100}, // 65px gap from zone 1
	}
	counts := []ply.PlyCounts{
		mkCounts(12, 8, 8, 8),
		mkCounts(8, 8, 8, 8),
		mkCounts(6, 6, 6, 6),
	}

	_, err := Optimize(Request{ZoneCounts: counts, Rects: rects, Seed: 42})
	var cerr *ConnectivityError
	require.ErrorAs(t, err, &cerr, "65px gap should exceed the default tolerance")

	res, err := Optimize(Request{ZoneCounts: counts, Rects: rects, Seed: 42, AdjacencyTolerancePx: 70})
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestOptimize_TooFewZones(t *testing.T) {
	_, err := Optimize(Request{ZoneCounts: []ply.PlyCounts{mkCounts(12, 8, 8, 8)}})
	require.ErrorIs(t, err, errTooFewZones)
}

func TestOptimize_FeasibilityViolation(t *testing.T) {
	req := Request{
		ZoneCounts: []ply.PlyCounts{
			mkCounts(8, 8, 8, 8),   // zone 0: total 32, becomes root
			mkCounts(10, 8, 6, 6),  // zone 1: total 30 (smaller), but 0 deg exceeds the root's
		},
	}
	res, err := Optimize(req)
	require.Error(t, err)
	require.False(t, res.Success)
	var ferr *FeasibilityError
	require.ErrorAs(t, err, &ferr)
}

func TestOptimize_Cancelled(t *testing.T) {
	cancel := make(chan struct{})
	close(cancel)
	req := Request{
		ZoneCounts: []ply.PlyCounts{
			mkCounts(12, 8, 8, 8),
			mkCounts(8, 8, 8, 8),
		},
		Seed:   7,
		Cancel: cancel,
	}
	res, err := Optimize(req)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Empty(t, res.Zones)
}

func TestOptimize_Deterministic(t *testing.T) {
	req := Request{
		ZoneCounts: []ply.PlyCounts{
			mkCounts(12, 8, 8, 8),
			mkCounts(8, 8, 8, 8),
		},
		Seed: 7,
	}
	r1, err := Optimize(req)
	require.NoError(t, err)
	r2, err := Optimize(req)
	require.NoError(t, err)
	require.Equal(t, r1.Zones, r2.Zones)
}
