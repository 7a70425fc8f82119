package zonegraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_AdjacentRectangles(t *testing.T) {
	// Two zones side by side with a 10px gap on the touching axis.
	rects := []Rect{
		{X: 0, Y: 0, W: 100, H: 100},
		{X: 110, Y: 0, W: 100, H: 100},
		{X: 0, Y: 300, W: 100, H: 100}, // far away, not adjacent to either
	}
	g, err := Build(rects, 40)
	require.NoError(t, err)

	n0, err := g.Neighbors(0)
	require.NoError(t, err)
	require.Equal(t, []int{1}, n0)

	n2, err := g.Neighbors(2)
	require.NoError(t, err)
	require.Empty(t, n2)
}

func TestBuild_GapExceedsTolerance(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, W: 100, H: 100},
		{X: 200, Y: 0, W: 100, H: 100}, // 100px gap
	}
	g, err := Build(rects, 40)
	require.NoError(t, err)
	n0, _ := g.Neighbors(0)
	require.Empty(t, n0)
}

func TestWalk_VisitsInAscendingNeighborOrder(t *testing.T) {
	rects := []Rect{
		{X: 100, Y: 100, W: 100, H: 100}, // root, index 0
		{X: 0, Y: 100, W: 100, H: 100},   // left neighbor, index 1
		{X: 200, Y: 100, W: 100, H: 100}, // right neighbor, index 2
	}
	g, err := Build(rects, 5)
	require.NoError(t, err)

	var order []int
	var parents []int
	err = Walk(context.Background(), g, 0, func(idx, parent, _ int) error {
		order = append(order, idx)
		parents = append(parents, parent)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, order)
	require.Equal(t, []int{-1, 0, 0}, parents)
}

func TestReachableFrom_DisconnectedZone(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, W: 100, H: 100},
		{X: 110, Y: 0, W: 100, H: 100},
		{X: 0, Y: 500, W: 100, H: 100},
	}
	g, err := Build(rects, 40)
	require.NoError(t, err)

	reached, err := ReachableFrom(g, 0)
	require.NoError(t, err)
	require.Len(t, reached, 2)
	require.False(t, reached[2])
}

func TestBuild_EmptyZones(t *testing.T) {
	_, err := Build(nil, 40)
	require.ErrorIs(t, err, ErrEmptyZones)
}
