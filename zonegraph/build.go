package zonegraph

import "sort"

// Build constructs a Graph from the given zone rectangles (indexed by
// their position in the slice), computing adjacency via overlapsWithGap
// for every pair. Complexity: O(N^2), fine for the panel zone counts
// spec.md §4.5 describes (tens, not thousands, of zones).
func Build(rects []Rect, toleranceAxisPx int) (*Graph, error) {
	if len(rects) == 0 {
		return nil, ErrEmptyZones
	}
	if toleranceAxisPx <= 0 {
		toleranceAxisPx = AdjacencyTolerancePx
	}

	zones := make([]Zone, len(rects))
	for i, r := range rects {
		zones[i] = Zone{Index: i, Rect: r}
	}

	adj := make([][]int, len(zones))
	for i := range zones {
		for j := range zones {
			if i == j {
				continue
			}
			if adjacent(zones[i].Rect, zones[j].Rect, toleranceAxisPx) {
				adj[i] = append(adj[i], j)
			}
		}
		sort.Ints(adj[i])
	}

	return &Graph{zones: zones, adjacency: adj}, nil
}

// adjacent reports whether a and b are adjacent per spec.md §4.5: their
// projections overlap (strictly; touching edges do not count) on one axis and the gap on the other
// axis is within tolerancePx.
func adjacent(a, b Rect, tolerancePx int) bool {
	xOverlap := intervalsOverlap(a.X, a.Right(), b.X, b.Right())
	yOverlap := intervalsOverlap(a.Y, a.Bottom(), b.Y, b.Bottom())

	xGap := intervalGap(a.X, a.Right(), b.X, b.Right())
	yGap := intervalGap(a.Y, a.Bottom(), b.Y, b.Bottom())

	if xOverlap && yGap <= tolerancePx {
		return true
	}
	if yOverlap && xGap <= tolerancePx {
		return true
	}
	return false
}

func intervalsOverlap(aLo, aHi, bLo, bHi int) bool {
	return aLo < bHi && bLo < aHi
}

// intervalGap returns the non-negative gap between two 1D intervals, or
// a large negative-sense 0 if they overlap.
func intervalGap(aLo, aHi, bLo, bHi int) int {
	if aHi <= bLo {
		return bLo - aHi
	}
	if bHi <= aLo {
		return aLo - bHi
	}
	return 0
}
