// Package zonegraph treats a panel's zones as a pixel-space adjacency
// graph (spec.md §4.5): each zone is a rectangle, two zones are adjacent
// when their projections overlap on one axis and the gap on the other
// axis is within tolerance, and a BFS walk visits the zones outward from
// a designated root zone, reporting each zone's parent. Grounded
// in the donor's gridgraph package (2D-grid-as-graph, Conn4 adjacency)
// and bfs package (queue-based walker with cancellation and ordered
// traversal), generalized from cell adjacency to rectangle adjacency and
// from arbitrary vertex IDs to small integer zone indices.
package zonegraph

import "errors"

// ErrEmptyZones indicates a graph was built from zero zones.
var ErrEmptyZones = errors.New("zonegraph: at least one zone is required")

// ErrZoneIndex indicates a zone index outside [0, N).
var ErrZoneIndex = errors.New("zonegraph: zone index out of range")

// Rect is a zone's bounding rectangle in panel pixel space, with X/Y at
// the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Right returns the rectangle's right edge coordinate.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the rectangle's bottom edge coordinate.
func (r Rect) Bottom() int { return r.Y + r.H }

// Zone is one panel region: its index and bounding rectangle. Ply counts
// are not stored here; the orchestrator holds them.
type Zone struct {
	Index int
	Rect  Rect
}

// AdjacencyTolerancePx is the default maximum gap, in pixels, between
// two zones' non-overlapping axis for them to be considered adjacent
// (spec.md §4.5).
const AdjacencyTolerancePx = 40

// Graph is an immutable adjacency graph over a fixed set of zones,
// indexed 0..N-1 to match their Zone.Index.
type Graph struct {
	zones     []Zone
	adjacency [][]int // adjacency[i] lists neighbor indices in ascending order
}

// Zones returns the graph's zones in index order.
func (g *Graph) Zones() []Zone { return g.zones }

// Neighbors returns zone i's adjacent zone indices in ascending order.
func (g *Graph) Neighbors(i int) ([]int, error) {
	if i < 0 || i >= len(g.adjacency) {
		return nil, ErrZoneIndex
	}
	return g.adjacency[i], nil
}

// NumZones returns the number of zones in the graph.
func (g *Graph) NumZones() int { return len(g.zones) }
