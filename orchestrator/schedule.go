package orchestrator

import (
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/zonegraph"
)

// selectRoot returns the zone with the largest total ply count, ties
// broken by lowest index (spec.md §4.5).
func selectRoot(counts []ply.PlyCounts) int {
	best, bestTotal := 0, -1
	for i, c := range counts {
		t := c.Total()
		if t > bestTotal {
			best, bestTotal = i, t
		}
	}
	return best
}

// bfsSchedule walks g from root, returning zones in BFS visitation order
// (root first) and each zone's chosen parent (-1 for root), implementing
// spec.md §4.5's parent-selection rule: among a newly discovered zone's
// already-visited neighbours, prefer the thickest, then the smallest
// ply-count difference to the zone itself; fall back to the discovering
// frontier zone if no visited neighbour qualifies.
func bfsSchedule(g *zonegraph.Graph, root int, counts []ply.PlyCounts) (order []int, parent []int) {
	n := g.NumZones()
	visited := make([]bool, n)
	parent = make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	visited[root] = true
	order = append(order, root)
	queue := []int{root}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		neighbors, _ := g.Neighbors(c)
		for _, nIdx := range neighbors {
			if visited[nIdx] {
				continue
			}
			visited[nIdx] = true
			parent[nIdx] = selectParent(g, nIdx, visited, counts, c)
			order = append(order, nIdx)
			queue = append(queue, nIdx)
		}
	}
	return order, parent
}

// selectParent implements spec.md §4.5's parent-selection rule for the
// newly-discovered zone nIdx.
func selectParent(g *zonegraph.Graph, nIdx int, visited []bool, counts []ply.PlyCounts, fallback int) int {
	neighbors, _ := g.Neighbors(nIdx)
	nTotal := counts[nIdx].Total()

	best, bestTotal, bestDiff := -1, -1, -1
	for _, v := range neighbors {
		if !visited[v] {
			continue
		}
		vTotal := counts[v].Total()
		diff := vTotal - nTotal
		if diff < 0 {
			diff = -diff
		}
		if vTotal > bestTotal || (vTotal == bestTotal && diff < bestDiff) {
			best, bestTotal, bestDiff = v, vTotal, diff
		}
	}
	if best < 0 {
		return fallback
	}
	return best
}

// unreachableZones returns, in ascending order, the zones not reachable
// from root, as found by zonegraph.ReachableFrom.
func unreachableZones(g *zonegraph.Graph, root int) ([]int, error) {
	reached, err := zonegraph.ReachableFrom(g, root)
	if err != nil {
		return nil, err
	}
	var missing []int
	for i := 0; i < g.NumZones(); i++ {
		if !reached[i] {
			missing = append(missing, i)
		}
	}
	return missing, nil
}
