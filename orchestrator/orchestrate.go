package orchestrator

import (
	"errors"

	"github.com/plystack/laminate/dropoff"
	"github.com/plystack/laminate/optimizer"
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/plystack/laminate/zonegraph"
)

// errTooFewZones indicates a Request with fewer than two zones: a
// multi-zone orchestration needs at least a root and one child.
var errTooFewZones = errors.New("orchestrator: at least two zones are required")

// errRectsLengthMismatch indicates Request.Rects was supplied but its
// length does not match Request.ZoneCounts.
var errRectsLengthMismatch = errors.New("orchestrator: rects length must match zone count")

// Optimize runs the full Multi-zone Orchestrator of spec.md §4.5:
// builds the neighbour graph, checks connectivity and feasibility,
// selects a root, and schedules the Single-zone Optimizer plus the
// Drop-off Engine over the BFS order, retrying the whole root run up to
// MaxRootRetries times if any zone's drop-off fails.
func Optimize(req Request) (Result, error) {
	n := len(req.ZoneCounts)
	if n < 2 {
		return Result{}, errTooFewZones
	}

	g, err := buildGraph(req)
	if err != nil {
		return Result{}, err
	}

	root := selectRoot(req.ZoneCounts)
	order, parent := bfsSchedule(g, root, req.ZoneCounts)

	if len(order) < n {
		missing, err := unreachableZones(g, root)
		if err != nil {
			return Result{}, err
		}
		cerr := &ConnectivityError{Disconnected: sortedInts(missing)}
		return Result{Success: false, RootIndex: root, Graph: g, ConnectivityErr: cerr}, cerr
	}

	if ferr := checkScheduleFeasibility(req.ZoneCounts, order, parent); ferr != nil {
		return Result{Success: false, RootIndex: root, Graph: g, FeasibilityErr: ferr}, ferr
	}

	weights := req.weights()
	scorer := req.scorer()

	var zones []ZoneResult
	var attempts int
	for attempts = 1; attempts <= req.maxRootRetries(); attempts++ {
		if req.cancelled() {
			return partialCancelledResult(root, g, zones), nil
		}
		zones, err = runOneSchedule(req, order, parent, root, weights, scorer, attempts)
		if err == nil {
			break
		}
		if errors.Is(err, errCancelled) {
			return partialCancelledResult(root, g, zones), nil
		}
	}
	if err != nil {
		return Result{Success: false, RootIndex: root, Graph: g, Stats: Stats{RootAttempts: attempts - 1}}, ErrMaxRetriesExceeded
	}

	transitions := make([]Transition, 0, n-1)
	for _, z := range order {
		if z == root {
			continue
		}
		transitions = append(transitions, Transition{Zone: z, Parent: parent[z]})
	}

	sequences := make([]ply.Sequence, n)
	for _, zr := range zones {
		sequences[zr.Index] = zr.Sequence
	}
	weightReport, rampChecks := computeWeightAndRamp(req, g, sequences)

	return Result{
		Success:     true,
		RootIndex:   root,
		Zones:       zones,
		Transitions: transitions,
		Graph:       g,
		Weight:      weightReport,
		RampChecks:  rampChecks,
		Stats:       Stats{RootAttempts: attempts},
	}, nil
}

func buildGraph(req Request) (*zonegraph.Graph, error) {
	n := len(req.ZoneCounts)
	if len(req.Rects) == 0 {
		return fullyAdjacentFallbackGraph(n)
	}
	if len(req.Rects) != n {
		return nil, errRectsLengthMismatch
	}
	return zonegraph.Build(req.Rects, req.adjacencyTolerancePx())
}

// fullyAdjacentFallbackGraph connects every zone to every other when no
// geometry is supplied: spec.md §4.5's neighbour graph is defined over
// pixel-space rectangles, but the orchestrator's schedule/connectivity
// logic still needs *some* graph when geometry is absent, so every zone
// is treated as mutually adjacent (no connectivity constraint without
// geometry to violate).
func fullyAdjacentFallbackGraph(n int) (*zonegraph.Graph, error) {
	rects := make([]zonegraph.Rect, n)
	for i := range rects {
		rects[i] = zonegraph.Rect{X: i * 1000, Y: 0, W: 1000, H: 1000}
	}
	return zonegraph.Build(rects, 1000000)
}

// errCancelled is a sentinel distinguishing a cancelled schedule attempt
// from a genuine search failure: the former short-circuits the retry
// loop and surfaces zones completed so far, the latter triggers a fresh
// root retry per spec.md §4.5's Execution step.
var errCancelled = errors.New("orchestrator: cancelled")

func runOneSchedule(req Request, order, parent []int, root int, weights ply.WeightMap, scorer rules.Scorer, attempt int) ([]ZoneResult, error) {
	n := len(req.ZoneCounts)
	zones := make([]ZoneResult, 0, n)

	if req.cancelled() {
		return zones, errCancelled
	}

	publish(req.Progress, ProgressEvent{Stage: "root", Zone: root})
	rootRes, err := optimizer.Optimize(req.ZoneCounts[root], optimizer.Options{
		Weights: weights,
		Seed:    req.Seed + int64(attempt),
		Scorer:  scorer,
		Logger:  req.Logger,
	})
	if err != nil {
		return zones, err
	}
	byIndex := make([]ZoneResult, n)
	byIndex[root] = ZoneResult{Index: root, IsRoot: true, Sequence: rootRes.Sequence, Fitness: rootRes.Fitness}
	zones = append(zones, byIndex[root])

	for _, z := range order {
		if z == root {
			continue
		}
		if req.cancelled() {
			return zones, errCancelled
		}
		publish(req.Progress, ProgressEvent{Stage: "zone", Zone: z})

		p := parent[z]
		dres, err := dropoff.ToAngleCounts(byIndex[p].Sequence, req.ZoneCounts[z], dropoff.Options{
			Weights: weights,
			Seed:    req.Seed + int64(attempt)*1000 + int64(z),
			Scorer:  scorer,
			Logger:  req.Logger,
		})
		if err != nil {
			return zones, err
		}

		polishedSeq, polishedFit := optimizer.Polish(dres.Sequence, dres.Fitness, weights, scorer, childHillClimbIterations)
		byIndex[z] = ZoneResult{Index: z, Sequence: polishedSeq, Fitness: polishedFit}
		zones = append(zones, byIndex[z])
	}

	return zones, nil
}

// partialCancelledResult builds the Success=false partial result spec.md
// §5/§7 require on cancellation: whatever zones completed before the
// cancellation was observed, with no further retry attempted.
func partialCancelledResult(root int, g *zonegraph.Graph, completed []ZoneResult) Result {
	return Result{
		Success:   false,
		RootIndex: root,
		Zones:     completed,
		Graph:     g,
	}
}

func publish(ch chan<- ProgressEvent, ev ProgressEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}

// checkScheduleFeasibility verifies, for every non-root zone in BFS
// order, that its target counts do not exceed its chosen parent's
// (spec.md §4.5's Feasibility check), before any search work runs.
func checkScheduleFeasibility(counts []ply.PlyCounts, order, parent []int) *FeasibilityError {
	var violations []FeasibilityViolation
	for _, z := range order {
		p := parent[z]
		if p < 0 {
			continue
		}
		for i := 0; i < ply.NumAngles; i++ {
			if counts[z][i] > counts[p][i] {
				violations = append(violations, FeasibilityViolation{
					Zone:      z,
					Parent:    p,
					Angle:     ply.AngleAt(i).String(),
					Requested: counts[z][i],
					Available: counts[p][i],
				})
			}
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &FeasibilityError{Violations: violations}
}
