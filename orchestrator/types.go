package orchestrator

import (
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/rules"
	"github.com/plystack/laminate/zonegraph"
	"github.com/sirupsen/logrus"
)

// MaxRootRetries is the retry budget of spec.md §4.5's Execution step.
const MaxRootRetries = 5

// childHillClimbIterations is the bounded polish pass applied to every
// drop-off child (spec.md §4.5, step 2: "a bounded (25-iteration)
// hill-climb").
const childHillClimbIterations = 25

// adjacencyTolerancePx is the neighbour-graph gap tolerance of spec.md
// §4.5 ("gap on the other axis is in [0, 40] pixels").
const adjacencyTolerancePx = zonegraph.AdjacencyTolerancePx

// ProgressEvent is published between phases and between zones (spec.md
// §5/§6); publication never blocks the compute thread.
type ProgressEvent struct {
	Stage string // "root", "zone"
	Zone  int    // index of the zone the stage is working on (the root zone for Stage=="root")
}

// Request configures a multi-zone Optimize call.
type Request struct {
	// ZoneCounts holds each zone's target per-angle ply counts, in zone
	// index order; length must be >= 2.
	ZoneCounts []ply.PlyCounts
	// Rects optionally supplies each zone's pixel-space bounding
	// rectangle, same length and order as ZoneCounts. Nil disables
	// geometry (weight is reported per unit area).
	Rects []zonegraph.Rect
	// PanelScaleMM is the physical length the bounding extent of Rects
	// maps to; 0 uses DefaultPanelScaleMM.
	PanelScaleMM float64
	// AdjacencyTolerancePx overrides adjacencyTolerancePx (spec.md §4.5's
	// "[0, 40] pixels" neighbour-graph gap tolerance); 0 uses the package
	// default.
	AdjacencyTolerancePx int
	// MaxRootRetries overrides MaxRootRetries; 0 uses the package default.
	MaxRootRetries int
	// Weights overrides ply.DefaultWeights when non-zero-value.
	Weights ply.WeightMap
	// Seed is the deterministic RNG seed shared by every zone's
	// optimizer/drop-off call.
	Seed int64
	// Scorer overrides the exact evaluator. Nil uses rules.Exact{}.
	Scorer rules.Scorer
	// Progress receives ProgressEvents in BFS order if non-nil; sends
	// never block (dropped on a full channel).
	Progress chan<- ProgressEvent
	// Cancel, if non-nil, is polled between zones and between root-retry
	// attempts (spec.md §5). A closed channel aborts the run and Optimize
	// returns the partial result completed so far with Success=false
	// (spec.md §7 category 4).
	Cancel <-chan struct{}
	// Logger receives progress diagnostics; nil logs nothing.
	Logger *logrus.Entry
}

func (r Request) cancelled() bool {
	if r.Cancel == nil {
		return false
	}
	select {
	case <-r.Cancel:
		return true
	default:
		return false
	}
}

func (r Request) weights() ply.WeightMap {
	if r.Weights == (ply.WeightMap{}) {
		return ply.DefaultWeights
	}
	return r.Weights
}

func (r Request) scorer() rules.Scorer {
	if r.Scorer == nil {
		return rules.Exact{}
	}
	return r.Scorer
}

func (r Request) adjacencyTolerancePx() int {
	if r.AdjacencyTolerancePx != 0 {
		return r.AdjacencyTolerancePx
	}
	return adjacencyTolerancePx
}

func (r Request) maxRootRetries() int {
	if r.MaxRootRetries != 0 {
		return r.MaxRootRetries
	}
	return MaxRootRetries
}

// ZoneResult is one zone's finalized outcome.
type ZoneResult struct {
	Index    int
	IsRoot   bool
	Sequence ply.Sequence
	Fitness  ply.FitnessResult
}

// Transition describes one parent->child drop-off edge in the final
// schedule.
type Transition struct {
	Zone   int
	Parent int
}

// WeightReport is the panel-wide weight summary of spec.md §4.5.
type WeightReport struct {
	HasGeometry  bool
	PerZoneMassG []float64
	TotalMassG   float64
}

// RampCheck is one adjacent zone pair's ramp-feasibility outcome.
type RampCheck struct {
	ZoneA, ZoneB     int
	RequiredRampMM   float64
	AvailableMM      float64
	Pass             bool
	MarginMM         float64
}

// Result is the outcome of Optimize: per-zone sequences, the BFS
// schedule, weight and ramp reports, and any connectivity/feasibility
// errors.
type Result struct {
	Success     bool
	RootIndex   int
	Zones       []ZoneResult
	Transitions []Transition
	Graph       *zonegraph.Graph
	Weight      WeightReport
	RampChecks  []RampCheck
	Stats       Stats

	ConnectivityErr error // *ConnectivityError, set on early failure
	FeasibilityErr  error // *FeasibilityError, set on early failure
}

// Stats records diagnostic counters about how Optimize resolved.
type Stats struct {
	RootAttempts int
}
