// Package laminate designs ply stacking sequences for multi-zone
// composite laminate panels.
//
// Given per-zone counts of plies at the four discrete angles {0, 90,
// +45, -45}, it produces, for each zone, an ordered stacking sequence
// that respects hard manufacturing constraints, maximizes a weighted
// score across eight aerospace lamination rules, and keeps ply counts
// continuous between geometrically adjacent zones.
//
// Three subsystems, organized under flat top-level packages:
//
//	ply/         — the closed data model: angles, sequences, ply counts,
//	               rule/fitness results
//	rules/       — the Rule Evaluator: eight weighted lamination rules
//	               plus the three hard manufacturing constraints
//	seqkit/      — sequence primitives: skeleton construction, local
//	               moves, adjacency repair, grouping statistics
//	optimizer/   — the single-zone optimizer: symmetric skeleton, then a
//	               multi-start evolutionary search, then bounded
//	               hill-climb polish
//	dropoff/     — the drop-off engine: shrinks a parent zone's sequence
//	               down to a child zone's smaller target counts while
//	               preserving symmetry and hard constraints
//	zonegraph/   — the panel's zones as a pixel-space adjacency graph
//	orchestrator/— the multi-zone scheduler: root selection, BFS
//	               scheduling with a thickest-parent tie-break, weight
//	               and ramp-feasibility reporting
//
// cmd/stacker wraps these packages in a CLI; internal/jobconfig and
// internal/applog carry the CLI's configuration and logging.
package laminate
