package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/zonegraph"
)

// rectSpec is a zone's bounding rectangle as it appears in a job file.
type rectSpec struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
	W int `json:"w" toml:"w"`
	H int `json:"h" toml:"h"`
}

// zoneSpec is one zone's input to the multizone subcommand: its target
// per-angle counts and optional geometry.
type zoneSpec struct {
	Counts map[string]int `json:"counts" toml:"counts"`
	Rect   *rectSpec      `json:"rect" toml:"rect"`
}

// job is the on-disk shape for every stacker subcommand's domain input
// (spec.md §6's call shapes given a file body instead of in-process
// arguments). Only the fields relevant to the invoked subcommand need be
// present.
type job struct {
	// Sequence is an existing stacking sequence, angle per entry, used by
	// evaluate and as dropoff's parent.
	Sequence []string `json:"sequence" toml:"sequence"`
	// Counts is a target per-angle count map, used by optimize.
	Counts map[string]int `json:"counts" toml:"counts"`
	// TargetCounts is dropoff's per-angle target (ToAngleCounts).
	TargetCounts map[string]int `json:"target_counts" toml:"target_counts"`
	// TargetLength is dropoff's target length (ToLength); 0 means unset.
	TargetLength int `json:"target_length" toml:"target_length"`
	// Zones is the multizone subcommand's per-zone input list.
	Zones []zoneSpec `json:"zones" toml:"zones"`
	// PanelScaleMM overrides orchestrator.DefaultPanelScaleMM for
	// multizone.
	PanelScaleMM float64 `json:"panel_scale_mm" toml:"panel_scale_mm"`
}

// loadJob reads and decodes a job file, choosing JSON or TOML by
// extension (".json" vs anything else defaults to TOML, matching the
// donor's TOML-first configuration convention).
func loadJob(path string) (job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return job{}, fmt.Errorf("stacker: read job file %s: %w", path, err)
	}

	var j job
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &j); err != nil {
			return job{}, fmt.Errorf("stacker: parse json job file %s: %w", path, err)
		}
		return j, nil
	}
	if err := toml.Unmarshal(data, &j); err != nil {
		return job{}, fmt.Errorf("stacker: parse toml job file %s: %w", path, err)
	}
	return j, nil
}

// angleFromName maps the job file's string spelling onto ply.Angle; "45"
// means +45 to match spec.md's {0, 90, +45, -45} notation written
// without a leading plus sign in plain maps.
func angleFromName(name string) (ply.Angle, error) {
	switch strings.TrimSpace(name) {
	case "0":
		return ply.Angle0, nil
	case "90":
		return ply.Angle90, nil
	case "45", "+45":
		return ply.AnglePlus45, nil
	case "-45":
		return ply.AngleMinus45, nil
	default:
		return 0, fmt.Errorf("stacker: unknown angle %q", name)
	}
}

// countsFromMap builds a ply.PlyCounts from a job file's angle->count
// map, defaulting absent angles to zero.
func countsFromMap(m map[string]int) (ply.PlyCounts, error) {
	out := map[ply.Angle]int{ply.Angle0: 0, ply.Angle90: 0, ply.AnglePlus45: 0, ply.AngleMinus45: 0}
	for name, n := range m {
		a, err := angleFromName(name)
		if err != nil {
			return ply.PlyCounts{}, err
		}
		out[a] = n
	}
	return ply.NewPlyCounts(out)
}

// sequenceFromNames builds a ply.Sequence from a job file's ordered list
// of angle strings.
func sequenceFromNames(names []string) (ply.Sequence, error) {
	seq := make(ply.Sequence, len(names))
	for i, name := range names {
		a, err := angleFromName(name)
		if err != nil {
			return nil, err
		}
		seq[i] = a
	}
	return seq, nil
}

// rectFromSpec converts a job file rectangle into a zonegraph.Rect.
func rectFromSpec(r *rectSpec) zonegraph.Rect {
	if r == nil {
		return zonegraph.Rect{}
	}
	return zonegraph.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
