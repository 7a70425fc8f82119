package main

import (
	"fmt"
	"io"

	"github.com/plystack/laminate/internal/jobconfig"
	"github.com/plystack/laminate/ply"
)

// weightsOrDefault returns cfg's weight override, or ply.DefaultWeights
// when the config carries the zero value (no override supplied).
func weightsOrDefault(cfg jobconfig.Config) ply.WeightMap {
	if cfg.Weights == (ply.WeightMap{}) {
		return ply.DefaultWeights
	}
	return cfg.Weights
}

// printFitness renders a FitnessResult the way a CI-friendly CLI would:
// total first, then one line per rule, mirroring the donor's preference
// for plain, greppable text over a formatted table.
func printFitness(w io.Writer, fit ply.FitnessResult) {
	fmt.Fprintf(w, "total: %.2f / %.0f\n", fit.Total, ply.MaxFitness)
	if fit.HardFailed {
		fmt.Fprintln(w, "hard constraint violated:")
	}
	for _, r := range fit.Breakdown {
		fmt.Fprintf(w, "  %-4s weight=%.2f score=%.2f penalty=%.2f  %s\n", r.ID, r.Weight, r.Score, r.Penalty(), r.Reason)
	}
}

// printSequence renders a sequence as a compact angle list.
func printSequence(w io.Writer, seq ply.Sequence) {
	fmt.Fprint(w, "sequence:")
	for _, a := range seq {
		fmt.Fprintf(w, " %s", a)
	}
	fmt.Fprintln(w)
}
