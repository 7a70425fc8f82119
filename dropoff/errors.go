// Package dropoff implements the Drop-off Engine of spec.md §4.4: deriving
// a child sequence from a parent by removing plies to meet target
// per-angle counts, preserving all hard constraints and maximizing rule
// compliance under a lexicographic ranking key.
package dropoff

import (
	"errors"
	"fmt"

	"github.com/plystack/laminate/ply"
)

// ErrTargetExceedsParent is returned, wrapped with the exact Turkish
// diagnostic spec.md §6 specifies, when a target angle count exceeds the
// parent's count for that angle.
var ErrTargetExceedsParent = errors.New("dropoff: target angle count exceeds parent")

// ErrSearchExhausted indicates neither the randomized search nor the
// deterministic fallbacks could produce a valid child (spec.md §7
// category 3: "search failure").
var ErrSearchExhausted = errors.New("dropoff: exhausted randomized and deterministic search")

// TargetExceedsParentError carries the angle, requested, and available
// counts for the exact caller-facing message of spec.md §6:
// "Angle X°: hedef Y ama mevcut sadece Z katman var".
type TargetExceedsParentError struct {
	Angle     ply.Angle
	Requested int
	Available int
}

func (e *TargetExceedsParentError) Error() string {
	return fmt.Sprintf("Angle %s°: hedef %d ama mevcut sadece %d katman var", e.Angle, e.Requested, e.Available)
}

func (e *TargetExceedsParentError) Unwrap() error { return ErrTargetExceedsParent }

// checkFeasible validates that target <= parent componentwise, returning
// the first violation found (in fixed angle order) as a
// *TargetExceedsParentError.
func checkFeasible(parentCounts, target ply.PlyCounts) error {
	for i := 0; i < ply.NumAngles; i++ {
		if target[i] > parentCounts[i] {
			return &TargetExceedsParentError{
				Angle:     ply.AngleAt(i),
				Requested: target[i],
				Available: parentCounts[i],
			}
		}
	}
	return nil
}
