// Package ply defines the closed data model shared by every other package
// in this module: ply angles, stacking sequences, per-angle ply counts, and
// the result shapes produced by the rule evaluator.
//
// The angle set is closed at {0, 90, +45, −45}; per spec.md §9 this is
// represented as a four-slot fixed array indexed by a small tag rather than
// a map, so per-angle lookups are branch-free and allocation-free.
package ply

import "fmt"

// Angle is one of the four discrete ply orientations, in degrees.
type Angle int

// The closed set of supported ply angles.
const (
	Angle0       Angle = 0
	Angle90      Angle = 90
	AnglePlus45  Angle = 45
	AngleMinus45 Angle = -45
)

// NumAngles is the size of the closed angle set.
const NumAngles = 4

// angleOrder fixes the canonical slot order used by PlyCounts and every
// other four-element fixed array keyed by angle.
var angleOrder = [NumAngles]Angle{Angle0, Angle90, AnglePlus45, AngleMinus45}

// Index returns this angle's slot in the fixed order (0,90,+45,−45) and
// whether the angle is one of the four supported values.
func (a Angle) Index() (int, bool) {
	switch a {
	case Angle0:
		return 0, true
	case Angle90:
		return 1, true
	case AnglePlus45:
		return 2, true
	case AngleMinus45:
		return 3, true
	default:
		return -1, false
	}
}

// Valid reports whether a is one of the four supported angles.
func (a Angle) Valid() bool {
	_, ok := a.Index()
	return ok
}

// Is45 reports whether the magnitude of a is 45, regardless of sign.
func (a Angle) Is45() bool {
	return a == AnglePlus45 || a == AngleMinus45
}

// String renders the angle the way callers and error messages expect,
// e.g. "0", "90", "45", "-45".
func (a Angle) String() string {
	return fmt.Sprintf("%d", int(a))
}

// AngleAt returns the angle occupying fixed slot i (0..NumAngles-1).
func AngleAt(i int) Angle {
	return angleOrder[i]
}
