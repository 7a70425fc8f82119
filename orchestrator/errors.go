// Package orchestrator implements the Multi-zone Orchestrator of spec.md
// §4.5: connectivity and feasibility checking, root selection, BFS-order
// drop-off scheduling, panel weight, and ramp-feasibility reporting over
// a set of zones linked by a pixel-space adjacency graph (zonegraph).
package orchestrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMaxRetriesExceeded is returned, with the Turkish diagnostic spec.md
// §6 specifies, when MAX_ROOT_RETRIES root runs all failed to produce a
// full drop-off schedule.
var ErrMaxRetriesExceeded = errors.New("Maksimum deneme asildi")

// ConnectivityError reports zones unreachable from the chosen root
// (spec.md §6: "Baglantisiz zone'lar ...").
type ConnectivityError struct {
	Disconnected []int
}

func (e *ConnectivityError) Error() string {
	parts := make([]string, len(e.Disconnected))
	for i, z := range e.Disconnected {
		parts[i] = fmt.Sprintf("zone %d", z)
	}
	return fmt.Sprintf("Baglantisiz zone'lar: %s", strings.Join(parts, ", "))
}

// FeasibilityViolation names one zone whose target counts exceed its
// chosen parent's.
type FeasibilityViolation struct {
	Zone      int
	Parent    int
	Angle     string
	Requested int
	Available int
}

// FeasibilityError reports every feasibility violation found while
// walking the BFS order (spec.md §6: "Ply sayilari uyumsuz ...").
type FeasibilityError struct {
	Violations []FeasibilityViolation
}

func (e *FeasibilityError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("zone %d <- zone %d: angle %s requested %d > available %d",
			v.Zone, v.Parent, v.Angle, v.Requested, v.Available)
	}
	return fmt.Sprintf("Ply sayilari uyumsuz: %s", strings.Join(parts, "; "))
}

func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}
