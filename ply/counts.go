package ply

import (
	"errors"
	"fmt"
)

// ErrNegativeCount indicates a PlyCounts entry below zero.
var ErrNegativeCount = errors.New("ply: negative count")

// ErrUnknownAngle indicates an angle outside the closed {0,90,45,-45} set.
var ErrUnknownAngle = errors.New("ply: unknown angle")

// PlyCounts holds the non-negative ply count for each of the four angles,
// keyed by Angle.Index() rather than a map (spec.md §9).
type PlyCounts [NumAngles]int

// NewPlyCounts builds a PlyCounts from an angle->count map. An unknown
// angle returns a wrapped ErrUnknownAngle; a negative count returns
// ErrNegativeCount.
func NewPlyCounts(m map[Angle]int) (PlyCounts, error) {
	var pc PlyCounts
	for a, c := range m {
		idx, ok := a.Index()
		if !ok {
			return PlyCounts{}, fmt.Errorf("%w: %s", ErrUnknownAngle, a)
		}
		if c < 0 {
			return PlyCounts{}, ErrNegativeCount
		}
		pc[idx] = c
	}
	return pc, nil
}

// Get returns the count at angle a (0 if a is not part of the closed set).
func (pc PlyCounts) Get(a Angle) int {
	idx, ok := a.Index()
	if !ok {
		return 0
	}
	return pc[idx]
}

// Set stores count at angle a. No-op if a is outside the closed set.
func (pc *PlyCounts) Set(a Angle, count int) {
	idx, ok := a.Index()
	if !ok {
		return
	}
	pc[idx] = count
}

// Total returns the sum of all four angle counts, i.e. the sequence length
// these counts describe.
func (pc PlyCounts) Total() int {
	total := 0
	for _, c := range pc {
		total += c
	}
	return total
}

// LessOrEqual reports whether pc is componentwise <= other, the invariant
// spec.md §3 requires between a non-root zone and its parent.
func (pc PlyCounts) LessOrEqual(other PlyCounts) bool {
	for i := 0; i < NumAngles; i++ {
		if pc[i] > other[i] {
			return false
		}
	}
	return true
}

// Sub returns pc - other elementwise. Negative results are possible; callers
// that require non-negativity (drop-off deltas) must check explicitly.
func (pc PlyCounts) Sub(other PlyCounts) PlyCounts {
	var out PlyCounts
	for i := 0; i < NumAngles; i++ {
		out[i] = pc[i] - other[i]
	}
	return out
}

// ToMap renders pc as an angle->count map, mainly for external interfaces
// (spec.md §6) where callers expect a map shape.
func (pc PlyCounts) ToMap() map[Angle]int {
	m := make(map[Angle]int, NumAngles)
	for i := 0; i < NumAngles; i++ {
		m[AngleAt(i)] = pc[i]
	}
	return m
}
