package ply

// Sequence is an ordered list of ply angles, indexed 0..n-1 from outer
// surface to outer surface (spec.md §3). Sequences are treated as
// immutable once handed to a caller; internal search routines work on
// owned copies (see seqkit) and publish a winner.
type Sequence []Angle

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Len is the ply count n.
func (s Sequence) Len() int { return len(s) }

// HalfLen returns h = n/2, the "half length" of spec.md §3.
func (s Sequence) HalfLen() int { return len(s) / 2 }

// MiddleIndex returns (n-1)/2 and true when n is odd; (0, false) when even.
func (s Sequence) MiddleIndex() (int, bool) {
	n := len(s)
	if n%2 == 0 {
		return 0, false
	}
	return (n - 1) / 2, true
}

// Counts recomputes the per-angle counts from the sequence contents.
func (s Sequence) Counts() PlyCounts {
	var pc PlyCounts
	for _, a := range s {
		if idx, ok := a.Index(); ok {
			pc[idx]++
		}
	}
	return pc
}

// HasZeroNinetyAdjacency reports whether any adjacent pair is {0,90} in
// either order — the hard constraint #2 of spec.md §4.1.
func (s Sequence) HasZeroNinetyAdjacency() bool {
	for i := 0; i+1 < len(s); i++ {
		a, b := s[i], s[i+1]
		if (a == Angle0 && b == Angle90) || (a == Angle90 && b == Angle0) {
			return true
		}
	}
	return false
}

// OuterPliesAre45 reports whether seq[0], seq[1], seq[n-2], seq[n-1] all
// have |angle| = 45 (hard constraint #3; vacuously true for n < 4).
func (s Sequence) OuterPliesAre45() bool {
	n := len(s)
	if n < 4 {
		return true
	}
	return s[0].Is45() && s[1].Is45() && s[n-2].Is45() && s[n-1].Is45()
}

// EndpointsNotZero reports whether neither seq[0] nor seq[n-1] equals 0°
// (hard constraint #1).
func (s Sequence) EndpointsNotZero() bool {
	n := len(s)
	if n == 0 {
		return true
	}
	return s[0] != Angle0 && s[n-1] != Angle0
}

// IsSymmetric reports mid-plane symmetry: seq[i] == seq[n-1-i] for all i.
func (s Sequence) IsSymmetric() bool {
	n := len(s)
	for i := 0; i < n/2; i++ {
		if s[i] != s[n-1-i] {
			return false
		}
	}
	return true
}

// MismatchedMirrorPairs counts index pairs (i, n-1-i) whose angles differ.
// A fully symmetric sequence scores 0; a sequence built from per-angle
// counts with k distinct odd-count angles (k even, k>=2) scores at least
// k/2, since each unpaired angle occupies one position that cannot mirror
// another occurrence of itself — see BuildSymmetricSkeleton.
func (s Sequence) MismatchedMirrorPairs() int {
	n := len(s)
	count := 0
	for i := 0; i < n/2; i++ {
		if s[i] != s[n-1-i] {
			count++
		}
	}
	return count
}

// SatisfiesHardConstraints runs all three hard constraints at once; used
// by callers that need a single boolean rather than the Rule Evaluator's
// full diagnostic breakdown.
func (s Sequence) SatisfiesHardConstraints() bool {
	return s.EndpointsNotZero() && !s.HasZeroNinetyAdjacency() && s.OuterPliesAre45()
}

// NormalizedMidplaneDistance returns, for index i, the normalized distance
// of ply i from the mid-plane: 0 at the center, approaching 1 at the
// outer faces. Used by R7/R8. n must be >= 1.
func NormalizedMidplaneDistance(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	center := float64(n-1) / 2
	maxDist := center
	if maxDist == 0 {
		return 0
	}
	d := float64(i) - center
	if d < 0 {
		d = -d
	}
	return d / maxDist
}
