package seqkit

import "github.com/plystack/laminate/ply"

// RepairZeroNinetyAdjacency mutates seq in place, swapping elements to
// eliminate any 0/90 adjacency introduced by construction or a single-ply
// removal (spec.md §4.2, §4.4). A swap is only accepted if it removes the
// violation at i without introducing a new one at either swap site;
// outer positions {0,1,n-2,n-1} are touched only as a last resort since
// they are protected by the hard outer-ply constraint.
func RepairZeroNinetyAdjacency(seq ply.Sequence) {
	n := len(seq)
	if n < 2 {
		return
	}
	for pass := 0; pass < n; pass++ {
		violationIdx := -1
		for i := 0; i+1 < n; i++ {
			if formsZeroNinety(seq[i], seq[i+1]) {
				violationIdx = i
				break
			}
		}
		if violationIdx < 0 {
			return // clean
		}
		if !resolveOneViolation(seq, violationIdx) {
			return // cannot improve further; avoid infinite loop
		}
	}
}

// resolveOneViolation attempts to clear the violation at seq[i]/seq[i+1]
// by swapping one of the two offending positions with some other index.
// Returns true if a resolving swap was found and applied.
func resolveOneViolation(seq ply.Sequence, i int) bool {
	n := len(seq)
	for _, side := range [2]int{i + 1, i} {
		for j := 0; j < n; j++ {
			if j == i || j == i+1 {
				continue
			}
			if isOuterProtected(j, n) {
				continue
			}
			seq[side], seq[j] = seq[j], seq[side]
			if !formsZeroNinety(seq[i], seq[i+1]) && !createsViolationAround(seq, side) && !createsViolationAround(seq, j) {
				return true
			}
			seq[side], seq[j] = seq[j], seq[side] // undo
		}
	}
	// Last resort: allow touching protected outer positions.
	for _, side := range [2]int{i + 1, i} {
		for j := 0; j < n; j++ {
			if j == i || j == i+1 {
				continue
			}
			seq[side], seq[j] = seq[j], seq[side]
			if !formsZeroNinety(seq[i], seq[i+1]) && !createsViolationAround(seq, side) && !createsViolationAround(seq, j) {
				return true
			}
			seq[side], seq[j] = seq[j], seq[side]
		}
	}
	return false
}

func isOuterProtected(idx, n int) bool {
	return idx == 0 || idx == 1 || idx == n-2 || idx == n-1
}

// createsViolationAround reports whether position idx forms a 0/90
// adjacency with either neighbor.
func createsViolationAround(seq ply.Sequence, idx int) bool {
	n := len(seq)
	if idx > 0 && formsZeroNinety(seq[idx-1], seq[idx]) {
		return true
	}
	if idx+1 < n && formsZeroNinety(seq[idx], seq[idx+1]) {
		return true
	}
	return false
}
