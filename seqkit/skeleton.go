package seqkit

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/plystack/laminate/ply"
)

// ErrSequenceTooShort indicates fewer than 4 total plies, too few to place
// the four protected outer positions.
var ErrSequenceTooShort = errors.New("seqkit: sequence shorter than 4 plies")

// ErrInsufficientStock indicates the requested counts cannot satisfy the
// outer ±45 requirement (fewer than 4 plies at ±45 total, or similar).
var ErrInsufficientStock = errors.New("seqkit: insufficient ±45 stock for outer plies")

// BuildSymmetricSkeleton produces a sequence satisfying the hard
// constraints and, in the common case where at most one angle has an odd
// count, exact mid-plane symmetry (spec.md §4.2). When more than one angle
// has an odd count beyond the one consumed by an odd-length middle ply,
// full index-level symmetry cannot coexist with exact per-angle counts;
// the extra unpaired plies are spliced in near the center and per-angle
// counts remain exact, at the cost of symmetry at those few positions.
func BuildSymmetricSkeleton(counts ply.PlyCounts, rng *rand.Rand) (ply.Sequence, error) {
	n := counts.Total()
	if n < 4 {
		return nil, ErrSequenceTooShort
	}
	if counts.Get(ply.AnglePlus45)+counts.Get(ply.AngleMinus45) < 4 {
		return nil, ErrInsufficientStock
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	remaining := counts
	hasMiddle := n%2 == 1
	var middleAngle ply.Angle
	if hasMiddle {
		middleAngle = pickMiddleAngle(remaining)
		idx, _ := middleAngle.Index()
		remaining[idx]--
	}

	// Split remaining stock into the half each angle contributes to a
	// mirrored pair, plus any leftover singleton that cannot be mirrored.
	var half ply.PlyCounts
	var extras []ply.Angle
	for i := 0; i < ply.NumAngles; i++ {
		half[i] = remaining[i] / 2
		if remaining[i]%2 == 1 {
			extras = append(extras, ply.AngleAt(i))
		}
	}
	h := half.Total()

	left, err := buildLeftHalf(half, h, rng)
	if err != nil {
		return nil, err
	}

	seq := assembleMirrored(left, hasMiddle, middleAngle, extras)

	RepairZeroNinetyAdjacency(seq)

	return seq, nil
}

// assembleMirrored lays out left, an optional middle ply, any unpaired
// extras, and the mirror of left as one contiguous block: left + [middle] +
// extras + reverse(left). Placing extras in a single pass (rather than
// inserting them one at a time at a repeatedly-recomputed center) keeps
// every index outside the extras block an exact mirror pair by
// construction: for p < len(left), position p and its mirror
// n-1-p both land in left/reverse(left) and hold the same angle. When
// extras holds two or more distinct angles, the mismatch spec.md §4.2
// describes is confined to pairs fully inside that block — never smeared
// across positions that would otherwise mirror cleanly.
func assembleMirrored(left ply.Sequence, hasMiddle bool, middleAngle ply.Angle, extras []ply.Angle) ply.Sequence {
	n := 2*len(left) + len(extras)
	if hasMiddle {
		n++
	}
	seq := make(ply.Sequence, 0, n)
	seq = append(seq, left...)
	if hasMiddle {
		seq = append(seq, middleAngle)
	}
	seq = append(seq, extras...)
	for i := len(left) - 1; i >= 0; i-- {
		seq = append(seq, left[i])
	}
	return seq
}

// pickMiddleAngle chooses the angle to occupy the single middle index of
// an odd-length sequence: prefer an angle with an odd remaining count
// (spec.md §4.2), otherwise any angle with stock.
func pickMiddleAngle(counts ply.PlyCounts) ply.Angle {
	for i := 0; i < ply.NumAngles; i++ {
		if counts[i]%2 == 1 && counts[i] > 0 {
			return ply.AngleAt(i)
		}
	}
	for i := 0; i < ply.NumAngles; i++ {
		if counts[i] > 0 {
			return ply.AngleAt(i)
		}
	}
	return ply.Angle0
}

// buildLeftHalf fills h left-half positions from half-stock, seeding
// positions 0/1 with alternating ±45 and filling the rest via the greedy
// policy of spec.md §4.2.
func buildLeftHalf(half ply.PlyCounts, h int, rng *rand.Rand) (ply.Sequence, error) {
	left := make(ply.Sequence, h)
	stock := half

	p45idx, _ := ply.AnglePlus45.Index()
	m45idx, _ := ply.AngleMinus45.Index()
	first, second := ply.AnglePlus45, ply.AngleMinus45
	if rng.Intn(2) == 0 {
		first, second = ply.AngleMinus45, ply.AnglePlus45
	}
	if h >= 1 {
		a := first
		if stock[p45idx] == 0 && stock[m45idx] > 0 {
			a = ply.AngleMinus45
		} else if stock[m45idx] == 0 && stock[p45idx] > 0 {
			a = ply.AnglePlus45
		}
		left[0] = a
		decrementStock(&stock, a)
	}
	if h >= 2 {
		a := second
		idx, _ := a.Index()
		if stock[idx] == 0 {
			a = otherFortyFive(a)
			idx2, _ := a.Index()
			if stock[idx2] == 0 {
				a = anyAvailable(stock)
			}
		}
		left[1] = a
		decrementStock(&stock, a)
	}

	innerThreshold := h - h/5 // "innermost 20%" boundary (>= threshold is inner 20%)

	for p := 2; p < h; p++ {
		a := chooseGreedyAngle(left, p, stock, innerThreshold)
		left[p] = a
		decrementStock(&stock, a)
	}
	return left, nil
}

func otherFortyFive(a ply.Angle) ply.Angle {
	if a == ply.AnglePlus45 {
		return ply.AngleMinus45
	}
	return ply.AnglePlus45
}

func decrementStock(stock *ply.PlyCounts, a ply.Angle) {
	if idx, ok := a.Index(); ok && stock[idx] > 0 {
		stock[idx]--
	}
}

func anyAvailable(stock ply.PlyCounts) ply.Angle {
	best := -1
	bestCount := -1
	for i := 0; i < ply.NumAngles; i++ {
		if stock[i] > bestCount {
			bestCount = stock[i]
			best = i
		}
	}
	if best < 0 {
		return ply.Angle0
	}
	return ply.AngleAt(best)
}

// chooseGreedyAngle picks the angle for left-half position p, trying
// candidates by descending remaining stock and rejecting ones that would
// (a) place 90 in the innermost 20%, (b) form a 0/90 adjacency with the
// previous ply, or (c) extend a run to length 3. Falls back to an
// arbitrary available angle if every candidate is rejected.
func chooseGreedyAngle(left ply.Sequence, p int, stock ply.PlyCounts, innerThreshold int) ply.Angle {
	type cand struct {
		angle ply.Angle
		count int
	}
	cands := make([]cand, 0, ply.NumAngles)
	for i := 0; i < ply.NumAngles; i++ {
		if stock[i] > 0 {
			cands = append(cands, cand{ply.AngleAt(i), stock[i]})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].count > cands[j].count })

	prev := left[p-1]
	var prevPrev ply.Angle
	hasPrevPrev := p >= 2
	if hasPrevPrev {
		prevPrev = left[p-2]
	}

	for _, c := range cands {
		if c.angle == ply.Angle90 && p >= innerThreshold {
			continue
		}
		if formsZeroNinety(prev, c.angle) {
			continue
		}
		if hasPrevPrev && prevPrev == prev && prev == c.angle {
			continue // would extend run to length 3
		}
		return c.angle
	}
	// No candidate satisfies every rule; place arbitrarily to guarantee
	// termination, preferring the least-constrained available angle.
	if len(cands) > 0 {
		return cands[0].angle
	}
	return ply.Angle0
}

func formsZeroNinety(a, b ply.Angle) bool {
	return (a == ply.Angle0 && b == ply.Angle90) || (a == ply.Angle90 && b == ply.Angle0)
}
