package dropoff

import "github.com/plystack/laminate/ply"

// removalPlan describes, per spec.md §4.4's parity handling, how many
// symmetric pairs and how many asymmetric singles must be removed per
// angle, plus the two structural special cases (removing the parent's
// existing middle ply, or breaking one pair to manufacture a new one).
type removalPlan struct {
	pairDrops   ply.PlyCounts // symmetric pairs to remove, per angle
	singleDrops ply.PlyCounts // asymmetric singles to remove, per angle (0 or 1 each)

	removeMiddle bool      // n odd, m even: drop the parent's existing middle ply
	breakPairOf  ply.Angle // n even, m odd: convert one pair-removal of this angle into a right-only removal
	hasBreakPair bool
}

// buildPlan computes the removal plan for dropping parent (length n) to
// target counts (length m), per spec.md §4.4.
func buildPlan(parent ply.Sequence, target ply.PlyCounts) removalPlan {
	parentCounts := parent.Counts()
	n := parent.Len()
	m := target.Total()

	var plan removalPlan
	for i := 0; i < ply.NumAngles; i++ {
		delta := parentCounts[i] - target[i]
		plan.pairDrops[i] = delta / 2
		plan.singleDrops[i] = delta % 2
	}

	switch {
	case n%2 == 1 && m%2 == 0:
		plan.removeMiddle = true
	case n%2 == 0 && m%2 == 1:
		// Breaking a pair removes exactly one ply of that angle (the
		// mirror; the kept member becomes the new middle), so the
		// angle chosen must already owe an odd (single) removal rather
		// than taking one away from its pair removals.
		for i := 0; i < ply.NumAngles; i++ {
			if plan.singleDrops[i] == 1 {
				plan.breakPairOf = ply.AngleAt(i)
				plan.hasBreakPair = true
				break
			}
		}
	}
	return plan
}

// totalSingles returns the count of asymmetric single removals the plan
// requires, excluding removeMiddle/breakPair which are handled separately.
func (p removalPlan) totalSingles() int {
	t := 0
	for _, v := range p.singleDrops {
		t += v
	}
	return t
}

// proportionalTargetCounts derives a per-angle target count for a
// requested total length, using the largest-remainder method against the
// parent's current proportions (SPEC_FULL.md §9 supplement: "Drop-off by
// target length").
func proportionalTargetCounts(parent ply.Sequence, targetLength int) ply.PlyCounts {
	parentCounts := parent.Counts()
	n := parent.Len()
	if n == 0 || targetLength >= n {
		return parentCounts
	}

	var floorCounts ply.PlyCounts
	remainders := make([]float64, ply.NumAngles)
	assigned := 0
	for i := 0; i < ply.NumAngles; i++ {
		exact := float64(parentCounts[i]) * float64(targetLength) / float64(n)
		floorCounts[i] = int(exact)
		remainders[i] = exact - float64(floorCounts[i])
		assigned += floorCounts[i]
	}
	remaining := targetLength - assigned
	for remaining > 0 {
		bestIdx, bestRem := -1, -1.0
		for i := 0; i < ply.NumAngles; i++ {
			if floorCounts[i] < parentCounts[i] && remainders[i] > bestRem {
				bestRem = remainders[i]
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		floorCounts[bestIdx]++
		remainders[bestIdx] = -1 // consumed
		remaining--
	}
	return floorCounts
}
