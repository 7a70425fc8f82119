package dropoff

import "math/rand"

// defaultSeed mirrors optimizer's fixed "zero" seed so a zero-value
// Options never produces a time-based stream.
const defaultSeed int64 = 1

func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultSeed
	}
	return rand.New(rand.NewSource(s))
}
