// Package randutil centralises how RNG streams are derived from seeds so
// that every simulation path in the repository is reproducible from a
// single int64.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns an independent generator for one worker of a parallel
// evaluation. Streams for distinct worker indices are decorrelated even
// when the base seed is the same, so Monte Carlo workers can each own a
// generator without sharing state.
func Stream(seed int64, worker int) *rand.Rand {
	u := uint64(seed) + uint64(worker+1)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
