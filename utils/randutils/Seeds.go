// Package randutils implements utilities for seeding random number
// generators
package randutils

import (
	"golang.org/x/exp/rand"
)

// Seeds derives n seeds from a single seed, one per random stream.
// The same seed always derives the same seeds.
func Seeds(seed uint64, n int) []uint64 {
	rng := rand.New(rand.NewSource(seed))

	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}
