// SPDX-License-Identifier: MIT
// Package auxfield - deterministic draw streams.
//
// Goals:
//   - Determinism: same (seed, sample) ⇒ identical draws on every platform.
//   - Independence from scheduling: sample k's draws never depend on which
//     worker evaluates it or on how many samples ran before.
//   - Resumability: extending a run from N to N' samples leaves the first N
//     samples unchanged.
//
// Concurrency:
//   - A rand.Source is not goroutine-safe. DrawStream builds a fresh PCG per
//     call, so concurrent calls share nothing.

package auxfield

import (
	"math/rand/v2"
)

// deriveSeed mixes a run seed and a sample index into a new 64-bit seed with
// a SplitMix64 finalizer, so neighbouring indices give uncorrelated streams.
//
// Complexity: O(1).
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// SampleSource returns the PCG source of sample k of a run seeded with seed.
func SampleSource(seed uint64, k int) rand.Source {
	return rand.NewPCG(deriveSeed(seed, uint64(k)), seed)
}

// DrawStream returns the n draws of sample k from kernel's distribution.
//
// Complexity: O(n).
func DrawStream(kernel Kernel, seed uint64, k, n int) []float64 {
	dist := kernel.Distribution(SampleSource(seed, k))
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}

	return out
}
