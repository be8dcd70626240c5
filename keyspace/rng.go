// SPDX-License-Identifier: MIT
// Package keyspace - RNG utilities for random-mode searches.
//
// Goals:
//   - Determinism: same (seed, stream) ⇒ identical key sequences across platforms.
//   - Independence: every worker draws from its own derived stream.
//   - No hidden time-based sources: NewRand and DeriveRand are pure; an unset
//     seed is resolved once with FreshSeed by the caller, which reports it.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across workers.
package keyspace

import "math/rand"

// defaultSeed is used when callers pass seed==0.
const defaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveRand returns an independent deterministic stream for (seed, stream),
// typically stream = worker id. Seeds are mixed with a SplitMix64 finalizer so
// neighbouring worker ids do not produce correlated sequences.
//
// Complexity: O(1).
func DeriveRand(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(deriveSeed(seed, stream)))
}

// FreshSeed draws a non-zero seed from the process-wide randomly seeded
// source. Callers resolve an unset seed with it once and report the value so
// the run can be replayed.
func FreshSeed() int64 {
	for {
		if seed := rand.Int63(); seed != 0 {
			return seed
		}
	}
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed.
// Constants are the canonical SplitMix64 increment and multipliers.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}
