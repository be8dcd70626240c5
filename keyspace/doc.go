// SPDX-License-Identifier: MIT

// Package keyspace enumerates Trifid keys over a fixed alphabet.
//
// A key of length L over an alphabet of m symbols is a mixed-radix number
// with L digits in base m. Index i ∈ [0, m^L) maps to exactly one key:
//
//	digit k  = (i / m^k) mod m        (k = 0..L-1)
//	key[k]   = alphabet[digit k]
//
// The least-significant digit is placed FIRST, so consecutive indices vary
// the leftmost symbol fastest: "AAA", "BAA", "CAA", ... Only L digits are
// produced, therefore indices beyond m^L wrap (i mod m^L) instead of failing.
//
// ✨ Key features:
//   - SequentialKey / Index - the bijection and its inverse
//   - Size                  - m^L with overflow detection
//   - RandomKey             - uniform sampling for non-exhaustive searches
//   - NewRand / DeriveRand  - deterministic, per-worker RNG streams
//   - Source                - one interface over both enumeration modes
//
// Concurrency:
//   - All functions are pure except RandomKey/Random, which consume the
//     supplied *rand.Rand. A *rand.Rand is NOT goroutine-safe; derive one
//     stream per worker with DeriveRand.
package keyspace
