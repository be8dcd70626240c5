// SPDX-License-Identifier: MIT

package keyspace

import (
	"fmt"
	"math/bits"
	"math/rand"
)

// Size returns base^length.
//
// Errors:
//   - ErrEmptyAlphabet - base < 1.
//   - ErrBadLength     - length < 1.
//   - ErrOverflow      - the product overflows uint64.
//
// Complexity: O(length).
func Size(base, length int) (uint64, error) {
	if base < 1 {
		return 0, ErrEmptyAlphabet
	}
	if length < 1 {
		return 0, ErrBadLength
	}

	var (
		total uint64 = 1
		hi    uint64
		k     int
	)
	for k = 0; k < length; k++ {
		hi, total = bits.Mul64(total, uint64(base))
		if hi != 0 {
			return 0, fmt.Errorf("%w: %d^%d", ErrOverflow, base, length)
		}
	}

	return total, nil
}

// SequentialKey decomposes index into length base-m digits, least-significant
// digit first, and maps each digit through alphabet.
//
// Contract:
//   - len(alphabet) ≥ 1 and length ≥ 1; otherwise the empty string is returned.
//   - Indices outside [0, m^L) wrap deterministically (index mod m^L).
//
// Complexity: O(length).
func SequentialKey(index uint64, alphabet []rune, length int) string {
	if len(alphabet) == 0 || length < 1 {
		return ""
	}

	var (
		base = uint64(len(alphabet))
		key  = make([]rune, length)
		k    int
	)
	for k = 0; k < length; k++ {
		key[k] = alphabet[index%base]
		index /= base
	}

	return string(key)
}

// Index is the inverse of SequentialKey: it returns the smallest index whose
// key equals key.
//
// Errors:
//   - ErrEmptyAlphabet / ErrBadLength - degenerate inputs.
//   - ErrForeignSymbol               - key contains a symbol outside alphabet.
//   - ErrOverflow                    - the index does not fit into uint64.
//
// Complexity: O(len(key) + len(alphabet)).
func Index(key string, alphabet []rune) (uint64, error) {
	if len(alphabet) == 0 {
		return 0, ErrEmptyAlphabet
	}
	var runes = []rune(key)
	if len(runes) == 0 {
		return 0, ErrBadLength
	}

	var pos = make(map[rune]uint64, len(alphabet))
	var i int
	for i = len(alphabet) - 1; i >= 0; i-- { // first occurrence wins
		pos[alphabet[i]] = uint64(i)
	}

	var (
		base   = uint64(len(alphabet))
		index  uint64
		hi, lo uint64
		carry  uint64
		digit  uint64
		ok     bool
		k      int
	)
	// Horner evaluation from the most-significant (last) digit.
	for k = len(runes) - 1; k >= 0; k-- {
		digit, ok = pos[runes[k]]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrForeignSymbol, runes[k])
		}
		hi, lo = bits.Mul64(index, base)
		index, carry = bits.Add64(lo, digit, 0)
		if hi != 0 || carry != 0 {
			return 0, fmt.Errorf("%w: key %q", ErrOverflow, key)
		}
	}

	return index, nil
}

// RandomKey draws length symbols uniformly and independently from alphabet.
// If rng is nil the deterministic default stream is used (seed==0 policy).
//
// Complexity: O(length).
func RandomKey(rng *rand.Rand, alphabet []rune, length int) string {
	if len(alphabet) == 0 || length < 1 {
		return ""
	}
	if rng == nil {
		rng = NewRand(0)
	}

	var (
		key = make([]rune, length)
		k   int
	)
	for k = 0; k < length; k++ {
		key[k] = alphabet[rng.Intn(len(alphabet))]
	}

	return string(key)
}
