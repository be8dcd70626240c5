// SPDX-License-Identifier: MIT

package keyspace

import "math/rand"

// Source yields the key to test at a given position of a worker's range.
type Source interface {
	Key(index uint64) string
}

// Sequential enumerates keys with SequentialKey; the index fully determines the key.
type Sequential struct {
	Alphabet []rune
	Length   int
}

// Key implements Source.
func (s Sequential) Key(index uint64) string {
	return SequentialKey(index, s.Alphabet, s.Length)
}

// Random samples keys uniformly and ignores the index. It owns its RNG and is
// therefore bound to a single goroutine.
type Random struct {
	Alphabet []rune
	Length   int
	Rand     *rand.Rand
}

// Key implements Source.
func (s *Random) Key(uint64) string {
	if s.Rand == nil {
		s.Rand = NewRand(0)
	}

	return RandomKey(s.Rand, s.Alphabet, s.Length)
}
