// SPDX-License-Identifier: MIT

package cube

import (
	"fmt"
	"strings"
	"unicode"
)

// Size is the number of cells in a 3×3×3 cube and therefore the only
// supported alphabet length.
const Size = 27

// DefaultAlphabet is the 26 Latin letters followed by '?' as filler.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ?"

// Alphabet is an ordered set of exactly Size distinct symbols.
// The zero value is not usable; obtain one via ParseAlphabet.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// ParseAlphabet uppercases s and validates it as a cube alphabet.
//
// Errors:
//   - ErrAlphabetSize    - len(symbols) != 27.
//   - ErrDuplicateSymbol - the same symbol appears twice (after uppercasing).
//
// Complexity: O(n).
func ParseAlphabet(s string) (Alphabet, error) {
	var symbols = []rune(strings.ToUpper(s))
	if len(symbols) != Size {
		return Alphabet{}, fmt.Errorf("%w: got %d", ErrAlphabetSize, len(symbols))
	}

	var (
		index = make(map[rune]int, Size)
		i     int
		r     rune
	)
	for i, r = range symbols {
		if _, dup := index[r]; dup {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateSymbol, r)
		}
		index[r] = i
	}

	return Alphabet{symbols: symbols, index: index}, nil
}

// MustParseAlphabet is ParseAlphabet for package-level constants; it panics on error.
func MustParseAlphabet(s string) Alphabet {
	a, err := ParseAlphabet(s)
	if err != nil {
		panic(err)
	}

	return a
}

// Len returns the number of symbols (27 for any valid alphabet).
func (a Alphabet) Len() int { return len(a.symbols) }

// Symbols returns a copy of the ordered symbols.
func (a Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)

	return out
}

// Contains reports whether r is an alphabet symbol.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]

	return ok
}

// IndexOf returns the position of r in the alphabet, or -1.
func (a Alphabet) IndexOf(r rune) int {
	if i, ok := a.index[r]; ok {
		return i
	}

	return -1
}

// String returns the alphabet as a string.
func (a Alphabet) String() string { return string(a.symbols) }

// Normalize uppercases text and drops every rune that is not an alphabet symbol.
//
// Complexity: O(len(text)).
func (a Alphabet) Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	var r rune
	for _, r = range text {
		r = unicode.ToUpper(r)
		if a.Contains(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}
