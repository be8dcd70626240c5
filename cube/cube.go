// SPDX-License-Identifier: MIT

package cube

import (
	"fmt"
	"strings"
	"unicode"
)

// Coord addresses one cell of the cube. Each component lies in {0,1,2}.
type Coord struct {
	Layer, Row, Col uint8
}

// CoordOf maps a linear index i∈[0,27) to (i/9, (i%9)/3, i%3).
func CoordOf(i int) Coord {
	return Coord{Layer: uint8(i / 9), Row: uint8((i % 9) / 3), Col: uint8(i % 3)}
}

// Linear is the inverse of CoordOf.
func (c Coord) Linear() int {
	return int(c.Layer)*9 + int(c.Row)*3 + int(c.Col)
}

// Valid reports whether every component is within {0,1,2}.
func (c Coord) Valid() bool {
	return c.Layer < 3 && c.Row < 3 && c.Col < 3
}

// Cube is a keyed bijection between the 27 cells and the alphabet symbols.
// A Cube is immutable after Build and safe for concurrent reads.
type Cube struct {
	cells  [Size]rune
	coords map[rune]Coord
}

// Build derives the keyed alphabet from key and lays it out in the cube.
//
// Keyed alphabet:
//  1. Unique key symbols (uppercased, restricted to alphabet membership),
//     in order of first occurrence.
//  2. The remaining alphabet symbols in their original order.
//
// Build is pure: identical (alphabet, key) always yield identical cubes.
//
// Errors:
//   - ErrAlphabetSize - alphabet is not a valid 27-symbol alphabet
//     (e.g. the zero Alphabet).
//
// Complexity: O(len(key) + 27).
func Build(alphabet Alphabet, key string) (*Cube, error) {
	if alphabet.Len() != Size {
		return nil, fmt.Errorf("%w: got %d", ErrAlphabetSize, alphabet.Len())
	}

	var (
		c    = &Cube{coords: make(map[rune]Coord, Size)}
		used [Size]bool
		pos  int
		r    rune
		i    int
	)

	// Stage 1: key symbols first.
	for _, r = range key {
		r = unicode.ToUpper(r)
		i = alphabet.IndexOf(r)
		if i < 0 || used[i] {
			continue
		}
		used[i] = true
		c.cells[pos] = r
		pos++
	}

	// Stage 2: the rest of the alphabet.
	for i, r = range alphabet.symbols {
		if used[i] {
			continue
		}
		c.cells[pos] = r
		pos++
	}

	for i, r = range c.cells {
		c.coords[r] = CoordOf(i)
	}

	return c, nil
}

// At returns the symbol stored at coordinate co.
// Components are reduced modulo 3, so At never panics.
func (c *Cube) At(co Coord) rune {
	return c.cells[int(co.Layer%3)*9+int(co.Row%3)*3+int(co.Col%3)]
}

// Locate returns the coordinate of r and whether r belongs to the cube.
func (c *Cube) Locate(r rune) (Coord, bool) {
	co, ok := c.coords[r]

	return co, ok
}

// Cells returns the 27 symbols in linear order.
func (c *Cube) Cells() [Size]rune { return c.cells }

// KeyedAlphabet returns the cells as a string in linear order.
func (c *Cube) KeyedAlphabet() string { return string(c.cells[:]) }

// String renders the cube layer by layer, one row per line.
func (c *Cube) String() string {
	var (
		b          strings.Builder
		l, row, co int
	)
	for l = 0; l < 3; l++ {
		fmt.Fprintf(&b, "layer %d\n", l)
		for row = 0; row < 3; row++ {
			for co = 0; co < 3; co++ {
				if co > 0 {
					b.WriteByte(' ')
				}
				b.WriteRune(c.cells[l*9+row*3+co])
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}
