// SPDX-License-Identifier: MIT

// Package cube builds keyed 3×3×3 Trifid cubes.
//
// 🚀 What is a Trifid cube?
//
//	Each of the 27 alphabet symbols is assigned a coordinate (layer, row, col)
//	in {0,1,2}³. The assignment is driven by a key: the key's unique symbols
//	come first, followed by the rest of the alphabet in its original order.
//	The resulting "keyed alphabet" is laid out linearly:
//
//	  i  →  (i/9, (i%9)/3, i%3)
//
//	so index 0 is (0,0,0), index 13 is (1,1,1) and index 26 is (2,2,2).
//
// ✨ Key features:
//   - Alphabet: strict 27-symbol validation (size, duplicates) + text normalization
//   - Build:    pure, deterministic keyed-cube construction
//   - Cube:     O(1) forward (At) and inverse (Locate) lookups
//
// ⚙️ Usage:
//
//	alpha, _ := cube.ParseAlphabet(cube.DefaultAlphabet)
//	c, err := cube.Build(alpha, "KEY")
//	if err != nil {
//	  // ErrAlphabetSize
//	}
//	coord, ok := c.Locate('H')
//	r := c.At(coord) // 'H'
//
// Only the 3×3×3 geometry is supported; alphabets of any other size are
// rejected with ErrAlphabetSize.
package cube
