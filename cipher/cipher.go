// SPDX-License-Identifier: MIT

package cipher

import "github.com/katalvlaran/trifid/cube"

// Decrypt runs the Trifid decryption of ciphertext through c.
//
// Contract:
//   - c must be non-nil and period ≥ 1.
//   - ciphertext is used as-is; callers normalize it beforehand. Symbols
//     outside the cube resolve to (0,0,0).
//
// Errors: ErrNilCube, ErrBadPeriod.
//
// Complexity: O(n) time, O(n) space.
func Decrypt(ciphertext string, c *cube.Cube, period int, opts ...Option) (string, error) {
	if err := validate(c, period); err != nil {
		return "", err
	}

	return string(apply([]rune(ciphertext), c, period, gatherOptions(opts).mode, decryptBlock)), nil
}

// Encrypt is the inverse of Decrypt for the same cube, period and mode.
//
// Errors: ErrNilCube, ErrBadPeriod.
//
// Complexity: O(n) time, O(n) space.
func Encrypt(plaintext string, c *cube.Cube, period int, opts ...Option) (string, error) {
	if err := validate(c, period); err != nil {
		return "", err
	}

	return string(apply([]rune(plaintext), c, period, gatherOptions(opts).mode, encryptBlock)), nil
}

func validate(c *cube.Cube, period int) error {
	if c == nil {
		return ErrNilCube
	}
	if period < 1 {
		return ErrBadPeriod
	}

	return nil
}

// apply runs block over the whole message or over each period-sized group.
func apply(in []rune, c *cube.Cube, period int, mode Fractionation, block func([]rune, *cube.Cube, []rune) []rune) []rune {
	var out = make([]rune, 0, len(in))
	if mode == WholeMessage {
		return block(in, c, out)
	}

	var start, end int
	for start = 0; start < len(in); start += period {
		end = start + period
		if end > len(in) {
			end = len(in) // short final group
		}
		out = block(in[start:end], c, out)
	}

	return out
}

// locate resolves r, falling back to (0,0,0) for symbols outside the cube.
func locate(c *cube.Cube, r rune) cube.Coord {
	co, ok := c.Locate(r)
	if !ok {
		return cube.Coord{}
	}

	return co
}

// decryptBlock writes layers | rows | cols into one stream and reads it back
// in triples. A trailing partial triple is dropped.
func decryptBlock(in []rune, c *cube.Cube, out []rune) []rune {
	var (
		n      = len(in)
		stream = make([]uint8, 3*n)
		co     cube.Coord
		i      int
	)
	for i = 0; i < n; i++ {
		co = locate(c, in[i])
		stream[i] = co.Layer
		stream[n+i] = co.Row
		stream[2*n+i] = co.Col
	}

	for i = 0; i+2 < len(stream); i += 3 {
		out = append(out, c.At(cube.Coord{Layer: stream[i], Row: stream[i+1], Col: stream[i+2]}))
	}

	return out
}

// encryptBlock writes coordinates triple by triple and reads the stream back
// as three axis runs of length n.
func encryptBlock(in []rune, c *cube.Cube, out []rune) []rune {
	var (
		n      = len(in)
		stream = make([]uint8, 3*n)
		co     cube.Coord
		i      int
	)
	for i = 0; i < n; i++ {
		co = locate(c, in[i])
		stream[3*i] = co.Layer
		stream[3*i+1] = co.Row
		stream[3*i+2] = co.Col
	}

	for i = 0; i < n; i++ {
		out = append(out, c.At(cube.Coord{Layer: stream[i], Row: stream[n+i], Col: stream[2*n+i]}))
	}

	return out
}
