// SPDX-License-Identifier: MIT

// Package cipher implements the Trifid fractionation transform over a keyed cube.
//
// 🚀 Decryption (canonical, whole-message):
//
//  1. Resolve every ciphertext symbol to its (layer,row,col) coordinate.
//     A symbol missing from the cube resolves to (0,0,0), a lossy but
//     defined fallback.
//  2. Concatenate ALL layer digits, then ALL row digits, then ALL column
//     digits of the whole message into one stream of length 3n.
//  3. Re-chunk the stream into consecutive triples and map each triple back
//     through the cube. A trailing partial triple is dropped, so the output
//     length is floor(3n/3).
//
// Encryption is the exact inverse: plaintext coordinates are written
// triple-by-triple into one stream, which is then read back as three axis
// runs of length n.
//
// ⚙️ Fractionation modes:
//   - WholeMessage (default) - axis runs span the entire message; the period
//     is validated but does not change the result.
//   - PerPeriod - the classic textbook variant: the same transform is applied
//     independently to each period-sized group (short final group as-is).
//
// The two modes produce different ciphertexts and are never interchangeable.
//
// Usage:
//
//	c, _ := cube.Build(alpha, "KEY")
//	ct, _ := cipher.Encrypt("HELLOWORLD", c, 5)
//	pt, _ := cipher.Decrypt(ct, c, 5) // "HELLOWORLD"
//
// Complexity: O(n) time and O(n) space for both directions.
package cipher
