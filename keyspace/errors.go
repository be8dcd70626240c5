// SPDX-License-Identifier: MIT

package keyspace

import "errors"

var (
	// ErrEmptyAlphabet is returned when the alphabet has no symbols.
	ErrEmptyAlphabet = errors.New("keyspace: empty alphabet")

	// ErrBadLength is returned when the key length is < 1.
	ErrBadLength = errors.New("keyspace: key length must be >= 1")

	// ErrOverflow is returned when m^L does not fit into uint64.
	ErrOverflow = errors.New("keyspace: key space exceeds uint64")

	// ErrForeignSymbol is returned by Index for a key symbol outside the alphabet.
	ErrForeignSymbol = errors.New("keyspace: symbol not in alphabet")
)
