// SPDX-License-Identifier: MIT
// Package cube: sentinel error set.
// Callers branch with errors.Is; context is attached at the outer boundary
// via fmt.Errorf("...: %w", ErrX).

package cube

import "errors"

var (
	// ErrAlphabetSize is returned when an alphabet does not hold exactly Size symbols.
	ErrAlphabetSize = errors.New("cube: alphabet must contain exactly 27 symbols")

	// ErrDuplicateSymbol is returned when an alphabet lists the same symbol twice.
	ErrDuplicateSymbol = errors.New("cube: duplicate alphabet symbol")
)
