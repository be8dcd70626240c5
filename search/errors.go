// SPDX-License-Identifier: MIT

package search

import "errors"

var (
	// ErrConfiguration wraps every pre-run validation failure.
	ErrConfiguration = errors.New("search: invalid configuration")

	// ErrInternal wraps fatal failures outside per-key evaluation, such as a
	// sink that rejects events.
	ErrInternal = errors.New("search: internal failure")

	// ErrStarted is returned when Run is called more than once.
	ErrStarted = errors.New("search: searcher already started")
)
