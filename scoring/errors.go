// SPDX-License-Identifier: MIT

package scoring

import "errors"

var (
	// ErrEmptyModel is returned when a model file defines no n-grams.
	ErrEmptyModel = errors.New("scoring: model has no n-grams")

	// ErrBadOrder is returned for an order key outside 1..MaxOrder.
	ErrBadOrder = errors.New("scoring: n-gram order out of range")

	// ErrBadGram is returned when a gram's length differs from its order.
	ErrBadGram = errors.New("scoring: n-gram length does not match its order")

	// ErrBadFrequency is returned for negative, NaN or infinite frequencies.
	ErrBadFrequency = errors.New("scoring: invalid n-gram frequency")
)
