// SPDX-License-Identifier: MIT

package cipher

import (
	"errors"
	"fmt"
)

// DefaultPeriod is the grouping size used when callers have no preference.
const DefaultPeriod = 5

var (
	// ErrBadPeriod is returned when period < 1.
	ErrBadPeriod = errors.New("cipher: period must be >= 1")

	// ErrNilCube is returned when no cube is supplied.
	ErrNilCube = errors.New("cipher: nil cube")

	// ErrUnknownFractionation is returned by ParseFractionation for unknown names.
	ErrUnknownFractionation = errors.New("cipher: unknown fractionation (want whole|period)")
)

// Fractionation selects how axis runs are formed.
type Fractionation int

const (
	// WholeMessage concatenates axis digits across the entire message.
	WholeMessage Fractionation = iota

	// PerPeriod concatenates axis digits inside each period-sized group.
	PerPeriod
)

// String returns the configuration name of f.
func (f Fractionation) String() string {
	switch f {
	case WholeMessage:
		return "whole"
	case PerPeriod:
		return "period"
	default:
		return "unknown"
	}
}

// ParseFractionation is the inverse of Fractionation.String.
// The empty string selects WholeMessage.
func ParseFractionation(s string) (Fractionation, error) {
	switch s {
	case "", "whole":
		return WholeMessage, nil
	case "period":
		return PerPeriod, nil
	default:
		return WholeMessage, fmt.Errorf("%w: %q", ErrUnknownFractionation, s)
	}
}

// Option customizes a transform call.
type Option func(*options)

type options struct {
	mode Fractionation
}

// WithFractionation selects the fractionation mode. Panics on unknown values.
func WithFractionation(f Fractionation) Option {
	if f != WholeMessage && f != PerPeriod {
		panic("cipher: WithFractionation: unknown mode")
	}

	return func(o *options) { o.mode = f }
}

func gatherOptions(opts []Option) options {
	var o = options{mode: WholeMessage}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
