// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"errors"
)

// ErrClosed is returned by sinks that no longer accept events.
var ErrClosed = errors.New("report: sink closed")

// Sink receives events. Implementations shared between workers must be safe
// for concurrent use.
type Sink interface {
	Send(ctx context.Context, ev Event) error
}

// Func adapts a function to Sink.
type Func func(ctx context.Context, ev Event) error

// Send calls f.
func (f Func) Send(ctx context.Context, ev Event) error { return f(ctx, ev) }

// Discard drops every event.
var Discard Sink = Func(func(context.Context, Event) error { return nil })

// ChanSink delivers events on a buffered channel. Send blocks while the
// buffer is full, until ctx is done.
type ChanSink struct {
	ch chan Event
}

// NewChanSink returns a ChanSink with the given buffer size (>= 0).
func NewChanSink(buffer int) *ChanSink {
	if buffer < 0 {
		panic("report: NewChanSink: negative buffer")
	}

	return &ChanSink{ch: make(chan Event, buffer)}
}

// Events exposes the receive side.
func (s *ChanSink) Events() <-chan Event { return s.ch }

// Send enqueues ev or returns ctx.Err().
func (s *ChanSink) Send(ctx context.Context, ev Event) error {
	select {
	case s.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type multi []Sink

// Multi fans every event out to all sinks in order. All sinks are attempted;
// their errors are joined.
func Multi(sinks ...Sink) Sink {
	var out = make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

func (m multi) Send(ctx context.Context, ev Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
