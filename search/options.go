// SPDX-License-Identifier: MIT

package search

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/trifid/scoring"
)

// Option customizes a Searcher. Constructors panic on nil values.
type Option func(*Searcher)

// WithLogger sets the logger (default zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("search: WithLogger(nil)")
	}

	return func(s *Searcher) { s.log = l }
}

// WithMetrics records progress into m.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("search: WithMetrics(nil)")
	}

	return func(s *Searcher) { s.metrics = m }
}

// WithModel scores against m instead of the embedded English model.
func WithModel(m *scoring.Model) Option {
	if m == nil {
		panic("search: WithModel(nil)")
	}

	return func(s *Searcher) { s.model = m }
}

// WithRunID stamps every event with id.
func WithRunID(id string) Option {
	return func(s *Searcher) { s.runID = id }
}

// WithClock replaces time.Now for throughput and flush timing.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("search: WithClock(nil)")
	}

	return func(s *Searcher) { s.now = now }
}

// withEvaluator swaps the per-key evaluation; tests use it to inject faults.
func withEvaluator(fn evaluator) Option {
	return func(s *Searcher) { s.evaluate = fn }
}
