// SPDX-License-Identifier: MIT

package partition

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/trifid/cube"
	"github.com/katalvlaran/trifid/keyspace"
	"github.com/katalvlaran/trifid/report"
	"github.com/katalvlaran/trifid/search"
)

// DefaultTopK is the leaderboard capacity when WithTopK is not given.
const DefaultTopK = 10

// Summary aggregates a finished coordinated run.
type Summary struct {
	RunID      string
	Seed       int64 // shared random-mode seed; zero in exhaustive mode
	Ranges     []Range
	Workers    []search.State
	KeysTested uint64
	KeysFailed uint64
	Leaders    []report.Candidate
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger handed to every worker (default zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("partition: WithLogger(nil)")
	}

	return func(c *Coordinator) { c.log = l }
}

// WithTopK sets the leaderboard capacity.
func WithTopK(k int) Option {
	if k < 1 {
		panic("partition: WithTopK: k must be >= 1")
	}

	return func(c *Coordinator) { c.topK = k }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(c *Coordinator) { c.runID = id }
}

// WithSearchOptions appends options to every worker (metrics, model, clock).
func WithSearchOptions(opts ...search.Option) Option {
	return func(c *Coordinator) { c.searchOpts = append(c.searchOpts, opts...) }
}

// Coordinator runs several Searchers over disjoint ranges of one key space.
type Coordinator struct {
	base       search.Config
	workers    int
	sink       report.Sink
	log        *zap.Logger
	topK       int
	runID      string
	searchOpts []search.Option

	mu        sync.Mutex
	searchers []*search.Searcher
	stopped   bool
}

// New returns a Coordinator. base.StartIndex and base.KeysToTest describe the
// global range; KeysToTest == 0 means the whole key space from StartIndex on.
// A nil sink discards events (the leaderboard still fills).
func New(base search.Config, workers int, sink report.Sink, opts ...Option) *Coordinator {
	if sink == nil {
		sink = report.Discard
	}
	var c = &Coordinator{
		base:    base,
		workers: workers,
		sink:    sink,
		log:     zap.NewNop(),
		topK:    DefaultTopK,
	}
	for _, fn := range opts {
		fn(c)
	}
	if c.runID == "" {
		c.runID = uuid.NewString()
	}

	return c
}

// RunID returns the id stamped on every event.
func (c *Coordinator) RunID() string { return c.runID }

// Run is New(...).Run(ctx).
func Run(ctx context.Context, base search.Config, workers int, sink report.Sink, opts ...Option) (Summary, error) {
	return New(base, workers, sink, opts...).Run(ctx)
}

// plan resolves the global range and splits it.
func (c *Coordinator) plan() ([]Range, error) {
	var total = c.base.KeysToTest
	if total == 0 {
		alphabet, err := cube.ParseAlphabet(c.base.Alphabet)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", search.ErrConfiguration, err)
		}
		size, err := keyspace.Size(alphabet.Len(), c.base.KeyLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", search.ErrConfiguration, err)
		}
		if c.base.StartIndex >= size {
			return nil, fmt.Errorf("%w: start index %d beyond key space %d",
				search.ErrConfiguration, c.base.StartIndex, size)
		}
		total = size - c.base.StartIndex
	}

	return Split(c.base.StartIndex, total, c.workers)
}

// Run starts every worker and waits for all of them.
//
// Errors: ErrNoWorkers, search.ErrConfiguration (planning or worker config),
// search.ErrInternal, search.ErrStarted on reuse.
func (c *Coordinator) Run(ctx context.Context) (Summary, error) {
	var sum = Summary{RunID: c.runID}

	ranges, err := c.plan()
	if err != nil {
		return sum, err
	}
	sum.Ranges = ranges

	var base = c.base
	if base.Mode == search.Random {
		if base.Seed == 0 {
			base.Seed = keyspace.FreshSeed()
		}
		sum.Seed = base.Seed
	}

	var (
		board   = NewLeaderboard(c.topK)
		sink    = report.Multi(board, c.sink)
		g, gctx = errgroup.WithContext(ctx)
	)
	sum.Workers = make([]search.State, len(ranges))

	c.mu.Lock()
	if c.searchers != nil {
		c.mu.Unlock()
		return sum, search.ErrStarted
	}
	c.searchers = make([]*search.Searcher, len(ranges))
	for i, r := range ranges {
		cfg := base
		cfg.StartIndex = r.Start
		cfg.KeysToTest = r.Count
		cfg.WorkerID = r.Worker

		opts := append([]search.Option{
			search.WithLogger(c.log),
			search.WithRunID(c.runID),
		}, c.searchOpts...)
		c.searchers[i] = search.New(cfg, sink, opts...)
		if c.stopped {
			c.searchers[i].Stop()
		}
	}
	c.mu.Unlock()

	c.log.Info("coordinated run started",
		zap.String("run_id", c.runID),
		zap.Int("workers", len(ranges)),
		zap.Int64("seed", sum.Seed),
		zap.Uint64("start", ranges[0].Start),
		zap.Uint64("end", ranges[len(ranges)-1].End()))

	for i := range ranges {
		i := i
		g.Go(func() error {
			st, err := c.searchers[i].Run(gctx)
			sum.Workers[i] = st
			return err
		})
	}
	err = g.Wait()

	for _, st := range sum.Workers {
		sum.KeysTested += st.KeysTested
		sum.KeysFailed += st.KeysFailed
	}
	sum.Leaders = board.Top()
	c.log.Info("coordinated run finished",
		zap.String("run_id", c.runID),
		zap.Uint64("tested", sum.KeysTested),
		zap.Uint64("failed", sum.KeysFailed),
		zap.Error(err))

	return sum, err
}

func (c *Coordinator) each(fn func(*search.Searcher)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.searchers {
		fn(s)
	}
}

// Pause forwards pause to every worker.
func (c *Coordinator) Pause() { c.each(func(s *search.Searcher) { s.Pause() }) }

// Resume forwards resume to every worker.
func (c *Coordinator) Resume() { c.each(func(s *search.Searcher) { s.Resume() }) }

// Stop stops every worker, including ones not started yet.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	c.each(func(s *search.Searcher) { s.Stop() })
}
