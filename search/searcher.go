// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/trifid/report"
	"github.com/katalvlaran/trifid/scoring"
)

const (
	commandBuffer = 16

	// terminalTimeout bounds delivery of the last events after cancellation.
	terminalTimeout = 5 * time.Second
)

type command uint8

const (
	cmdPause command = iota + 1
	cmdResume
)

// Searcher is one worker. Create with New, drive with Run.
type Searcher struct {
	cfg      Config
	sink     report.Sink
	log      *zap.Logger
	metrics  *Metrics
	model    *scoring.Model
	runID    string
	now      func() time.Time
	evaluate evaluator

	cmds     chan command
	stop     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	status   atomic.Int32
}

// New returns an Idle Searcher. A nil sink discards events.
func New(cfg Config, sink report.Sink, opts ...Option) *Searcher {
	if sink == nil {
		sink = report.Discard
	}
	var s = &Searcher{
		cfg:      cfg,
		sink:     sink,
		log:      zap.NewNop(),
		now:      time.Now,
		evaluate: evaluateKey,
		cmds:     make(chan command, commandBuffer),
		stop:     make(chan struct{}),
	}
	for _, fn := range opts {
		fn(s)
	}

	return s
}

// Pause asks the loop to suspend after the current key. It reports false when
// the command queue is full.
func (s *Searcher) Pause() bool { return s.send(cmdPause) }

// Resume asks a paused loop to continue. It reports false when the command
// queue is full.
func (s *Searcher) Resume() bool { return s.send(cmdResume) }

// Stop ends the run after the current key. Safe to call repeatedly, and
// before Run, in which case Run stops immediately.
func (s *Searcher) Stop() { s.stopOnce.Do(func() { close(s.stop) }) }

// Status returns the current lifecycle position.
func (s *Searcher) Status() Status { return Status(s.status.Load()) }

func (s *Searcher) send(c command) bool {
	select {
	case s.cmds <- c:
		return true
	default:
		return false
	}
}

func (s *Searcher) setStatus(st Status) { s.status.Store(int32(st)) }

// Run validates the configuration and searches the range on the calling
// goroutine until it is exhausted, stopped, or ctx is done (treated as stop).
//
// Contract:
//   - Completed and Stopped return a nil error.
//   - Failed returns an error wrapping ErrConfiguration or ErrInternal.
//   - Exactly one terminal event is sent on every path.
func (s *Searcher) Run(ctx context.Context) (State, error) {
	if !s.started.CompareAndSwap(false, true) {
		return State{Status: s.Status()}, ErrStarted
	}

	var (
		cfg = s.cfg.withDefaults()
		r   = &run{Searcher: s, st: newState(cfg.StartIndex)}
		err error
	)
	r.log = s.log.With(zap.Int("worker", cfg.WorkerID))
	if r.p, err = cfg.prepare(s.model); err != nil {
		r.p = &prepared{cfg: cfg}
		return r.fail(ctx, err)
	}

	return r.loop(ctx)
}

// run is the state of one Run call, owned by the loop goroutine.
type run struct {
	*Searcher
	p   *prepared
	log *zap.Logger
	st  State

	batch     []report.Candidate
	lastKey   string
	hasBest   bool
	startedAt time.Time
	lastFlush time.Time
	pausedFor time.Duration

	// deltas since the last flush, for metrics
	dTested, dFailed, dForwarded uint64
}

func (r *run) loop(ctx context.Context) (State, error) {
	var (
		cfg  = r.p.cfg
		stop bool
		err  error
	)
	r.startedAt = r.now()
	r.lastFlush = r.startedAt
	r.batch = make([]report.Candidate, 0, cfg.BatchSize)
	r.transition(Running)
	if cfg.Mode == Random {
		r.st.Seed = cfg.Seed
	}
	r.log.Info("search started",
		zap.String("mode", string(cfg.Mode)),
		zap.Uint64("start", cfg.StartIndex),
		zap.Uint64("keys", cfg.KeysToTest),
		zap.Int64("seed", r.st.Seed))

	for r.st.KeysTested < cfg.KeysToTest {
		if stop, err = r.poll(ctx); err != nil {
			return r.flushFailed(ctx, err)
		} else if stop {
			return r.finish(ctx, Stopped)
		}

		r.step()

		if r.st.KeysTested%uint64(cfg.YieldEvery) == 0 {
			runtime.Gosched()
		}
		if len(r.batch) >= cfg.BatchSize || r.now().Sub(r.lastFlush) >= cfg.FlushInterval {
			if err = r.flush(ctx); err != nil {
				return r.flushFailed(ctx, err)
			}
		}
	}

	return r.finish(ctx, Completed)
}

func (r *run) transition(st Status) {
	r.st.Status = st
	r.setStatus(st)
}

// poll drains pending commands. It reports stop on Stop or ctx cancellation.
func (r *run) poll(ctx context.Context) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			return true, nil
		case <-r.stop:
			return true, nil
		case c := <-r.cmds:
			if c == cmdPause {
				return r.pause(ctx)
			}
		default:
			return false, nil
		}
	}
}

// pause flushes, then blocks until resume, stop, cancellation or MaxPause.
func (r *run) pause(ctx context.Context) (bool, error) {
	if err := r.flush(ctx); err != nil {
		return false, err
	}
	r.transition(Paused)
	r.log.Debug("search paused", zap.Uint64("index", r.st.CurrentIndex))

	var (
		since = r.now()
		timer = time.NewTimer(r.p.cfg.MaxPause)
	)
	defer timer.Stop()
	defer func() { r.pausedFor += r.now().Sub(since) }()

	for {
		select {
		case <-ctx.Done():
			return true, nil
		case <-r.stop:
			return true, nil
		case <-timer.C:
			r.log.Warn("pause ceiling reached, resuming", zap.Duration("max_pause", r.p.cfg.MaxPause))
			r.transition(Running)
			return false, nil
		case c := <-r.cmds:
			if c == cmdResume {
				r.log.Debug("search resumed", zap.Uint64("index", r.st.CurrentIndex))
				r.transition(Running)
				return false, nil
			}
		}
	}
}

// step evaluates the current index and advances. Faults are contained here.
func (r *run) step() {
	var (
		index    = r.st.CurrentIndex
		out, err = r.safeEvaluate(index)
	)
	r.st.KeysTested++
	r.st.CurrentIndex++
	r.dTested++
	if out.key != "" {
		r.lastKey = out.key
	}
	if err != nil {
		r.st.KeysFailed++
		r.dFailed++
		r.log.Debug("key skipped", zap.Uint64("index", index), zap.Error(err))
		return
	}
	if !out.valid {
		return
	}

	var score = out.result.Total
	if r.hasBest && score < r.st.BestScore-(1-r.p.cfg.ForwardRatio)*math.Abs(r.st.BestScore) {
		return
	}
	if !r.hasBest || score > r.st.BestScore {
		r.st.BestScore = score
		r.st.BestKey = out.key
		r.hasBest = true
	}
	r.batch = append(r.batch, report.Candidate{
		Index:       index,
		Key:         out.key,
		Text:        out.text,
		Score:       score,
		Diagnostics: out.result.Diagnostics,
	})
	r.st.Forwarded++
	r.dForwarded++
}

func (r *run) safeEvaluate(index uint64) (out outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("search: key %d: panic: %v", index, rec)
		}
	}()

	return r.evaluate(r.p, index)
}

// flush sends pending candidates (if any) and a progress event.
func (r *run) flush(ctx context.Context) error {
	var now = r.now()
	r.st.KeysPerSecond = r.rate(now)

	if len(r.batch) > 0 {
		ev := r.event(report.EventResults, now)
		ev.Candidates = r.batch
		if err := r.sink.Send(ctx, ev); err != nil {
			return fmt.Errorf("%w: send results: %w", ErrInternal, err)
		}
		r.batch = make([]report.Candidate, 0, r.p.cfg.BatchSize)
	}
	progress := r.event(report.EventProgress, now)
	progress.Key = r.lastKey
	if err := r.sink.Send(ctx, progress); err != nil {
		return fmt.Errorf("%w: send progress: %w", ErrInternal, err)
	}

	r.metrics.flushed(r.p.cfg.WorkerID, r.dTested, r.dFailed, r.dForwarded, r.st)
	r.dTested, r.dFailed, r.dForwarded = 0, 0, 0
	r.lastFlush = now

	return nil
}

// flushFailed turns a flush error into Stopped when ctx was cancelled
// meanwhile, and into Failed otherwise.
func (r *run) flushFailed(ctx context.Context, err error) (State, error) {
	if ctx.Err() != nil {
		return r.finish(ctx, Stopped)
	}

	return r.fail(ctx, err)
}

func (r *run) rate(now time.Time) float64 {
	var elapsed = now.Sub(r.startedAt) - r.pausedFor
	if elapsed <= 0 {
		return 0
	}

	return float64(r.st.KeysTested) / elapsed.Seconds()
}

func (r *run) event(t report.EventType, now time.Time) report.Event {
	return report.Event{
		Type:          t,
		RunID:         r.runID,
		WorkerID:      r.p.cfg.WorkerID,
		KeysTested:    r.st.KeysTested,
		KeysFailed:    r.st.KeysFailed,
		KeysPerSecond: r.st.KeysPerSecond,
		Time:          now,
	}
}

func terminalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), terminalTimeout)
}

// finish flushes what is pending and sends the terminal event.
func (r *run) finish(ctx context.Context, status Status) (State, error) {
	tctx, cancel := terminalContext(ctx)
	defer cancel()

	if err := r.flush(tctx); err != nil {
		return r.fail(ctx, err)
	}
	var typ = report.EventComplete
	if status == Stopped {
		typ = report.EventStopped
	}
	if err := r.sink.Send(tctx, r.event(typ, r.now())); err != nil {
		return r.fail(ctx, fmt.Errorf("%w: send %s: %w", ErrInternal, typ, err))
	}

	r.transition(status)
	r.metrics.finished(status)
	r.log.Info("search finished",
		zap.Stringer("status", status),
		zap.Uint64("tested", r.st.KeysTested),
		zap.Uint64("failed", r.st.KeysFailed),
		zap.Uint64("forwarded", r.st.Forwarded),
		zap.Float64("keys_per_second", r.st.KeysPerSecond))

	return r.st, nil
}

// fail marks the run Failed and makes a best-effort attempt to report err.
func (r *run) fail(ctx context.Context, err error) (State, error) {
	tctx, cancel := terminalContext(ctx)
	defer cancel()

	r.transition(Failed)
	r.metrics.finished(Failed)
	r.log.Error("search failed", zap.Error(err))

	ev := r.event(report.EventError, r.now())
	ev.Message = err.Error()
	if sendErr := r.sink.Send(tctx, ev); sendErr != nil {
		r.log.Warn("error event not delivered", zap.Error(sendErr))
	}

	return r.st, err
}
