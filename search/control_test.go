package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/katalvlaran/trifid/report"
	"github.com/katalvlaran/trifid/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	st  search.State
	err error
}

func runAsync(ctx context.Context, s *search.Searcher) <-chan runResult {
	done := make(chan runResult, 1)
	go func() {
		st, err := s.Run(ctx)
		done <- runResult{st, err}
	}()

	return done
}

func TestPauseResume(t *testing.T) {
	var (
		s       *search.Searcher
		rec     = &recorder{}
		indices []uint64
	)
	cfg := baseConfig(t)
	cfg.FlushInterval = time.Hour
	s = search.New(cfg, rec, search.WithIndexRecorder(func(i uint64) {
		indices = append(indices, i)
		if i == 50 {
			assert.True(t, s.Pause())
		}
	}))
	done := runAsync(context.Background(), s)

	require.Eventually(t, func() bool { return s.Status() == search.Paused }, 2*time.Second, time.Millisecond)
	frozen := rec.last()
	assert.Equal(t, report.EventProgress, frozen.Type, "pause flushes progress")
	assert.EqualValues(t, 51, frozen.KeysTested)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, search.Paused, s.Status())
	assert.Equal(t, frozen, rec.last(), "nothing happens while paused")

	require.True(t, s.Resume())
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, search.Completed, res.st.Status)
	assert.EqualValues(t, twoSymbolKeys, res.st.KeysTested)

	require.Len(t, indices, twoSymbolKeys)
	for i, idx := range indices {
		assert.EqualValues(t, i, idx, "no key skipped or repeated across the pause")
	}
}

func TestPause_AutoResume(t *testing.T) {
	var s *search.Searcher
	cfg := baseConfig(t)
	cfg.MaxPause = 20 * time.Millisecond
	s = search.New(cfg, nil, search.WithIndexRecorder(func(i uint64) {
		if i == 10 {
			s.Pause()
		}
	}))

	start := time.Now()
	st, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.Completed, st.Status)
	assert.EqualValues(t, twoSymbolKeys, st.KeysTested)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestResume_WhileRunningIsIgnored(t *testing.T) {
	var s *search.Searcher
	s = search.New(baseConfig(t), nil, search.WithIndexRecorder(func(i uint64) {
		if i == 3 {
			s.Resume()
		}
	}))
	st, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.Completed, st.Status)
}

func TestStop(t *testing.T) {
	var (
		s   *search.Searcher
		rec = &recorder{}
	)
	s = search.New(baseConfig(t), rec, search.WithIndexRecorder(func(i uint64) {
		if i == 100 {
			s.Stop()
			s.Stop()
		}
	}))
	st, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, search.Stopped, st.Status)
	assert.True(t, st.Stopped())
	assert.EqualValues(t, 101, st.KeysTested, "the in-flight key completes, nothing after it")
	last := rec.last()
	assert.Equal(t, report.EventStopped, last.Type)
	assert.EqualValues(t, 101, last.KeysTested)
	assert.Zero(t, rec.count(report.EventComplete))
}

func TestStop_WhilePaused(t *testing.T) {
	var s *search.Searcher
	s = search.New(baseConfig(t), nil, search.WithIndexRecorder(func(i uint64) {
		if i == 20 {
			s.Pause()
		}
	}))
	done := runAsync(context.Background(), s)
	require.Eventually(t, func() bool { return s.Status() == search.Paused }, 2*time.Second, time.Millisecond)

	s.Stop()
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, search.Stopped, res.st.Status)
	assert.EqualValues(t, 21, res.st.KeysTested)
}

func TestStop_BeforeRun(t *testing.T) {
	rec := &recorder{}
	s := search.New(baseConfig(t), rec)
	s.Stop()

	st, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.Stopped, st.Status)
	assert.Zero(t, st.KeysTested)
	assert.Equal(t, report.EventStopped, rec.last().Type)
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := report.NewChanSink(4096)
	s := search.New(baseConfig(t), sink, search.WithIndexRecorder(func(i uint64) {
		if i == 100 {
			cancel()
		}
	}))
	st, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, search.Stopped, st.Status)
	assert.EqualValues(t, 101, st.KeysTested)

	var last report.Event
	for len(sink.Events()) > 0 {
		last = <-sink.Events()
	}
	assert.Equal(t, report.EventStopped, last.Type, "terminal event survives cancellation")
}
