package search_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/trifid/cipher"
	"github.com/katalvlaran/trifid/report"
	"github.com/katalvlaran/trifid/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FindsKey(t *testing.T) {
	rec := &recorder{}
	st, err := search.New(baseConfig(t), rec, search.WithRunID("run-1")).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, search.Completed, st.Status)
	assert.EqualValues(t, twoSymbolKeys, st.KeysTested)
	assert.EqualValues(t, twoSymbolKeys, st.CurrentIndex)
	assert.Zero(t, st.KeysFailed)
	assert.Equal(t, secretKey, st.BestKey)
	assert.Positive(t, st.KeysPerSecond)

	cands := rec.candidates()
	require.NotEmpty(t, cands)
	assert.EqualValues(t, len(cands), st.Forwarded)
	assert.EqualValues(t, 0, cands[0].Index, "first valid candidate is always forwarded")

	var found bool
	for i, c := range cands {
		if i > 0 {
			assert.Greater(t, c.Index, cands[i-1].Index, "indices increase within a worker")
		}
		if c.Index == secretIndex {
			found = true
			assert.Equal(t, secretKey, c.Key)
			assert.Equal(t, plaintext, c.Text)
			assert.Equal(t, st.BestScore, c.Score)
		}
	}
	assert.True(t, found)

	last := rec.last()
	assert.Equal(t, report.EventComplete, last.Type)
	assert.EqualValues(t, twoSymbolKeys, last.KeysTested)
	assert.Equal(t, "run-1", last.RunID)
	assert.Equal(t, 1, rec.count(report.EventComplete))
	assert.Zero(t, rec.count(report.EventError))
}

func TestRun_ProgressCarriesKey(t *testing.T) {
	rec := &recorder{}
	_, err := search.New(baseConfig(t), rec).Run(context.Background())
	require.NoError(t, err)

	var progress []report.Event
	for _, ev := range rec.all() {
		switch ev.Type {
		case report.EventProgress:
			progress = append(progress, ev)
		default:
			assert.Empty(t, ev.Key, "%s events carry no key", ev.Type)
		}
	}
	require.NotEmpty(t, progress)
	for _, ev := range progress {
		assert.Len(t, ev.Key, 2)
	}
	// 728 = 26 + 26·27, the last two-symbol key.
	assert.Equal(t, "??", progress[len(progress)-1].Key)
}

func TestRun_ForwardingThreshold(t *testing.T) {
	cfg := baseConfig(t)
	cfg.ForwardRatio = 1 // only candidates at least as good as the best so far
	rec := &recorder{}
	_, err := search.New(cfg, rec).Run(context.Background())
	require.NoError(t, err)

	var best float64
	for i, c := range rec.candidates() {
		if i > 0 {
			assert.GreaterOrEqual(t, c.Score, best)
		}
		if i == 0 || c.Score > best {
			best = c.Score
		}
	}
}

func TestRun_KnownPlaintextGate(t *testing.T) {
	cfg := baseConfig(t)
	cfg.KnownPlaintext = "best of"
	rec := &recorder{}
	st, err := search.New(cfg, rec).Run(context.Background())
	require.NoError(t, err)

	cands := rec.candidates()
	require.Len(t, cands, 1)
	assert.EqualValues(t, secretIndex, cands[0].Index)
	assert.Contains(t, cands[0].Text, "BESTOF")
	assert.Equal(t, secretKey, st.BestKey)
}

func TestRun_GateRejectsAll(t *testing.T) {
	cfg := baseConfig(t)
	cfg.KnownPlaintext = "ZZZZZZZZ"
	rec := &recorder{}
	st, err := search.New(cfg, rec).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rec.candidates())
	assert.Zero(t, st.Forwarded)
	assert.Empty(t, st.BestKey, "best is tracked over valid candidates only")
	assert.Equal(t, search.Completed, st.Status)
}

func TestRun_PerKeyFaultIsolation(t *testing.T) {
	rec := &recorder{}
	s := search.New(baseConfig(t), rec, search.WithFaults(
		map[uint64]bool{5: true, secretIndex: true},
		map[uint64]bool{7: true},
	))
	st, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, search.Completed, st.Status)
	assert.EqualValues(t, twoSymbolKeys, st.KeysTested, "failed keys still count as tested")
	assert.EqualValues(t, 3, st.KeysFailed)
	assert.NotEqual(t, secretKey, st.BestKey)
	for _, c := range rec.candidates() {
		assert.NotContains(t, []uint64{5, 7, secretIndex}, c.Index)
	}
	assert.EqualValues(t, 3, rec.last().KeysFailed)
}

func TestRun_ConfigurationFailure(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	cfg.WorkerID = 3
	rec := &recorder{}
	s := search.New(cfg, rec)

	st, err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrConfiguration)
	assert.Equal(t, search.Failed, st.Status)
	assert.Equal(t, search.Failed, s.Status())
	assert.Zero(t, st.KeysTested)

	evs := rec.all()
	require.Len(t, evs, 1)
	assert.Equal(t, report.EventError, evs[0].Type)
	assert.Equal(t, 3, evs[0].WorkerID)
	assert.NotEmpty(t, evs[0].Message)
}

func TestRun_SinkFailure(t *testing.T) {
	boom := errors.New("boom")
	var errorEvents int
	sink := report.Func(func(_ context.Context, ev report.Event) error {
		switch ev.Type {
		case report.EventResults:
			return boom
		case report.EventError:
			errorEvents++
		}
		return nil
	})

	st, err := search.New(baseConfig(t), sink).Run(context.Background())
	assert.ErrorIs(t, err, search.ErrInternal)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, search.Failed, st.Status)
	assert.Equal(t, 1, errorEvents)
}

func TestRun_Twice(t *testing.T) {
	s := search.New(baseConfig(t), nil)
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	st, err := s.Run(context.Background())
	assert.ErrorIs(t, err, search.ErrStarted)
	assert.Equal(t, search.Completed, st.Status)
}

func TestRun_Batching(t *testing.T) {
	cfg := baseConfig(t)
	cfg.BatchSize = 2
	cfg.FlushInterval = time.Hour
	rec := &recorder{}
	st, err := search.New(cfg, rec).Run(context.Background())
	require.NoError(t, err)

	evs := rec.all()
	var results int
	for i, ev := range evs {
		if ev.Type != report.EventResults {
			continue
		}
		results++
		assert.LessOrEqual(t, len(ev.Candidates), 2)
		require.Less(t, i+1, len(evs))
		assert.Equal(t, report.EventProgress, evs[i+1].Type, "results are followed by progress")
	}
	assert.EqualValues(t, (st.Forwarded+1)/2, results)
}

func TestRun_FlushInterval(t *testing.T) {
	var (
		clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		tick  = func() time.Time {
			clock = clock.Add(time.Millisecond)
			return clock
		}
	)
	cfg := baseConfig(t)
	cfg.FlushInterval = 100 * time.Millisecond
	rec := &recorder{}
	_, err := search.New(cfg, rec, search.WithClock(tick)).Run(context.Background())
	require.NoError(t, err)

	assert.Greater(t, rec.count(report.EventProgress), 3)
}

func TestRun_RandomModeDeterministic(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Mode = search.Random
	cfg.KeysToTest = 200
	cfg.Seed = 7
	cfg.WorkerID = 1

	runOnce := func() []report.Candidate {
		rec := &recorder{}
		st, err := search.New(cfg, rec).Run(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 200, st.KeysTested)
		return rec.candidates()
	}

	first, second := runOnce(), runOnce()
	require.NotEmpty(t, first)
	assert.Empty(t, cmp.Diff(first, second))
	for _, c := range first {
		assert.Len(t, c.Key, 2)
	}
}

func TestRun_RandomModeFreshSeed(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Mode = search.Random
	cfg.KeysToTest = 200
	cfg.ForwardRatio = 1

	runOnce := func() (search.State, []string) {
		rec := &recorder{}
		st, err := search.New(cfg, rec).Run(context.Background())
		require.NoError(t, err)
		var keys []string
		for _, c := range rec.candidates() {
			keys = append(keys, c.Key)
		}
		return st, keys
	}

	st1, keys1 := runOnce()
	st2, keys2 := runOnce()
	assert.NotZero(t, st1.Seed)
	assert.NotEqual(t, st1.Seed, st2.Seed, "an unset seed is drawn per run")
	assert.NotEqual(t, keys1, keys2)

	cfg.Seed = st1.Seed
	replay, keys3 := runOnce()
	assert.Equal(t, st1.Seed, replay.Seed)
	assert.Equal(t, keys1, keys3, "the reported seed replays the run")

	cfg.Mode = search.Exhaustive
	cfg.Seed = 0
	st, _ := runOnce()
	assert.Zero(t, st.Seed)
}

func TestRun_PerPeriodFractionation(t *testing.T) {
	cfg := baseConfig(t)
	cfg.KnownPlaintext = "bestof"
	rec := &recorder{}
	st, err := search.New(cfg, rec).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, secretKey, st.BestKey)

	// Same ciphertext read with per-group fractionation no longer yields the key.
	cfg.Fractionation = cipher.PerPeriod
	rec = &recorder{}
	st, err = search.New(cfg, rec).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.candidates())
	assert.Empty(t, st.BestKey)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", search.Idle.String())
	assert.Equal(t, "paused", search.Paused.String())
	assert.Equal(t, "failed", search.Failed.String())
	assert.Equal(t, "unknown", search.Status(42).String())
	assert.False(t, search.Paused.Terminal())
	assert.True(t, search.Stopped.Terminal())
}
