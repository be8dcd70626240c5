package search_test

import (
	"context"
	"sync"
	"testing"

	"github.com/katalvlaran/trifid/cipher"
	"github.com/katalvlaran/trifid/cube"
	"github.com/katalvlaran/trifid/report"
	"github.com/katalvlaran/trifid/search"
	"github.com/stretchr/testify/require"
)

const (
	plaintext = "ITWASTHEBESTOFTIMESITWASTHEWORSTOFTIMESITWASTHEAGEOFWISDOMITWASTHEAGEOFFOOLISHNESS"
	secretKey = "KE"
	// secretIndex is the sequential index of "KE": K=10, E=4 → 10 + 4·27.
	secretIndex = 118
	// twoSymbolKeys is 27².
	twoSymbolKeys = 729
)

func encryptSecret(t testing.TB) string {
	t.Helper()
	c, err := cube.Build(cube.MustParseAlphabet(cube.DefaultAlphabet), secretKey)
	require.NoError(t, err)
	ct, err := cipher.Encrypt(plaintext, c, cipher.DefaultPeriod)
	require.NoError(t, err)

	return ct
}

func baseConfig(t testing.TB) search.Config {
	cfg := search.DefaultConfig()
	cfg.Ciphertext = encryptSecret(t)
	cfg.KeyLength = 2
	cfg.KeysToTest = twoSymbolKeys

	return cfg
}

// recorder is a concurrency-safe Sink that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []report.Event
}

func (r *recorder) Send(_ context.Context, ev report.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)

	return nil
}

func (r *recorder) all() []report.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]report.Event(nil), r.events...)
}

func (r *recorder) last() report.Event {
	evs := r.all()
	if len(evs) == 0 {
		return report.Event{}
	}

	return evs[len(evs)-1]
}

func (r *recorder) candidates() []report.Candidate {
	var out []report.Candidate
	for _, ev := range r.all() {
		out = append(out, ev.Candidates...)
	}

	return out
}

func (r *recorder) count(t report.EventType) int {
	var n int
	for _, ev := range r.all() {
		if ev.Type == t {
			n++
		}
	}

	return n
}
