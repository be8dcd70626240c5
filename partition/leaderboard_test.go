package partition_test

import (
	"context"
	"sync"
	"testing"

	"github.com/katalvlaran/trifid/partition"
	"github.com/katalvlaran/trifid/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(index uint64, key string, score float64) report.Candidate {
	return report.Candidate{Index: index, Key: key, Score: score}
}

func TestLeaderboard_Order(t *testing.T) {
	b := partition.NewLeaderboard(3)
	b.Offer(cand(5, "E", 1.0))
	b.Offer(cand(1, "A", 3.0))
	b.Offer(cand(9, "I", 2.0))
	b.Offer(cand(2, "B", 2.0)) // ties with I, lower index wins
	b.Offer(cand(7, "G", 0.5)) // below the board
	b.Offer(cand(1, "A", 3.0)) // duplicate key

	var keys []string
	for _, c := range b.Top() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"A", "B", "I"}, keys)
}

func TestLeaderboard_EvictedKeyMayReturn(t *testing.T) {
	b := partition.NewLeaderboard(1)
	b.Offer(cand(1, "A", 1))
	b.Offer(cand(2, "B", 2))
	b.Offer(cand(1, "A", 3))
	require.Len(t, b.Top(), 1)
	assert.Equal(t, "A", b.Top()[0].Key)
}

func TestLeaderboard_SinkConcurrent(t *testing.T) {
	b := partition.NewLeaderboard(5)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				idx := uint64(w*100 + i)
				ev := report.Event{Candidates: []report.Candidate{cand(idx, string(rune('A'+w))+string(rune('A'+i%26))+string(rune('A'+i/26)), float64(idx))}}
				assert.NoError(t, b.Send(context.Background(), ev))
			}
		}(w)
	}
	wg.Wait()

	top := b.Top()
	require.Len(t, top, 5)
	for i, want := range []float64{399, 398, 397, 396, 395} {
		assert.Equal(t, want, top[i].Score)
	}
	assert.Panics(t, func() { partition.NewLeaderboard(0) })
}
