// SPDX-License-Identifier: MIT

package partition

import (
	"context"
	"sort"
	"sync"

	"github.com/katalvlaran/trifid/report"
)

// Leaderboard keeps the k best candidates seen across workers, ordered by
// score descending and index ascending on ties. It is a report.Sink and safe
// for concurrent use.
type Leaderboard struct {
	mu   sync.Mutex
	k    int
	top  []report.Candidate
	seen map[string]struct{}
}

// NewLeaderboard returns an empty board of capacity k (>= 1).
func NewLeaderboard(k int) *Leaderboard {
	if k < 1 {
		panic("partition: NewLeaderboard: k must be >= 1")
	}

	return &Leaderboard{k: k, seen: make(map[string]struct{})}
}

func better(a, b report.Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}

	return a.Index < b.Index
}

// Offer inserts c if it ranks among the k best. A key already on the board
// is ignored.
//
// Complexity: O(k).
func (l *Leaderboard) Offer(c report.Candidate) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.seen[c.Key]; dup {
		return
	}
	if len(l.top) == l.k && !better(c, l.top[len(l.top)-1]) {
		return
	}

	var i = sort.Search(len(l.top), func(i int) bool { return better(c, l.top[i]) })
	l.top = append(l.top, report.Candidate{})
	copy(l.top[i+1:], l.top[i:])
	l.top[i] = c
	l.seen[c.Key] = struct{}{}

	if len(l.top) > l.k {
		delete(l.seen, l.top[l.k].Key)
		l.top = l.top[:l.k]
	}
}

// Send offers every candidate carried by ev.
func (l *Leaderboard) Send(_ context.Context, ev report.Event) error {
	for _, c := range ev.Candidates {
		l.Offer(c)
	}

	return nil
}

// Top returns a copy of the board, best first.
func (l *Leaderboard) Top() []report.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]report.Candidate(nil), l.top...)
}
