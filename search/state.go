// SPDX-License-Identifier: MIT

package search

import "github.com/katalvlaran/trifid/scoring"

// Status is a Searcher's lifecycle position.
type Status int32

const (
	Idle Status = iota
	Running
	Paused
	Completed
	Stopped
	Failed
)

var statusNames = [...]string{"idle", "running", "paused", "completed", "stopped", "failed"}

// String returns the lowercase status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}

	return statusNames[s]
}

// Terminal reports whether the run has ended.
func (s Status) Terminal() bool { return s >= Completed }

// State is the loop's bookkeeping. Run returns its final value.
type State struct {
	Status        Status
	CurrentIndex  uint64 // next index to evaluate
	KeysTested    uint64
	KeysFailed    uint64
	Forwarded     uint64
	BestScore     float64
	BestKey       string
	KeysPerSecond float64
	Seed          int64 // resolved random-mode seed; zero in exhaustive mode
}

func newState(start uint64) State {
	return State{CurrentIndex: start, BestScore: scoring.MinScore}
}

// Paused reports whether the loop is suspended.
func (s State) Paused() bool { return s.Status == Paused }

// Stopped reports whether the run ended on request.
func (s State) Stopped() bool { return s.Status == Stopped }
