// SPDX-License-Identifier: MIT

package report

import (
	"time"

	"github.com/katalvlaran/trifid/scoring"
)

// EventType names what an Event reports.
type EventType string

const (
	// EventProgress is periodic throughput telemetry.
	EventProgress EventType = "progress"
	// EventResults carries a batch of forwarded candidates.
	EventResults EventType = "results"
	// EventComplete marks an exhausted key range.
	EventComplete EventType = "complete"
	// EventStopped marks a run ended by Stop or cancellation.
	EventStopped EventType = "stopped"
	// EventError marks a failed run; Message holds the cause.
	EventError EventType = "error"
)

// Terminal reports whether no further events follow t from the same worker.
func (t EventType) Terminal() bool {
	return t == EventComplete || t == EventStopped || t == EventError
}

// Candidate is one forwarded decryption.
type Candidate struct {
	Index       uint64              `json:"index"`
	Key         string              `json:"key"`
	Text        string              `json:"text"`
	Score       float64             `json:"score"`
	Diagnostics scoring.Diagnostics `json:"diagnostics"`
}

// Event is the unit of the reporting protocol.
type Event struct {
	Type          EventType   `json:"type"`
	RunID         string      `json:"runId,omitempty"`
	WorkerID      int         `json:"workerId"`
	KeysTested    uint64      `json:"keysTested"`
	KeysFailed    uint64      `json:"keysFailed,omitempty"`
	KeysPerSecond float64     `json:"keysPerSecond"`
	Key           string      `json:"key,omitempty"` // last key tested; progress events only
	Candidates    []Candidate `json:"candidates,omitempty"`
	Message       string      `json:"message,omitempty"`
	Time          time.Time   `json:"time"`
}
