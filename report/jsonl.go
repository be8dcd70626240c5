// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONLSink writes each event as one JSON line. Writes are serialized.
type JSONLSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLSink wraps w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{enc: json.NewEncoder(w)}
}

// Send encodes ev followed by a newline.
func (s *JSONLSink) Send(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(ev); err != nil {
		return fmt.Errorf("report: write jsonl: %w", err)
	}

	return nil
}
