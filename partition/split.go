// SPDX-License-Identifier: MIT

package partition

import "errors"

// ErrNoWorkers is returned for a worker count below one.
var ErrNoWorkers = errors.New("partition: workers must be >= 1")

// Range is one worker's slice of the key space.
type Range struct {
	Worker int
	Start  uint64
	Count  uint64
}

// End returns the exclusive upper bound of r.
func (r Range) End() uint64 { return r.Start + r.Count }

// Split divides [start, start+total) into at most workers ranges. The first
// total%workers ranges get one extra key; empty ranges are omitted, so fewer
// than workers ranges come back when total < workers.
//
// Errors: ErrNoWorkers.
//
// Complexity: O(workers).
func Split(start, total uint64, workers int) ([]Range, error) {
	if workers < 1 {
		return nil, ErrNoWorkers
	}

	var (
		n     = uint64(workers)
		base  = total / n
		extra = total % n
		out   = make([]Range, 0, workers)
		next  = start
		count uint64
		i     uint64
	)
	for i = 0; i < n; i++ {
		count = base
		if i < extra {
			count++
		}
		if count == 0 {
			break
		}
		out = append(out, Range{Worker: int(i), Start: next, Count: count})
		next += count
	}

	return out, nil
}
