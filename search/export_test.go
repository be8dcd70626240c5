package search

import "errors"

// WithIndexRecorder calls rec with every index before evaluating it.
func WithIndexRecorder(rec func(index uint64)) Option {
	return withEvaluator(func(p *prepared, index uint64) (outcome, error) {
		rec(index)
		return evaluateKey(p, index)
	})
}

// WithFaults panics while evaluating the listed indices and returns an error
// for the indices in failing.
func WithFaults(panics, failing map[uint64]bool) Option {
	return withEvaluator(func(p *prepared, index uint64) (outcome, error) {
		if panics[index] {
			panic("injected fault")
		}
		if failing[index] {
			return outcome{}, errors.New("injected error")
		}
		return evaluateKey(p, index)
	})
}
