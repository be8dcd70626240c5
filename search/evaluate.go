// SPDX-License-Identifier: MIT

package search

import (
	"github.com/katalvlaran/trifid/cipher"
	"github.com/katalvlaran/trifid/cube"
	"github.com/katalvlaran/trifid/scoring"
)

// outcome is the result of evaluating one key.
type outcome struct {
	key    string
	text   string
	result scoring.Result
	valid  bool // passed the known-plaintext gate
}

// evaluator turns an index into an outcome. It may panic; the loop recovers.
type evaluator func(p *prepared, index uint64) (outcome, error)

// evaluateKey is the production evaluator: key → cube → decrypt → score → gate.
func evaluateKey(p *prepared, index uint64) (outcome, error) {
	var out = outcome{key: p.source.Key(index)}

	c, err := cube.Build(p.alphabet, out.key)
	if err != nil {
		return out, err
	}
	if out.text, err = cipher.Decrypt(p.ciphertext, c, p.cfg.Period, p.cipherOpts...); err != nil {
		return out, err
	}
	out.result = p.scorer.Score(out.text)
	out.valid = p.scorer.Accepts(out.text, p.known)

	return out, nil
}
