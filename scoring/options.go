// SPDX-License-Identifier: MIT

package scoring

import "math"

// Defaults (single source of truth).
const (
	// DefaultLetters is the symbol set kept by normalization.
	DefaultLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// DefaultMinLength is the shortest normalized text that is scored.
	DefaultMinLength = 4
)

// MinScore is the sentinel returned for degenerate (too short) texts.
// It is finite so it survives JSON encoding.
const MinScore = -math.MaxFloat64

// Weights holds the per-order combination weights. All must be positive.
type Weights struct {
	Unigram  float64 `json:"unigram" yaml:"unigram" koanf:"unigram"`
	Bigram   float64 `json:"bigram" yaml:"bigram" koanf:"bigram"`
	Trigram  float64 `json:"trigram" yaml:"trigram" koanf:"trigram"`
	Quadgram float64 `json:"quadgram" yaml:"quadgram" koanf:"quadgram"`
}

// DefaultWeights favours longer grams, which carry more language structure.
var DefaultWeights = Weights{Unigram: 0.5, Bigram: 1.0, Trigram: 1.5, Quadgram: 2.0}

// Valid reports whether every weight is finite and > 0.
func (w Weights) Valid() bool {
	for _, v := range w.array() {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}

	return true
}

func (w Weights) array() [MaxOrder]float64 {
	return [MaxOrder]float64{w.Unigram, w.Bigram, w.Trigram, w.Quadgram}
}

// Option customizes a Scorer. Constructors panic on meaningless values.
type Option func(*Scorer)

// WithModel replaces the embedded English model.
func WithModel(m *Model) Option {
	if m == nil {
		panic("scoring: WithModel(nil)")
	}

	return func(s *Scorer) { s.model = m }
}

// WithWeights sets the per-order weights; every weight must be finite and > 0.
func WithWeights(w Weights) Option {
	if !w.Valid() {
		panic("scoring: WithWeights: weights must be finite and positive")
	}

	return func(s *Scorer) { s.weights = w.array() }
}

// WithLetters sets the symbols kept by normalization (uppercased).
func WithLetters(letters string) Option {
	if letters == "" {
		panic("scoring: WithLetters(\"\")")
	}

	return func(s *Scorer) { s.letters = letterSet(letters) }
}

// WithMinLength sets the shortest normalized length that is scored.
func WithMinLength(n int) Option {
	if n < 1 {
		panic("scoring: WithMinLength: n must be >= 1")
	}

	return func(s *Scorer) { s.minLength = n }
}
