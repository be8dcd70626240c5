// SPDX-License-Identifier: MIT

package scoring

import (
	"math"
	"strings"
	"unicode"
)

// scoreScale turns frequency-weighted log ratios into readable magnitudes.
const scoreScale = 100

// OrderScore is the contribution of one n-gram order.
type OrderScore struct {
	Order    int     `json:"order"`
	Score    float64 `json:"score"`
	Grams    int     `json:"grams"`    // overlapping windows
	Distinct int     `json:"distinct"` // distinct grams observed
	Hits     int     `json:"hits"`     // distinct grams known to the model
}

// Diagnostics explains a score.
type Diagnostics struct {
	Length int                  `json:"length"` // normalized length
	Orders [MaxOrder]OrderScore `json:"orders"`
}

// Result is the outcome of Scorer.Score.
type Result struct {
	Total       float64     `json:"total"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Degenerate reports whether the text was too short to score.
func (r Result) Degenerate() bool { return r.Total == MinScore }

// Scorer scores texts against a Model. Immutable; safe for concurrent use.
type Scorer struct {
	model     *Model
	weights   [MaxOrder]float64
	letters   map[rune]struct{}
	minLength int
}

// NewScorer returns a Scorer over DefaultModel with DefaultWeights,
// DefaultLetters and DefaultMinLength unless overridden.
func NewScorer(opts ...Option) *Scorer {
	var s = &Scorer{
		weights:   DefaultWeights.array(),
		letters:   letterSet(DefaultLetters),
		minLength: DefaultMinLength,
	}
	for _, fn := range opts {
		fn(s)
	}
	if s.model == nil {
		s.model = DefaultModel()
	}

	return s
}

func letterSet(letters string) map[rune]struct{} {
	var set = make(map[rune]struct{}, len(letters))
	for _, r := range strings.ToUpper(letters) {
		set[r] = struct{}{}
	}

	return set
}

// Normalize uppercases text and keeps only configured letters.
//
// Complexity: O(len(text)).
func (s *Scorer) Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		r = unicode.ToUpper(r)
		if _, ok := s.letters[r]; ok {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Score normalizes text and combines the per-order log-likelihood scores.
//
// Complexity: O(MaxOrder · len(text)) time, O(len(text)) space.
func (s *Scorer) Score(text string) Result {
	var (
		norm = []rune(s.Normalize(text))
		res  = Result{Diagnostics: Diagnostics{Length: len(norm)}}
	)
	for n := 1; n <= MaxOrder; n++ {
		res.Diagnostics.Orders[n-1].Order = n
	}
	if len(norm) < s.minLength {
		res.Total = MinScore
		return res
	}

	var (
		weighted, weightSum float64
		n                   int
	)
	for n = 1; n <= MaxOrder; n++ {
		res.Diagnostics.Orders[n-1] = s.scoreOrder(norm, n)
		weighted += s.weights[n-1] * res.Diagnostics.Orders[n-1].Score
		weightSum += s.weights[n-1]
	}
	res.Total = weighted / weightSum

	return res
}

// scoreOrder counts overlapping n-grams and sums their frequency-weighted
// log10((observed+1)/(expected+1)) terms in first-occurrence order, so equal
// texts always produce bit-identical scores.
//
// Unigrams are scored two-sided over the whole model alphabet: any deviation
// from the reference distribution costs, and letters the text lacks count too.
// A repeated common letter therefore cannot outscore real prose.
func (s *Scorer) scoreOrder(text []rune, n int) OrderScore {
	var out = OrderScore{Order: n}
	if len(text) < n {
		return out
	}

	var (
		windows = len(text) - n + 1
		counts  = make(map[string]int, windows)
		seen    = make([]string, 0, windows)
		gram    string
		i       int
	)
	for i = 0; i < windows; i++ {
		gram = string(text[i : i+n])
		if counts[gram] == 0 {
			seen = append(seen, gram)
		}
		counts[gram]++
	}
	out.Grams = windows
	out.Distinct = len(seen)

	var sum float64
	for _, gram = range seen {
		if s.model.Freq(n, gram) > 0 {
			out.Hits++
		}
	}
	if n == 1 {
		for _, gram = range s.model.Grams(1) {
			sum -= math.Abs(s.term(n, gram, counts[gram], windows))
		}
	} else {
		for _, gram = range seen {
			sum += s.term(n, gram, counts[gram], windows)
		}
	}
	out.Score = scoreScale * sum

	return out
}

// term is freq·log10((observed+1)/(expected+1)) with expected = freq·windows.
// Grams unknown to the model contribute nothing.
func (s *Scorer) term(n int, gram string, observed, windows int) float64 {
	var freq = s.model.Freq(n, gram)
	if freq == 0 {
		return 0
	}

	return freq * math.Log10((float64(observed)+1)/(freq*float64(windows)+1))
}

// Accepts is the known-plaintext gate: it reports whether the normalized text
// contains the normalized known fragment. An empty fragment accepts everything.
func (s *Scorer) Accepts(text, known string) bool {
	var k = s.Normalize(known)
	if k == "" {
		return true
	}

	return strings.Contains(s.Normalize(text), k)
}
