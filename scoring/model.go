// SPDX-License-Identifier: MIT

package scoring

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// MaxOrder is the longest n-gram the model and the scorer handle.
const MaxOrder = 4

//go:embed english.yaml
var englishYAML []byte

var (
	defaultOnce  sync.Once
	defaultModel *Model
)

// Model is a read-only table of reference n-gram frequencies for orders 1..MaxOrder.
type Model struct {
	grams [MaxOrder + 1]map[string]float64
	order [MaxOrder + 1][]string // sorted keys of grams, for reproducible sums
}

// DefaultModel returns the embedded English model, parsing it on first use.
// It panics only if the embedded table is corrupt, which is a build defect.
func DefaultModel() *Model {
	defaultOnce.Do(func() {
		m, err := LoadModel(bytes.NewReader(englishYAML))
		if err != nil {
			panic(fmt.Sprintf("scoring: embedded model: %v", err))
		}
		defaultModel = m
	})

	return defaultModel
}

// LoadModel decodes a YAML document of the form
//
//	1: {A: 0.08167, B: 0.01492, ...}
//	2: {TH: 0.0356, ...}
//	3: {...}
//	4: {...}
//
// Grams are uppercased. Orders may be omitted but at least one gram is required.
//
// Errors: ErrEmptyModel, ErrBadOrder, ErrBadGram, ErrBadFrequency, or a YAML
// decoding error.
func LoadModel(r io.Reader) (*Model, error) {
	var raw map[int]map[string]float64
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyModel
		}
		return nil, fmt.Errorf("scoring: decode model: %w", err)
	}

	var (
		m     = &Model{}
		total int
	)
	for order, table := range raw {
		if order < 1 || order > MaxOrder {
			return nil, fmt.Errorf("%w: %d", ErrBadOrder, order)
		}
		m.grams[order] = make(map[string]float64, len(table))
		for gram, freq := range table {
			gram = strings.ToUpper(gram)
			if len([]rune(gram)) != order {
				return nil, fmt.Errorf("%w: %q at order %d", ErrBadGram, gram, order)
			}
			if math.IsNaN(freq) || math.IsInf(freq, 0) || freq < 0 {
				return nil, fmt.Errorf("%w: %q=%v", ErrBadFrequency, gram, freq)
			}
			m.grams[order][gram] = freq
			total++
		}
	}
	if total == 0 {
		return nil, ErrEmptyModel
	}
	for n := range m.grams {
		m.order[n] = slices.Sorted(maps.Keys(m.grams[n]))
	}

	return m, nil
}

// LoadModelFile is LoadModel over the file at path.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scoring: open model: %w", err)
	}
	defer f.Close()

	return LoadModel(f)
}

// Freq returns the reference frequency of gram at order, or 0 when unknown.
func (m *Model) Freq(order int, gram string) float64 {
	if order < 1 || order > MaxOrder {
		return 0
	}

	return m.grams[order][gram]
}

// Len returns the number of grams known at order.
func (m *Model) Len(order int) int {
	if order < 1 || order > MaxOrder {
		return 0
	}

	return len(m.grams[order])
}

// Grams returns the grams known at order in lexical order. The slice is
// shared and must not be modified.
func (m *Model) Grams(order int) []string {
	if order < 1 || order > MaxOrder {
		return nil
	}

	return m.order[order]
}
