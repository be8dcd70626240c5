// SPDX-License-Identifier: MIT

package search

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/trifid/cipher"
	"github.com/katalvlaran/trifid/cube"
	"github.com/katalvlaran/trifid/keyspace"
	"github.com/katalvlaran/trifid/scoring"
)

// Mode selects how keys are drawn.
type Mode string

const (
	// Exhaustive enumerates keys by index with keyspace.SequentialKey.
	Exhaustive Mode = "exhaustive"
	// Random samples keys uniformly from a per-worker seeded stream.
	Random Mode = "random"
)

// Tuning defaults.
const (
	DefaultBatchSize     = 1000
	DefaultFlushInterval = time.Second
	DefaultYieldEvery    = 100
	DefaultMaxPause      = 60 * time.Second
	DefaultForwardRatio  = 0.9
)

// Config is the start command of one worker.
//
// Zero tuning knobs (BatchSize, FlushInterval, YieldEvery, MaxPause,
// ForwardRatio, Weights) and an empty Mode take their defaults.
type Config struct {
	Ciphertext     string               `validate:"required"`
	Alphabet       string               `validate:"required"`
	KeyLength      int                  `validate:"min=1"`
	Period         int                  `validate:"min=1"`
	Mode           Mode                 `validate:"oneof=exhaustive random"`
	Fractionation  cipher.Fractionation `validate:"-"`
	KnownPlaintext string
	StartIndex     uint64
	KeysToTest     uint64 `validate:"min=1"`
	WorkerID       int    `validate:"min=0"`
	// Seed drives random mode. Zero draws a fresh seed per run, reported in
	// State.Seed; any other value replays the same key sequence.
	Seed int64

	BatchSize     int             `validate:"min=1"`
	FlushInterval time.Duration   `validate:"gt=0"`
	YieldEvery    int             `validate:"min=1"`
	MaxPause      time.Duration   `validate:"gt=0"`
	ForwardRatio  float64         `validate:"gt=0,lte=1"`
	Weights       scoring.Weights `validate:"-"`
}

// DefaultConfig returns a Config over the default alphabet, period 5,
// exhaustive mode and default tuning. Ciphertext, KeyLength and KeysToTest
// remain to be set.
func DefaultConfig() Config {
	return Config{
		Alphabet:      cube.DefaultAlphabet,
		Period:        cipher.DefaultPeriod,
		Mode:          Exhaustive,
		Fractionation: cipher.WholeMessage,
		BatchSize:     DefaultBatchSize,
		FlushInterval: DefaultFlushInterval,
		YieldEvery:    DefaultYieldEvery,
		MaxPause:      DefaultMaxPause,
		ForwardRatio:  DefaultForwardRatio,
		Weights:       scoring.DefaultWeights,
	}
}

var validate = validator.New()

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = Exhaustive
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	if c.YieldEvery == 0 {
		c.YieldEvery = DefaultYieldEvery
	}
	if c.MaxPause == 0 {
		c.MaxPause = DefaultMaxPause
	}
	if c.ForwardRatio == 0 {
		c.ForwardRatio = DefaultForwardRatio
	}
	if c.Weights == (scoring.Weights{}) {
		c.Weights = scoring.DefaultWeights
	}

	return c
}

// Validate applies defaults and reports the first configuration problem,
// wrapped in ErrConfiguration.
func (c Config) Validate() error {
	_, err := c.withDefaults().prepare(nil)

	return err
}

// prepared holds everything derived from a valid Config.
type prepared struct {
	cfg        Config
	alphabet   cube.Alphabet
	ciphertext string
	known      string
	source     keyspace.Source
	scorer     *scoring.Scorer
	cipherOpts []cipher.Option
}

func (c Config) prepare(model *scoring.Model) (*prepared, error) {
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	alphabet, err := cube.ParseAlphabet(c.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if c.Fractionation != cipher.WholeMessage && c.Fractionation != cipher.PerPeriod {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, cipher.ErrUnknownFractionation)
	}
	if !c.Weights.Valid() {
		return nil, fmt.Errorf("%w: scoring weights must be finite and positive", ErrConfiguration)
	}

	if c.Mode == Random && c.Seed == 0 {
		c.Seed = keyspace.FreshSeed()
	}

	var p = &prepared{
		cfg:        c,
		alphabet:   alphabet,
		ciphertext: alphabet.Normalize(c.Ciphertext),
		cipherOpts: []cipher.Option{cipher.WithFractionation(c.Fractionation)},
	}
	if p.ciphertext == "" {
		return nil, fmt.Errorf("%w: ciphertext has no alphabet symbols", ErrConfiguration)
	}

	var scorerOpts = []scoring.Option{scoring.WithWeights(c.Weights)}
	if model != nil {
		scorerOpts = append(scorerOpts, scoring.WithModel(model))
	}
	p.scorer = scoring.NewScorer(scorerOpts...)
	p.known = p.scorer.Normalize(c.KnownPlaintext)

	switch c.Mode {
	case Random:
		p.source = &keyspace.Random{
			Alphabet: alphabet.Symbols(),
			Length:   c.KeyLength,
			Rand:     keyspace.DeriveRand(c.Seed, uint64(c.WorkerID)),
		}
	default:
		p.source = keyspace.Sequential{Alphabet: alphabet.Symbols(), Length: c.KeyLength}
	}

	return p, nil
}
