// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/trifid/cipher"
	"github.com/katalvlaran/trifid/scoring"
	"github.com/katalvlaran/trifid/search"
)

const (
	// EnvPrefix marks environment variables read by Load.
	EnvPrefix = "TRIFID_"

	// DefaultFile is looked up in the working directory when no path is given.
	DefaultFile = "trifid.yaml"
)

// ErrInvalid wraps every validation failure of a loaded File.
var ErrInvalid = errors.New("config: invalid settings")

// File is the flat settings document shared by the YAML file, the
// environment and the flags.
type File struct {
	Ciphertext    string          `koanf:"ciphertext"`
	Alphabet      string          `koanf:"alphabet" validate:"required"`
	KeyLength     int             `koanf:"key_length" validate:"min=1"`
	Period        int             `koanf:"period" validate:"min=1"`
	Mode          string          `koanf:"mode" validate:"oneof=exhaustive random"`
	Fractionation string          `koanf:"fractionation" validate:"oneof=whole period"`
	Known         string          `koanf:"known"`
	Start         uint64          `koanf:"start"`
	Keys          uint64          `koanf:"keys"` // 0 = rest of the key space
	Workers       int             `koanf:"workers" validate:"min=1,max=1024"`
	Seed          int64           `koanf:"seed"`
	Top           int             `koanf:"top" validate:"min=1"`
	BatchSize     int             `koanf:"batch_size" validate:"min=1"`
	FlushInterval time.Duration   `koanf:"flush_interval" validate:"gt=0"`
	YieldEvery    int             `koanf:"yield_every" validate:"min=1"`
	MaxPause      time.Duration   `koanf:"max_pause" validate:"gt=0"`
	ForwardRatio  float64         `koanf:"forward_ratio" validate:"gt=0,lte=1"`
	Weights       scoring.Weights `koanf:"weights"`
	Model         string          `koanf:"model"` // custom n-gram YAML; empty = embedded English
	Output        string          `koanf:"output" validate:"oneof=table jsonl"`
	Listen        string          `koanf:"listen"` // address for /metrics and /events; empty disables
	Verbose       bool            `koanf:"verbose"`
}

// Defaults returns the lowest layer as a flat key map.
func Defaults() map[string]interface{} {
	var d = search.DefaultConfig()

	return map[string]interface{}{
		"alphabet":         d.Alphabet,
		"key_length":       4,
		"period":           d.Period,
		"mode":             string(d.Mode),
		"fractionation":    d.Fractionation.String(),
		"workers":          1,
		"top":              10,
		"batch_size":       d.BatchSize,
		"flush_interval":   d.FlushInterval,
		"yield_every":      d.YieldEvery,
		"max_pause":        d.MaxPause,
		"forward_ratio":    d.ForwardRatio,
		"weights.unigram":  d.Weights.Unigram,
		"weights.bigram":   d.Weights.Bigram,
		"weights.trigram":  d.Weights.Trigram,
		"weights.quadgram": d.Weights.Quadgram,
		"output":           "table",
		"verbose":          false,
	}
}

// envKey maps TRIFID_KEY_LENGTH → key_length and TRIFID_WEIGHTS__BIGRAM → weights.bigram.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))

	return strings.ReplaceAll(s, "__", ".")
}

// flagKey maps --key-length → key_length for explicitly set flags only.
func flagKey(flags *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}

		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}
}

// Load merges defaults, the YAML file at path (or DefaultFile if it exists),
// TRIFID_ environment variables and changed flags, then validates the result.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (File, error) {
	var (
		k   = koanf.New(".")
		out File
	)
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return out, fmt.Errorf("config: load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return out, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return out, fmt.Errorf("config: load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return out, fmt.Errorf("config: load flags: %w", err)
		}
	}

	if err := k.Unmarshal("", &out); err != nil {
		return out, fmt.Errorf("config: decode: %w", err)
	}
	if err := out.Validate(); err != nil {
		return out, err
	}

	return out, nil
}

var validate = validator.New()

// Validate checks field ranges and enumerations.
func (f File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !f.Weights.Valid() {
		return fmt.Errorf("%w: weights must be finite and positive", ErrInvalid)
	}

	return nil
}

// SearchConfig converts f into the global search configuration. Keys == 0 is
// carried as KeysToTest == 0, which partition.Coordinator reads as "the rest
// of the key space".
func (f File) SearchConfig() (search.Config, error) {
	frac, err := cipher.ParseFractionation(f.Fractionation)
	if err != nil {
		return search.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return search.Config{
		Ciphertext:     f.Ciphertext,
		Alphabet:       f.Alphabet,
		KeyLength:      f.KeyLength,
		Period:         f.Period,
		Mode:           search.Mode(f.Mode),
		Fractionation:  frac,
		KnownPlaintext: f.Known,
		StartIndex:     f.Start,
		KeysToTest:     f.Keys,
		Seed:           f.Seed,
		BatchSize:      f.BatchSize,
		FlushInterval:  f.FlushInterval,
		YieldEvery:     f.YieldEvery,
		MaxPause:       f.MaxPause,
		ForwardRatio:   f.ForwardRatio,
		Weights:        f.Weights,
	}, nil
}
