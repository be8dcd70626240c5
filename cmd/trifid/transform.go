// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/trifid/cipher"
	"github.com/katalvlaran/trifid/cube"
)

// cubeFlags are shared by commands that build a cube from a key.
type cubeFlags struct {
	alphabet string
	key      string
}

func (f *cubeFlags) register(cmd *cobra.Command, keyRequired bool) {
	cmd.Flags().StringVar(&f.alphabet, "alphabet", cube.DefaultAlphabet, "27-symbol alphabet")
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "cipher key")
	if keyRequired {
		_ = cmd.MarkFlagRequired("key")
	}
}

func (f *cubeFlags) build() (cube.Alphabet, *cube.Cube, error) {
	alphabet, err := cube.ParseAlphabet(f.alphabet)
	if err != nil {
		return cube.Alphabet{}, nil, err
	}
	c, err := cube.Build(alphabet, f.key)

	return alphabet, c, err
}

func newTransformCmd(a *app, encrypt bool) *cobra.Command {
	var (
		cf     cubeFlags
		period int
		frac   string
		name   = "decrypt"
		short  = "Decrypt text with a known key"
	)
	if encrypt {
		name, short = "encrypt", "Encrypt text with a key"
	}

	cmd := &cobra.Command{
		Use:   name + " --key KEY TEXT...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alphabet, c, err := cf.build()
			if err != nil {
				return err
			}
			mode, err := cipher.ParseFractionation(frac)
			if err != nil {
				return err
			}

			var (
				text = alphabet.Normalize(strings.Join(args, " "))
				out  string
			)
			if encrypt {
				out, err = cipher.Encrypt(text, c, period, cipher.WithFractionation(mode))
			} else {
				out, err = cipher.Decrypt(text, c, period, cipher.WithFractionation(mode))
			}
			if err != nil {
				return err
			}
			a.log.Debug(name,
				zap.Int("key_length", len([]rune(cf.key))),
				zap.Int("period", period),
				zap.Stringer("fractionation", mode),
				zap.Int("length", len([]rune(text))))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cf.register(cmd, true)
	cmd.Flags().IntVarP(&period, "period", "p", cipher.DefaultPeriod, "fractionation period")
	cmd.Flags().StringVar(&frac, "fractionation", cipher.WholeMessage.String(), "axis grouping: whole|period")

	return cmd
}

func newCubeCmd(a *app) *cobra.Command {
	var cf cubeFlags

	cmd := &cobra.Command{
		Use:   "cube --key KEY",
		Short: "Print the keyed cube",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := cf.build()
			if err != nil {
				return err
			}
			a.log.Debug("cube built", zap.String("keyed_alphabet", c.KeyedAlphabet()))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "keyed alphabet: %s\n%s", c.KeyedAlphabet(), c)
			return err
		},
	}
	cf.register(cmd, false)

	return cmd
}
