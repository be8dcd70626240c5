// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/trifid/cube"
	"github.com/katalvlaran/trifid/keyspace"
)

func newKeyspaceCmd(a *app) *cobra.Command {
	var (
		alphabet string
		length   int
		index    uint64
		key      string
	)

	cmd := &cobra.Command{
		Use:   "keyspace",
		Short: "Inspect the sequential key numbering",
		Long: `keyspace prints the size of the key space for --length, the key at
--index, or the index of --key. Digits are least significant first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alpha, err := cube.ParseAlphabet(alphabet)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			symbols := alpha.Symbols()
			a.log.Debug("keyspace", zap.Int("base", len(symbols)), zap.Int("length", length))

			if key != "" {
				i, err := keyspace.Index(alpha.Normalize(key), symbols)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "index of %s: %d\n", alpha.Normalize(key), i)
				return err
			}

			size, err := keyspace.Size(len(symbols), length)
			switch {
			case errors.Is(err, keyspace.ErrOverflow):
				fmt.Fprintf(out, "size: more than 2^64 keys of length %d\n", length)
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "size: %d keys of length %d\n", size, length)
			}
			if cmd.Flags().Changed("index") {
				fmt.Fprintf(out, "key at %d: %s\n", index, keyspace.SequentialKey(index, symbols, length))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&alphabet, "alphabet", cube.DefaultAlphabet, "27-symbol alphabet")
	cmd.Flags().IntVarP(&length, "length", "l", 4, "key length")
	cmd.Flags().Uint64Var(&index, "index", 0, "print the key at this index")
	cmd.Flags().StringVar(&key, "key", "", "print the index of this key")

	return cmd
}
