// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries state shared by all commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	var a = &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "trifid",
		Short: "Trifid cipher toolkit and brute-force key search",
		Long: `trifid works with the Trifid cipher over a keyed 3x3x3 cube of 27 symbols.

It encrypts and decrypts with a known key, scores text against English n-gram
statistics, and searches key spaces exhaustively or at random across several
workers, ranking candidate plaintexts.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			// Logs go to the command's stderr so they never mix with results.
			a.log = zap.New(zapcore.NewCore(
				zapcore.NewJSONEncoder(config.EncoderConfig),
				zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())),
				config.Level,
			), zap.AddCaller())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./trifid.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newCrackCmd(a),
		newTransformCmd(a, true),
		newTransformCmd(a, false),
		newScoreCmd(a),
		newKeyspaceCmd(a),
		newCubeCmd(a),
	)

	return root
}
