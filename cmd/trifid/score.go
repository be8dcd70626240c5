// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/trifid/report"
	"github.com/katalvlaran/trifid/scoring"
)

func newScoreCmd(a *app) *cobra.Command {
	var model, known string

	cmd := &cobra.Command{
		Use:   "score TEXT...",
		Short: "Score text against the English n-gram model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []scoring.Option
			if model != "" {
				m, err := scoring.LoadModelFile(model)
				if err != nil {
					return err
				}
				opts = append(opts, scoring.WithModel(m))
			}

			var (
				s    = scoring.NewScorer(opts...)
				text = strings.Join(args, " ")
				out  = cmd.OutOrStdout()
				res  = s.Score(text)
			)
			a.log.Debug("scored",
				zap.Int("length", res.Diagnostics.Length),
				zap.Float64("total", res.Total),
				zap.Bool("custom_model", model != ""))
			if err := report.RenderDiagnostics(out, res); err != nil {
				return err
			}
			if known != "" {
				_, err := fmt.Fprintf(out, "contains %q: %t\n", known, s.Accepts(text, known))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "custom n-gram model (YAML)")
	cmd.Flags().StringVar(&known, "known", "", "check for a known plaintext fragment")

	return cmd
}
