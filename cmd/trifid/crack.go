// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/trifid/config"
	"github.com/katalvlaran/trifid/partition"
	"github.com/katalvlaran/trifid/report"
	"github.com/katalvlaran/trifid/scoring"
	"github.com/katalvlaran/trifid/search"
)

const shutdownTimeout = 5 * time.Second

func newCrackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crack [ciphertext]",
		Short: "Search a key space for the key of a ciphertext",
		Long: `crack enumerates keys of a fixed length, decrypts the ciphertext with each
and ranks the plaintexts by English n-gram score. The key space is split
evenly across --workers. Settings come from defaults, the config file,
TRIFID_* environment variables and flags, in increasing precedence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.crack(cmd, args)
		},
	}

	f := cmd.Flags()
	f.String("ciphertext", "", "ciphertext (or pass it as the argument)")
	f.String("alphabet", "", "27-symbol alphabet (default A-Z plus ?)")
	f.Int("key-length", 4, "key length in symbols")
	f.Int("period", 5, "fractionation period")
	f.String("mode", "exhaustive", "key selection: exhaustive|random")
	f.String("fractionation", "whole", "axis grouping: whole|period")
	f.String("known", "", "known plaintext fragment; candidates must contain it")
	f.Uint64("start", 0, "first key index")
	f.Uint64("keys", 0, "number of keys to test (0 = rest of the key space)")
	f.Int("workers", 1, "parallel workers")
	f.Int64("seed", 0, "random-mode seed (0 = draw a fresh one)")
	f.Int("top", 10, "leaderboard size")
	f.String("model", "", "custom n-gram model (YAML)")
	f.StringP("output", "o", "table", "output format: table|jsonl")
	f.String("listen", "", "serve /metrics and /events on this address")
	f.Float64("forward-ratio", search.DefaultForwardRatio, "forward candidates within this ratio of the best")
	f.Int("batch-size", search.DefaultBatchSize, "candidates per results event")
	f.Duration("flush-interval", search.DefaultFlushInterval, "maximum time between events")
	f.Duration("max-pause", search.DefaultMaxPause, "pause ceiling before auto-resume")

	return cmd
}

func (a *app) crack(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if len(args) == 1 {
		settings.Ciphertext = args[0]
	}
	cfg, err := settings.SearchConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		reg  = prometheus.NewRegistry()
		opts = []partition.Option{
			partition.WithLogger(a.log),
			partition.WithTopK(settings.Top),
			partition.WithSearchOptions(search.WithMetrics(search.NewMetrics(reg))),
		}
		out   = cmd.OutOrStdout()
		sinks []report.Sink
	)
	reg.MustRegister(collectors.NewGoCollector())

	if settings.Model != "" {
		model, err := scoring.LoadModelFile(settings.Model)
		if err != nil {
			return err
		}
		opts = append(opts, partition.WithSearchOptions(search.WithModel(model)))
	}

	if settings.Output == "jsonl" {
		sinks = append(sinks, report.NewJSONLSink(out))
	} else {
		sinks = append(sinks, progressLog(a.log))
	}

	var srv *http.Server
	if settings.Listen != "" {
		hub := report.NewHub(report.WithHubLogger(a.log))
		defer hub.Close()
		sinks = append(sinks, hub)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.Handle("/events", hub)
		srv = &http.Server{
			Addr:              settings.Listen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	coord := partition.New(cfg, settings.Workers, report.Multi(sinks...), opts...)
	sum, err := a.serveWhileRunning(ctx, srv, coord)

	if settings.Output != "jsonl" {
		if renderErr := report.RenderTable(out, sum.Leaders); renderErr != nil {
			return renderErr
		}
		fmt.Fprintf(out, "run %s: %d keys tested, %d failed\n", sum.RunID, sum.KeysTested, sum.KeysFailed)
		if sum.Seed != 0 {
			fmt.Fprintf(out, "seed %d (pass --seed %d to replay)\n", sum.Seed, sum.Seed)
		}
	}

	return err
}

// serveWhileRunning runs coord and, when srv is set, serves HTTP until the
// search ends.
func (a *app) serveWhileRunning(ctx context.Context, srv *http.Server, coord *partition.Coordinator) (partition.Summary, error) {
	if srv == nil {
		return coord.Run(ctx)
	}

	var (
		sum                  partition.Summary
		g, gctx              = errgroup.WithContext(ctx)
		serveCtx, stopServer = context.WithCancel(gctx)
	)
	defer stopServer()

	g.Go(func() error {
		defer stopServer()
		var err error
		sum, err = coord.Run(gctx)
		return err
	})
	g.Go(func() error {
		a.log.Info("serving metrics and events", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-serveCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	return sum, err
}

// progressLog reports worker events through the logger.
func progressLog(log *zap.Logger) report.Sink {
	return report.Func(func(_ context.Context, ev report.Event) error {
		fields := []zap.Field{
			zap.Int("worker", ev.WorkerID),
			zap.Uint64("tested", ev.KeysTested),
			zap.Float64("keys_per_second", ev.KeysPerSecond),
		}
		switch ev.Type {
		case report.EventProgress:
			log.Debug("progress", append(fields, zap.String("key", ev.Key))...)
		case report.EventResults:
			log.Debug("candidates", append(fields, zap.Int("count", len(ev.Candidates)))...)
		case report.EventError:
			log.Error("worker failed", append(fields, zap.String("message", ev.Message))...)
		default:
			log.Info(string(ev.Type), fields...)
		}
		return nil
	})
}
