// Command elbow clusters the numeric columns of a CSV file, scores a range of
// group counts with the elbow method and writes charts, snapshots and
// metrics.
//
//	elbow -config elbow.yaml
//
// Every setting can be overridden with KMEANS_* environment variables, e.g.
// KMEANS_SWEEP_MAX_K=15.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/dataset"
	"github.com/hupe1980/kmeans/internal/config"
	"github.com/hupe1980/kmeans/internal/report"
	kmprom "github.com/hupe1980/kmeans/metrics/prometheus"
	"github.com/hupe1980/kmeans/scale"
	"github.com/hupe1980/kmeans/snapshot"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML, TOML or JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closer, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.ErrorContext(ctx, "elbow failed", "error", err)
		stop()
		_ = closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *kmeans.Logger, out io.Writer) error {
	frame, err := dataset.ReadCSVFile(cfg.Input.Path, cfg.Input.Columns...)
	if err != nil {
		return err
	}
	data, err := frame.Dataset()
	if err != nil {
		return err
	}
	logger.WithCount(len(data)).WithDimension(len(data[0])).InfoContext(ctx, "dataset loaded",
		"path", cfg.Input.Path, "columns", frame.Columns())

	if cfg.Input.Scale {
		var mm scale.MinMax
		if data, err = mm.FitTransform(data); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	mc, err := kmprom.NewCollector(reg, "kmeans")
	if err != nil {
		return err
	}

	rc := cfg.Resources()
	opts := append(cfg.Cluster.Options(),
		kmeans.WithLogger(logger),
		kmeans.WithMetricsCollector(mc),
		kmeans.WithConcurrency(cfg.Sweep.Concurrency),
		kmeans.WithResourceController(rc),
	)
	if cfg.Sweep.FailFast {
		opts = append(opts, kmeans.WithFailFast())
	}

	scores, err := kmeans.Sweep(ctx, data, cfg.Sweep.Ks(), cfg.Sweep.Seed, opts...)
	if err != nil {
		if len(scores) == 0 {
			return err
		}
		logger.WarnContext(ctx, "sweep skipped candidates", "error", err)
	}

	fmt.Fprintln(out, "k\tWCSS")
	for _, e := range scores {
		fmt.Fprintf(out, "%d\t%.6f\n", e.K, e.Dispersion)
	}

	k := cfg.Cluster.K
	if k == 0 {
		var ok bool
		if k, ok = scores.Elbow(); !ok {
			k = scores[0].K
			logger.WarnContext(ctx, "no elbow detected, using smallest candidate", "k", k)
		}
	}
	fmt.Fprintf(out, "chosen k: %d\n", k)

	res, err := kmeans.Run(ctx, data, k, append(opts, kmeans.WithSeed(cfg.Sweep.Seed))...)
	if err != nil {
		return err
	}
	logger.WithK(k).InfoContext(ctx, "final clustering done",
		"iterations", res.Iterations, "outcome", res.Outcome.String())

	if err := writeFile(cfg.Output.ElbowChart, func(w io.Writer) error {
		return report.Elbow(w, scores)
	}); err != nil {
		return err
	}
	if err := writeFile(cfg.Output.ScatterChart, func(w io.Writer) error {
		return report.Scatter(w, data, res, frame.Columns()...)
	}); err != nil {
		return err
	}

	store, err := config.OpenStore(ctx, cfg.Store, rc)
	if err != nil {
		return err
	}
	if store != nil {
		snapOpts := cfg.Store.SnapshotOptions()
		if err := snapshot.SaveSweep(ctx, store, "sweep.snap", scores, snapOpts...); err != nil {
			return err
		}
		if err := snapshot.SaveResult(ctx, store, fmt.Sprintf("runs/k%d.snap", k), res, snapOpts...); err != nil {
			return err
		}
		logger.InfoContext(ctx, "snapshots saved", "store", cfg.Store.Type)
	}

	if cfg.Output.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.Output.MetricsFile, reg); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return render(f)
}
