package kmeans

import (
	"context"
	"log/slog"

	"github.com/hupe1980/kmeans/internal/lloyd"
	"github.com/hupe1980/kmeans/resource"
)

type options struct {
	maxIterations    int
	tolerance        float64
	emptyCluster     EmptyClusterPolicy
	seed             uint64
	seeded           bool
	checkPartition   bool
	observer         func(k int, r Round)
	logger           *Logger
	metricsCollector MetricsCollector
	concurrency      int
	failFast         bool
	resources        *resource.Controller
}

// Option configures Run and Sweep.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		maxIterations:    DefaultMaxIterations,
		tolerance:        DefaultTolerance,
		emptyCluster:     ReseedUniform,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		concurrency:      1,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o *options) validate() error {
	if err := lloyd.ValidateConcurrency(o.concurrency); err != nil {
		return err
	}
	return o.baseConfig().Validate()
}

func (o *options) baseConfig() lloyd.Config {
	return lloyd.Config{
		MaxIterations:  o.maxIterations,
		Tolerance:      o.tolerance,
		EmptyCluster:   o.emptyCluster,
		CheckPartition: o.checkPartition,
	}
}

func (o *options) engineConfig(ctx context.Context, k int) lloyd.Config {
	cfg := o.baseConfig()
	if o.observer != nil || o.logger.Enabled(ctx, slog.LevelDebug) {
		cfg.Observer = func(r lloyd.Round) {
			o.logger.LogRound(ctx, k, r)
			if o.observer != nil {
				o.observer(k, r)
			}
		}
	}
	return cfg
}

// WithMaxIterations bounds the number of assign/update rounds per run.
// Reaching the bound ends the run with OutcomeExhausted; it is not an error.
// Values <= 0 are rejected with ErrInvalidParameter.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the absolute per-coordinate movement under which
// centroids count as unchanged. Defaults to 1e-6.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithSeed makes Run reproducible. Without it Run draws a fresh seed and
// reports it in Result.Seed. Sweep ignores this option in favour of its
// seed argument.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithEmptyClusterPolicy selects how a group that attracted no points is
// reseeded. The default ReseedUniform draws coordinates from [0,1) and is
// only meaningful for min-max scaled data.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyCluster = p
	}
}

// WithPartitionChecks verifies after every assignment that each point
// belongs to exactly one group. Violations fail the run with
// ErrPartitionViolation.
func WithPartitionChecks() Option {
	return func(o *options) {
		o.checkPartition = true
	}
}

// WithRoundObserver installs a callback invoked after every assign/update
// round with the run's k. With WithConcurrency > 1 the callback is invoked
// from multiple goroutines.
func WithRoundObserver(fn func(k int, r Round)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeans.NewJSONLogger(slog.LevelInfo)
//	res, _ := kmeans.Run(ctx, data, 5, kmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeans.BasicMetricsCollector{}
//	_, _ = kmeans.Sweep(ctx, data, ks, 42, kmeans.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithConcurrency lets Sweep score up to n candidate k values at once.
// Results are identical to a sequential sweep. Defaults to 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithFailFast makes Sweep stop at the first invalid candidate k instead of
// skipping it. The entries scored for earlier candidates are still returned.
func WithFailFast() Option {
	return func(o *options) {
		o.failFast = true
	}
}

// WithResourceController shares worker slots with other sweeps using the
// same controller.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.resources = c
	}
}
