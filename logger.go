package kmeans

import (
	"context"
	"log/slog"
	"os"
)

// Logger is a slog.Logger that knows the attribute names used for runs and
// sweeps.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON lines at or above level to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs key=value lines at or above level to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

func (l *Logger) with(key string, value int) *Logger {
	return &Logger{Logger: l.Logger.With(key, value)}
}

// WithK tags every record with the number of groups.
func (l *Logger) WithK(k int) *Logger { return l.with("k", k) }

// WithDimension tags every record with the point dimension.
func (l *Logger) WithDimension(dim int) *Logger { return l.with("dimension", dim) }

// WithCount tags every record with a point count.
func (l *Logger) WithCount(count int) *Logger { return l.with("count", count) }

// LogRound logs one assign/update round at debug level.
func (l *Logger) LogRound(ctx context.Context, k int, r Round) {
	l.DebugContext(ctx, "round completed",
		"k", k,
		"round", r.Index,
		"shift", r.Shift,
		"dispersion", r.Dispersion,
	)
}

// LogRun logs a clustering run.
func (l *Logger) LogRun(ctx context.Context, k int, res *Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"k", k,
			"error", err,
		)
		return
	}
	if res.Outcome == OutcomeExhausted {
		l.WarnContext(ctx, "clustering stopped at iteration limit",
			"k", k,
			"iterations", res.Iterations,
			"seed", res.Seed,
		)
		return
	}
	l.DebugContext(ctx, "clustering converged",
		"k", k,
		"iterations", res.Iterations,
		"seed", res.Seed,
	)
}

// LogSweepEntry logs the score recorded for one candidate k.
func (l *Logger) LogSweepEntry(ctx context.Context, e SweepEntry) {
	l.InfoContext(ctx, "sweep entry scored",
		"k", e.K,
		"dispersion", e.Dispersion,
		"iterations", e.Iterations,
		"outcome", e.Outcome.String(),
	)
}

// LogSweep logs the completion of a sweep.
func (l *Logger) LogSweep(ctx context.Context, count, skipped int) {
	if skipped > 0 {
		l.WarnContext(ctx, "sweep completed with skipped candidates",
			"total", count,
			"skipped", skipped,
			"scored", count-skipped,
		)
		return
	}
	l.InfoContext(ctx, "sweep completed", "count", count)
}
