package kmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordRun is called after each clustering run.
	// iterations and outcome are zero values when err is non-nil.
	RecordRun(k, iterations int, outcome Outcome, duration time.Duration, err error)

	// RecordSweep is called after each sweep. count is the number of
	// candidate k values, skipped the number rejected as invalid.
	RecordSweep(count, skipped int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, Outcome, time.Duration, error) {}
func (NoopMetricsCollector) RecordSweep(int, int, time.Duration)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunExhausted    atomic.Int64
	RunIterations   atomic.Int64
	RunTotalNanos   atomic.Int64
	SweepCount      atomic.Int64
	SweepCandidates atomic.Int64
	SweepSkipped    atomic.Int64
	SweepTotalNanos atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(k, iterations int, outcome Outcome, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.RunIterations.Add(int64(iterations))
	if outcome == OutcomeExhausted {
		b.RunExhausted.Add(1)
	}
}

// RecordSweep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSweep(count, skipped int, duration time.Duration) {
	b.SweepCount.Add(1)
	b.SweepCandidates.Add(int64(count))
	b.SweepSkipped.Add(int64(skipped))
	b.SweepTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:        b.RunCount.Load(),
		RunErrors:       b.RunErrors.Load(),
		RunExhausted:    b.RunExhausted.Load(),
		RunIterations:   b.RunIterations.Load(),
		RunAvgNanos:     b.getAvgRunNanos(),
		SweepCount:      b.SweepCount.Load(),
		SweepCandidates: b.SweepCandidates.Load(),
		SweepSkipped:    b.SweepSkipped.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount        int64
	RunErrors       int64
	RunExhausted    int64
	RunIterations   int64
	RunAvgNanos     int64
	SweepCount      int64
	SweepCandidates int64
	SweepSkipped    int64
}
