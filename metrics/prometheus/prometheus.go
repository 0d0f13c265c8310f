// Package prometheus exports clustering metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, err := kmprom.NewCollector(reg, "kmeans")
//	res, err := kmeans.Run(ctx, data, k, kmeans.WithMetricsCollector(mc))
package prometheus

import (
	"time"

	"github.com/hupe1980/kmeans"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements kmeans.MetricsCollector with Prometheus metrics.
type Collector struct {
	runs         *prometheus.CounterVec
	runLatency   *prometheus.HistogramVec
	iterations   prometheus.Histogram
	sweeps       prometheus.Counter
	candidates   prometheus.Counter
	skipped      prometheus.Counter
	sweepLatency prometheus.Histogram
}

var _ kmeans.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg. An empty
// namespace defaults to "kmeans".
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if namespace == "" {
		namespace = "kmeans"
	}

	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Clustering runs by outcome (converged, exhausted, error).",
		}, []string{"outcome"}),
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Latency of clustering runs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Centroid-moving rounds per successful run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Completed sweeps.",
		}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_candidates_total",
			Help:      "Candidate k values submitted to sweeps.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_skipped_total",
			Help:      "Candidate k values rejected as invalid.",
		}),
		sweepLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Latency of sweeps.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, m := range []prometheus.Collector{
		c.runs, c.runLatency, c.iterations, c.sweeps, c.candidates, c.skipped, c.sweepLatency,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordRun implements kmeans.MetricsCollector.
func (c *Collector) RecordRun(_ int, iterations int, outcome kmeans.Outcome, duration time.Duration, err error) {
	if err != nil {
		c.runs.WithLabelValues("error").Inc()
		c.runLatency.WithLabelValues("error").Observe(duration.Seconds())
		return
	}
	c.runs.WithLabelValues(outcome.String()).Inc()
	c.runLatency.WithLabelValues("ok").Observe(duration.Seconds())
	c.iterations.Observe(float64(iterations))
}

// RecordSweep implements kmeans.MetricsCollector.
func (c *Collector) RecordSweep(count, skipped int, duration time.Duration) {
	c.sweeps.Inc()
	c.candidates.Add(float64(count))
	c.skipped.Add(float64(skipped))
	c.sweepLatency.Observe(duration.Seconds())
}
