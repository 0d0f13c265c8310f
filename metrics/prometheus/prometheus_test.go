package prometheus

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/kmeans"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "")
	require.NoError(t, err)

	c.RecordRun(2, 3, kmeans.OutcomeConverged, 0, nil)
	c.RecordRun(2, 100, kmeans.OutcomeExhausted, 0, nil)
	c.RecordRun(9, 0, 0, 0, errors.New("boom"))
	c.RecordSweep(5, 2, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("exhausted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sweeps))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.candidates))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.skipped))

	n, err := testutil.GatherAndCount(reg, "kmeans_runs_total", "kmeans_run_iterations")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg, "kmeans")
	require.NoError(t, err)

	_, err = NewCollector(reg, "kmeans")
	assert.Error(t, err)

	_, err = NewCollector(reg, "other")
	assert.NoError(t, err)
}

func TestCollector_WithSweep(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "kmeans")
	require.NoError(t, err)

	data := kmeans.Dataset{{0, 0}, {0, 1}, {10, 0}, {10, 1}}
	_, err = kmeans.Sweep(context.Background(), data, []int{1, 2, 7}, 1, kmeans.WithMetricsCollector(c))
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.runs.WithLabelValues("converged")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.candidates))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.skipped))
}
