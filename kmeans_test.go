package kmeans

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/internal/lloyd"
	"github.com/hupe1980/kmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourCorners() Dataset {
	return Dataset{{0, 0}, {0, 1}, {10, 0}, {10, 1}}
}

func TestRun_EndToEnd(t *testing.T) {
	res, err := Run(context.Background(), fourCorners(), 2, WithSeed(1))
	require.NoError(t, err)

	assert.True(t, res.Converged())
	assert.LessOrEqual(t, res.Iterations, 3)
	assert.Equal(t, uint64(1), res.Seed)
	assert.Equal(t, 2, res.K)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, res.Groups)
	assert.InDeltaSlice(t, []float64{0, 0.5}, res.Centroids[0], 1e-9)
	assert.InDeltaSlice(t, []float64{10, 0.5}, res.Centroids[1], 1e-9)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Labels())

	disp, err := res.Dispersion(fourCorners())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, disp, 1e-9)
}

func TestRun_SingleGroupConvergesInOneIteration(t *testing.T) {
	res, err := Run(context.Background(), fourCorners(), 1, WithSeed(9))
	require.NoError(t, err)
	assert.Equal(t, OutcomeConverged, res.Outcome)
	assert.Equal(t, 1, res.Iterations)
	assert.InDeltaSlice(t, []float64{5, 0.5}, res.Centroids[0], 1e-12)
}

func TestRun_FixedPointOnFirstRoundCountsOneIteration(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleGroupStartingAtMean", func(t *testing.T) {
		data := Dataset{{0}, {1}, {2}}
		for seed := uint64(0); seed < 20; seed++ {
			res, err := Run(ctx, data, 1, WithSeed(seed))
			require.NoError(t, err)
			assert.Equal(t, OutcomeConverged, res.Outcome, "seed %d", seed)
			assert.Equal(t, 1, res.Iterations, "seed %d", seed)
			assert.InDeltaSlice(t, []float64{1}, res.Centroids[0], 1e-12)
		}
	})

	t.Run("OneGroupPerPoint", func(t *testing.T) {
		res, err := Run(ctx, fourCorners(), 4, WithSeed(1))
		require.NoError(t, err)
		assert.Equal(t, OutcomeConverged, res.Outcome)
		assert.Equal(t, 1, res.Iterations)
		for _, g := range res.Groups {
			assert.Len(t, g, 1)
		}
	})
}

func TestRun_ConvergesOnLastAllowedRound(t *testing.T) {
	res, err := Run(context.Background(), fourCorners(), 2, WithSeed(1), WithMaxIterations(2))
	require.NoError(t, err)
	assert.Equal(t, OutcomeConverged, res.Outcome)
	assert.Equal(t, 1, res.Iterations)

	res, err = Run(context.Background(), fourCorners(), 2, WithSeed(1), WithMaxIterations(1))
	require.NoError(t, err)
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, 1, res.Iterations)
}

func TestRun_Exhausted(t *testing.T) {
	res, err := Run(context.Background(), fourCorners(), 1, WithSeed(9), WithMaxIterations(1))
	require.NoError(t, err)
	assert.False(t, res.Converged())
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, 1, res.Iterations)
	assert.Len(t, res.Groups, 1)
	assert.Len(t, res.Centroids, 1)
}

func TestRun_UnseededReportsSeed(t *testing.T) {
	data := testutil.NewRNG(3).UniformPoints(40, 2)

	first, err := Run(context.Background(), data, 3)
	require.NoError(t, err)

	again, err := Run(context.Background(), data, 3, WithSeed(first.Seed))
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data Dataset
		k    int
		opts []Option
	}{
		{"KZero", fourCorners(), 0, nil},
		{"KTooLarge", fourCorners(), 5, nil},
		{"EmptyDataset", Dataset{}, 1, nil},
		{"ZeroMaxIterations", fourCorners(), 2, []Option{WithMaxIterations(0)}},
		{"NegativeTolerance", fourCorners(), 2, []Option{WithTolerance(-1)}},
		{"UnknownPolicy", fourCorners(), 2, []Option{WithEmptyClusterPolicy(EmptyClusterPolicy(7))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(ctx, tt.data, tt.k, append(tt.opts, WithSeed(1))...)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}

	t.Run("RaggedDataset", func(t *testing.T) {
		_, err := Run(ctx, Dataset{{0, 0}, {1, 1, 1}}, 1, WithSeed(1))

		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 3, dm.Actual)

		var inner *distance.ErrDimensionMismatch
		assert.ErrorAs(t, errors.Unwrap(err), &inner)
	})
}

func TestInitializeCentroids_Deterministic(t *testing.T) {
	data := testutil.NewRNG(1).UniformPoints(50, 3)

	a, err := InitializeCentroids(data, 5, 42)
	require.NoError(t, err)
	b, err := InitializeCentroids(data, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for _, c := range a {
		assert.Contains(t, data, c)
	}

	_, err = InitializeCentroids(data, 51, 42)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestComputeDispersion(t *testing.T) {
	d, err := ComputeDispersion(fourCorners(), [][]int{{0, 1, 2, 3}}, []Point{{5, 0.5}})
	require.NoError(t, err)
	assert.InDelta(t, 101.0, d, 1e-9)

	_, err = ComputeDispersion(fourCorners(), [][]int{{0}}, []Point{{5, 0.5, 1}})
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)

	_, err = ComputeDispersion(fourCorners(), [][]int{{0}, {1}}, []Point{{0, 0}})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRun_PartitionAndMonotoneDispersion(t *testing.T) {
	rng := testutil.NewRNG(99)
	data := rng.Blobs([][]float64{{0, 0}, {4, 4}, {8, 0}, {4, -4}}, 40, 1.5)

	for _, k := range []int{2, 4, 7} {
		var rounds []Round
		observer := func(gotK int, r Round) {
			assert.Equal(t, k, gotK)
			rounds = append(rounds, r)
		}

		res, err := Run(context.Background(), data, k,
			WithSeed(uint64(k)),
			WithPartitionChecks(),
			WithRoundObserver(observer),
		)
		require.NoError(t, err)
		require.NotEmpty(t, rounds)

		for i, r := range rounds {
			require.NoError(t, lloyd.CheckPartition(r.Groups, len(data)))
			assert.Len(t, r.Groups, k)
			assert.GreaterOrEqual(t, r.Dispersion, 0.0)
			if i > 0 {
				assert.LessOrEqual(t, r.Dispersion, rounds[i-1].Dispersion+1e-9, "k=%d round=%d", k, r.Index)
			}
		}
		assert.NoError(t, lloyd.CheckPartition(res.Groups, len(data)))
	}
}

func TestRun_ReseedFromData(t *testing.T) {
	rng := testutil.NewRNG(5)
	data := rng.Blobs([][]float64{{100, 100}, {200, 200}}, 10, 1)

	res, err := Run(context.Background(), data, 5, WithSeed(3), WithEmptyClusterPolicy(ReseedFromData))
	require.NoError(t, err)
	assert.Len(t, res.Centroids, 5)
	for _, c := range res.Centroids {
		assert.Greater(t, c[0], 50.0, "centroids stay in the data's range")
	}
}

func TestResult_Predict(t *testing.T) {
	res, err := Run(context.Background(), fourCorners(), 2, WithSeed(1))
	require.NoError(t, err)

	idx, err := res.Predict(Point{9, 9})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = res.Predict(Point{1})
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run(context.Background(), fourCorners(), 2, WithSeed(1), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"round completed"`)
	assert.Contains(t, buf.String(), `"msg":"clustering converged"`)

	buf.Reset()
	_, err = Run(context.Background(), fourCorners(), 9, WithSeed(1), WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"clustering failed"`)
}

func TestRun_Metrics(t *testing.T) {
	mc := &BasicMetricsCollector{}

	_, err := Run(context.Background(), fourCorners(), 1, WithSeed(1), WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = Run(context.Background(), fourCorners(), 1, WithSeed(1), WithMaxIterations(1), WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = Run(context.Background(), fourCorners(), 0, WithSeed(1), WithMetricsCollector(mc))
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(3), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(1), stats.RunExhausted)
	assert.Equal(t, int64(2), stats.RunIterations)
}

func TestNilOptionsFallBackToNoop(t *testing.T) {
	_, err := Run(context.Background(), fourCorners(), 2, WithSeed(1), WithLogger(nil), WithMetricsCollector(nil))
	assert.NoError(t, err)
}
