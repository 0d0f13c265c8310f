package kmeans

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/kmeans/internal/lloyd"
)

// Point is a feature vector. All points of a dataset share one length.
type Point = []float64

// Dataset is an ordered sequence of points. Group members refer to points
// by their index in the dataset.
type Dataset = []Point

// Round describes one assign/update round, as passed to WithRoundObserver.
type Round = lloyd.Round

// Outcome is the terminal state of a clustering run.
type Outcome = lloyd.Outcome

const (
	// OutcomeConverged means no centroid coordinate moved beyond the tolerance.
	OutcomeConverged = lloyd.OutcomeConverged
	// OutcomeExhausted means the iteration budget ran out first. The result
	// is still usable.
	OutcomeExhausted = lloyd.OutcomeExhausted
)

// EmptyClusterPolicy decides where the centroid of an empty group goes.
type EmptyClusterPolicy = lloyd.EmptyClusterPolicy

const (
	// ReseedUniform draws each coordinate uniformly from [0,1).
	ReseedUniform = lloyd.ReseedUniform
	// ReseedFromData copies a randomly chosen dataset point.
	ReseedFromData = lloyd.ReseedFromData
)

const (
	// DefaultMaxIterations is the default bound on assign/update rounds.
	DefaultMaxIterations = lloyd.DefaultMaxIterations
	// DefaultTolerance is the default convergence tolerance.
	DefaultTolerance = lloyd.DefaultTolerance
)

// Result is the partition and centroids produced by one clustering run.
type Result struct {
	K int
	// Groups[j] lists, in ascending order, the dataset indices assigned to
	// centroid j. Groups partition the dataset indices.
	Groups    [][]int
	Centroids []Point
	// Iterations counts the rounds that moved at least one centroid, and is
	// never below 1. A converged run leaves out the final round that only
	// confirmed the fixed point, so converging on the last allowed round
	// reports WithMaxIterations-1. An exhausted run reports the limit.
	Iterations int
	Outcome    Outcome
	// Seed is the seed the run's random source was created from.
	Seed uint64
}

// Converged reports whether the run reached a fixed point.
func (r *Result) Converged() bool {
	return r.Outcome == OutcomeConverged
}

// Labels returns the group index of every dataset point.
func (r *Result) Labels() []int {
	n := 0
	for _, g := range r.Groups {
		n += len(g)
	}
	return lloyd.Labels(r.Groups, n)
}

// Predict returns the index of the centroid nearest to p, using the same
// lowest-index tie-break as the assignment step.
func (r *Result) Predict(p Point) (int, error) {
	idx, err := lloyd.Nearest(p, r.Centroids)
	return idx, translateError(err)
}

// Dispersion scores the result against the dataset it was computed from.
func (r *Result) Dispersion(data Dataset) (float64, error) {
	return ComputeDispersion(data, r.Groups, r.Centroids)
}

// InitializeCentroids selects k distinct dataset points uniformly at random
// without replacement. Identical (data, k, seed) always yield identical
// centroids.
func InitializeCentroids(data Dataset, k int, seed uint64) ([]Point, error) {
	centroids, err := lloyd.InitializeCentroids(data, k, lloyd.NewSource(seed))
	return centroids, translateError(err)
}

// Run partitions data into k groups with Lloyd's algorithm.
//
// The run ends when no centroid coordinate moves by more than the tolerance
// (OutcomeConverged) or when the iteration budget is spent
// (OutcomeExhausted). Both are successful outcomes. Errors are
// ErrInvalidParameter, *ErrDimensionMismatch or a context error.
func Run(ctx context.Context, data Dataset, k int, opts ...Option) (*Result, error) {
	o := applyOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}

	seed := o.seed
	if !o.seeded {
		seed = rand.Uint64()
	}
	return run(ctx, data, k, seed, &o)
}

func run(ctx context.Context, data Dataset, k int, seed uint64, o *options) (*Result, error) {
	start := time.Now()

	lr, err := lloyd.Run(ctx, data, k, lloyd.NewSource(seed), o.engineConfig(ctx, k))
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordRun(k, 0, 0, time.Since(start), err)
		o.logger.LogRun(ctx, k, nil, err)
		return nil, err
	}

	res := &Result{
		K:          k,
		Groups:     lr.Groups,
		Centroids:  lr.Centroids,
		Iterations: lr.Iterations,
		Outcome:    lr.Outcome,
		Seed:       seed,
	}
	o.metricsCollector.RecordRun(k, res.Iterations, res.Outcome, time.Since(start), nil)
	o.logger.LogRun(ctx, k, res, nil)
	return res, nil
}

// ComputeDispersion returns the within-group sum of squared Euclidean
// distances from each member point to its group's centroid.
func ComputeDispersion(data Dataset, groups [][]int, centroids []Point) (float64, error) {
	d, err := lloyd.Dispersion(data, groups, centroids)
	return d, translateError(err)
}
