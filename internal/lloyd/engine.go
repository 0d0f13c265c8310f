package lloyd

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	// DefaultMaxIterations bounds the assign/update loop.
	DefaultMaxIterations = 100
	// DefaultTolerance is the absolute per-coordinate movement below which
	// centroids are considered unchanged.
	DefaultTolerance = 1e-6
)

// Outcome is the terminal state of a clustering run.
type Outcome int

const (
	// OutcomeConverged means no centroid coordinate moved beyond the tolerance.
	OutcomeConverged Outcome = iota + 1
	// OutcomeExhausted means the iteration budget ran out first.
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverged:
		return "converged"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case OutcomeConverged, OutcomeExhausted:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("%w: unknown outcome %d", ErrInvalidParameter, int(o))
	}
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "converged":
		*o = OutcomeConverged
	case "exhausted":
		*o = OutcomeExhausted
	default:
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidParameter, text)
	}
	return nil
}

// Config controls the refinement loop.
type Config struct {
	MaxIterations  int
	Tolerance      float64
	EmptyCluster   EmptyClusterPolicy
	CheckPartition bool

	// Observer, if set, is called after every round. Dispersion is only
	// computed when an observer is installed.
	Observer func(Round)
}

// DefaultConfig returns the package defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		EmptyCluster:  ReseedUniform,
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return invalidParameter("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return invalidParameter("tolerance must be non-negative, got %v", c.Tolerance)
	}
	switch c.EmptyCluster {
	case ReseedUniform, ReseedFromData:
	default:
		return invalidParameter("unknown empty cluster policy %v", c.EmptyCluster)
	}
	return nil
}

// Round describes one assign/update round.
type Round struct {
	Index      int
	Groups     [][]int
	Centroids  [][]float64
	Shift      float64
	Dispersion float64
}

// Result is the outcome of one clustering run.
type Result struct {
	Groups    [][]int
	Centroids [][]float64
	// Iterations counts the rounds that moved at least one centroid beyond
	// the tolerance, with a floor of 1. A converged run does not count its
	// final round, which only confirmed the fixed point, so it can report
	// MaxIterations-1 when the fixed point appeared on the last allowed
	// round. An exhausted run reports MaxIterations.
	Iterations int
	Outcome    Outcome
}

// Run initializes k centroids from data and refines them until convergence
// or until cfg.MaxIterations rounds have run.
func Run(ctx context.Context, data [][]float64, k int, rng *rand.Rand, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	centroids, err := InitializeCentroids(data, k, rng)
	if err != nil {
		return nil, err
	}
	return Iterate(ctx, data, centroids, rng, cfg)
}

// Iterate refines the given starting centroids. centroids is not modified.
func Iterate(ctx context.Context, data, centroids [][]float64, rng *rand.Rand, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := ValidateDataset(data); err != nil {
		return nil, err
	}
	if err := ValidateK(len(centroids), len(data)); err != nil {
		return nil, err
	}

	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		groups, err := Assign(data, centroids)
		if err != nil {
			return nil, err
		}
		if cfg.CheckPartition {
			if err := CheckPartition(groups, len(data)); err != nil {
				return nil, err
			}
		}

		next, err := Update(data, groups, cfg.EmptyCluster, rng)
		if err != nil {
			return nil, err
		}

		shift := MaxShift(centroids, next)
		if cfg.Observer != nil {
			disp, err := Dispersion(data, groups, next)
			if err != nil {
				return nil, err
			}
			cfg.Observer(Round{Index: round, Groups: groups, Centroids: next, Shift: shift, Dispersion: disp})
		}

		if shift <= cfg.Tolerance {
			return &Result{Groups: groups, Centroids: next, Iterations: max(round-1, 1), Outcome: OutcomeConverged}, nil
		}
		if round >= cfg.MaxIterations {
			return &Result{Groups: groups, Centroids: next, Iterations: round, Outcome: OutcomeExhausted}, nil
		}
		centroids = next
	}
}

// MaxShift returns the largest absolute coordinate difference between the
// two centroid sets. Sets of different shape are infinitely far apart.
func MaxShift(prev, next [][]float64) float64 {
	if len(prev) != len(next) {
		return math.Inf(1)
	}
	var maxDelta float64
	for j := range prev {
		if len(prev[j]) != len(next[j]) {
			return math.Inf(1)
		}
		for d := range prev[j] {
			delta := math.Abs(prev[j][d] - next[j][d])
			if math.IsNaN(delta) {
				return math.Inf(1)
			}
			if delta > maxDelta {
				maxDelta = delta
			}
		}
	}
	return maxDelta
}
