package lloyd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans/distance"
)

var (
	// ErrInvalidParameter is returned for out-of-range arguments and empty datasets.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrPartitionViolation is returned when an assignment does not place
	// every point index in exactly one group.
	ErrPartitionViolation = errors.New("partition violation")
)

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// ValidateDataset checks that data is non-empty and rectangular and returns
// the shared dimension.
func ValidateDataset(data [][]float64) (int, error) {
	if len(data) == 0 {
		return 0, invalidParameter("empty dataset")
	}
	dim := len(data[0])
	if dim == 0 {
		return 0, invalidParameter("points must have at least one coordinate")
	}
	for i := 1; i < len(data); i++ {
		if len(data[i]) != dim {
			return 0, fmt.Errorf("point %d: %w", i, &distance.ErrDimensionMismatch{Expected: dim, Actual: len(data[i])})
		}
	}
	return dim, nil
}

// ValidateConcurrency checks a worker count.
func ValidateConcurrency(n int) error {
	if n <= 0 {
		return invalidParameter("concurrency must be positive, got %d", n)
	}
	return nil
}
