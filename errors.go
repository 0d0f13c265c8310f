package kmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/internal/lloyd"
)

var (
	// ErrInvalidParameter is returned when k lies outside [1, N], the
	// dataset is empty, or an option value is out of range.
	ErrInvalidParameter = lloyd.ErrInvalidParameter

	// ErrPartitionViolation is returned by runs with partition checks enabled
	// when an assignment fails to place every point in exactly one group.
	ErrPartitionViolation = lloyd.ErrPartitionViolation
)

// ErrDimensionMismatch indicates points of unequal length were compared.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// SweepError reports a candidate k that a sweep could not score.
type SweepError struct {
	K   int
	Err error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("k=%d: %v", e.K, e.Err)
}

func (e *SweepError) Unwrap() error { return e.Err }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *distance.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	return err
}
