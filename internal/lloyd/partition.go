package lloyd

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// CheckPartition verifies that groups place every index in [0, n) in exactly
// one group.
func CheckPartition(groups [][]int, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return invalidParameter("point count %d out of range", n)
	}

	seen := roaring.New()
	for j, members := range groups {
		for _, idx := range members {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: group %d holds index %d outside [0, %d)", ErrPartitionViolation, j, idx, n)
			}
			if !seen.CheckedAdd(uint32(idx)) {
				return fmt.Errorf("%w: index %d assigned more than once", ErrPartitionViolation, idx)
			}
		}
	}

	if seen.GetCardinality() != uint64(n) {
		missing := roaring.Flip(seen, 0, uint64(n))
		return fmt.Errorf("%w: index %d not assigned", ErrPartitionViolation, missing.Minimum())
	}
	return nil
}

// Labels inverts groups into a per-point group index. Points that belong to
// no group are labelled -1.
func Labels(groups [][]int, n int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	for j, members := range groups {
		for _, idx := range members {
			if idx >= 0 && idx < n {
				labels[idx] = j
			}
		}
	}
	return labels
}
