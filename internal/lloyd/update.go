package lloyd

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// EmptyClusterPolicy decides where the centroid of an empty group goes.
type EmptyClusterPolicy int

const (
	// ReseedUniform places the centroid at D independent uniform values in
	// [0,1). It assumes min-max scaled input; on raw data the centroid may
	// land far outside the data's range.
	ReseedUniform EmptyClusterPolicy = iota
	// ReseedFromData copies a randomly chosen dataset point.
	ReseedFromData
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case ReseedUniform:
		return "uniform"
	case ReseedFromData:
		return "from-data"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Update computes one centroid per group as the coordinate-wise mean of its
// members. Empty groups are reseeded according to policy using rng.
func Update(data [][]float64, groups [][]int, policy EmptyClusterPolicy, rng *rand.Rand) ([][]float64, error) {
	dim, err := ValidateDataset(data)
	if err != nil {
		return nil, err
	}

	centroids := make([][]float64, len(groups))
	for j, members := range groups {
		c := make([]float64, dim)
		if len(members) == 0 {
			if err := reseed(c, data, policy, rng); err != nil {
				return nil, err
			}
			centroids[j] = c
			continue
		}
		for _, idx := range members {
			if idx < 0 || idx >= len(data) {
				return nil, invalidParameter("group %d holds index %d outside [0, %d)", j, idx, len(data))
			}
			floats.Add(c, data[idx])
		}
		floats.Scale(1/float64(len(members)), c)
		centroids[j] = c
	}
	return centroids, nil
}

func reseed(dst []float64, data [][]float64, policy EmptyClusterPolicy, rng *rand.Rand) error {
	if rng == nil {
		return invalidParameter("nil random source")
	}
	switch policy {
	case ReseedUniform:
		for i := range dst {
			dst[i] = rng.Float64()
		}
	case ReseedFromData:
		copy(dst, data[rng.IntN(len(data))])
	default:
		return invalidParameter("unknown empty cluster policy %v", policy)
	}
	return nil
}
