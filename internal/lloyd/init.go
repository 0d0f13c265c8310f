package lloyd

import (
	"math/rand/v2"
	"slices"
)

// InitializeCentroids selects k distinct points of data uniformly at random
// without replacement and returns copies of them as the starting centroids.
func InitializeCentroids(data [][]float64, k int, rng *rand.Rand) ([][]float64, error) {
	if _, err := ValidateDataset(data); err != nil {
		return nil, err
	}
	if err := ValidateK(k, len(data)); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, invalidParameter("nil random source")
	}

	perm := rng.Perm(len(data))
	centroids := make([][]float64, k)
	for i := range k {
		centroids[i] = slices.Clone(data[perm[i]])
	}
	return centroids, nil
}

// ValidateK checks that k lies in [1, n].
func ValidateK(k, n int) error {
	if k < 1 || k > n {
		return invalidParameter("k=%d outside [1, %d]", k, n)
	}
	return nil
}
