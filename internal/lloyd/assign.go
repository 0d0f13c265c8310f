package lloyd

import (
	"math"

	"github.com/hupe1980/kmeans/distance"
)

// Distance functions of the engine. Both metrics are always provided.
var (
	pointDistance = mustProvide(distance.MetricL2)
	groupDistance = mustProvide(distance.MetricSquaredL2)
)

func mustProvide(m distance.Metric) distance.Func {
	fn, err := distance.Provider(m)
	if err != nil {
		panic(err)
	}
	return fn
}

// Assign partitions the indices of data into len(centroids) groups by
// nearest centroid. Group members are in ascending index order.
func Assign(data, centroids [][]float64) ([][]int, error) {
	groups := make([][]int, len(centroids))
	for i, p := range data {
		best, err := Nearest(p, centroids)
		if err != nil {
			return nil, err
		}
		groups[best] = append(groups[best], i)
	}
	return groups, nil
}

// Nearest returns the index of the centroid closest to p.
// Equidistant centroids resolve to the lowest index.
func Nearest(p []float64, centroids [][]float64) (int, error) {
	if len(centroids) == 0 {
		return -1, invalidParameter("no centroids")
	}

	best := 0
	minDist := math.Inf(1)
	for j, c := range centroids {
		d, err := pointDistance(p, c)
		if err != nil {
			return -1, err
		}
		if d < minDist {
			minDist = d
			best = j
		}
	}
	return best, nil
}
