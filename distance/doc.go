// Package distance provides point-to-point dissimilarity for clustering.
//
// All functions operate on float64 feature vectors and report a length
// mismatch as *ErrDimensionMismatch instead of panicking.
//
// # Supported Metrics
//
//   - MetricL2: Euclidean distance, used for nearest-centroid assignment
//   - MetricSquaredL2: squared Euclidean distance, summed into dispersion
//
// # Usage
//
//	d, err := distance.Euclidean(a, b)
//	sq, err := distance.SquaredEuclidean(a, b)
//
//	fn, err := distance.Provider(distance.MetricL2)
package distance
