// Package testutil provides dataset generators for clustering tests.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Datasets
//
//	rng := testutil.NewRNG(seed)
//	data := rng.UniformPoints(100, 2)          // uniform [0, 1)
//	data = rng.Blobs(centers, 50, 0.3)         // Gaussian blobs
//
// # Deterministic Datasets
//
//	data := testutil.Lattice([]float64{0, 0}, 4, 0.5) // 4x4 grid around the origin
package testutil
