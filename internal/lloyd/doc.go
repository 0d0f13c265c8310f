// Package lloyd implements the k-means clustering engine (Lloyd's algorithm).
//
// The engine is split into the steps of one refinement round:
//
//   - InitializeCentroids picks K distinct dataset points without replacement.
//   - Assign partitions point indices by nearest centroid.
//   - Update recomputes each centroid as the mean of its members.
//   - Iterate drives assign/update until the centroids stop moving or the
//     iteration budget is exhausted.
//
// Randomness is always supplied by the caller as a *rand.Rand so that runs
// are reproducible and independently seedable.
package lloyd
