// Package kmeans partitions numeric points into K groups with Lloyd's
// algorithm and scores candidate K values by within-group dispersion.
//
// # Quick Start
//
//	data := kmeans.Dataset{{0, 0}, {0, 1}, {10, 0}, {10, 1}}
//	res, err := kmeans.Run(ctx, data, 2, kmeans.WithSeed(1))
//	// res.Groups    -> [[0 1] [2 3]]
//	// res.Centroids -> [[0 0.5] [10 0.5]]
//
// # Runs
//
// A run picks K distinct dataset points as initial centroids, then repeats
// an assignment step (each point joins its nearest centroid, ties go to the
// lowest index) and an update step (each centroid moves to the mean of its
// members) until no coordinate moves by more than the tolerance or the
// iteration budget runs out. Both terminal states yield a usable Result;
// Result.Outcome tells them apart.
//
// A group can lose all its members. Its centroid is then reseeded according
// to the EmptyClusterPolicy, ReseedUniform by default.
//
// # Randomness
//
// Every run owns a PCG source created from a single seed. WithSeed makes runs
// reproducible; without it a seed is drawn and reported in Result.Seed.
//
// # Choosing K
//
// Sweep runs one independent clustering per candidate and records its
// dispersion (within-cluster sum of squares):
//
//	scores, err := kmeans.Sweep(ctx, data, []int{1, 2, 3, 4, 5}, 42,
//	    kmeans.WithConcurrency(4))
//	k, ok := scores.Elbow()
//
// Invalid candidates are skipped and reported as *SweepError values joined
// into the returned error. WithFailFast stops at the first one instead.
//
// # Observability
//
// WithLogger installs a slog-based Logger; per-round details are logged at
// debug level. WithMetricsCollector receives one record per run and sweep.
// The metrics/prometheus package exports them to Prometheus.
package kmeans
