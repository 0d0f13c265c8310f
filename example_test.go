package kmeans_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/testutil"
)

func ExampleRun() {
	data := kmeans.Dataset{{0, 0}, {0, 1}, {10, 0}, {10, 1}}

	res, err := kmeans.Run(context.Background(), data, 2, kmeans.WithSeed(1))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Groups)
	fmt.Println(res.Centroids)
	fmt.Println(res.Outcome, res.Iterations)
	// Output:
	// [[0 1] [2 3]]
	// [[0 0.5] [10 0.5]]
	// converged 1
}

func ExampleSweep() {
	data := testutil.Lattices([][]float64{{0, 0}, {6, 6}, {12, 0}}, 4, 0.5)

	scores, err := kmeans.Sweep(context.Background(), data, []int{1, 2, 3, 4}, 42, kmeans.WithConcurrency(2))
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range scores {
		fmt.Printf("k=%d dispersion=%.3f\n", e.K, e.Dispersion)
	}

	k, _ := scores.Elbow()
	fmt.Println("elbow:", k)
	// Output:
	// k=1 dispersion=1566.000
	// k=2 dispersion=606.000
	// k=3 dispersion=30.000
	// k=4 dispersion=26.375
	// elbow: 3
}

func ExampleSweep_skipInvalid() {
	data := kmeans.Dataset{{0, 0}, {0, 1}, {10, 0}, {10, 1}}

	scores, err := kmeans.Sweep(context.Background(), data, []int{1, 2, 9}, 1)
	fmt.Println(scores.Ks())

	var se *kmeans.SweepError
	if errors.As(err, &se) {
		fmt.Println("skipped k:", se.K)
	}
	// Output:
	// [1 2]
	// skipped k: 9
}

func ExampleResult_Predict() {
	data := kmeans.Dataset{{0, 0}, {0, 1}, {10, 0}, {10, 1}}

	res, err := kmeans.Run(context.Background(), data, 2, kmeans.WithSeed(1))
	if err != nil {
		log.Fatal(err)
	}

	group, err := res.Predict(kmeans.Point{9, 2})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(group)
	// Output: 1
}
