package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points of the given dimension with coordinates
// uniformly distributed in [0, 1).
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, num)
	for i := range points {
		p := make([]float64, dim)
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}
	return points
}

// Blobs generates perCenter points around each center with Gaussian noise of
// the given standard deviation. Points are grouped by center, in center order.
func (r *RNG) Blobs(centers [][]float64, perCenter int, stddev float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, 0, len(centers)*perCenter)
	for _, c := range centers {
		for range perCenter {
			p := make([]float64, len(c))
			for j := range c {
				p[j] = c[j] + r.rand.NormFloat64()*stddev
			}
			points = append(points, p)
		}
	}
	return points
}

// Lattice returns side*side points on a square grid of spacing step centred
// on the 2-D point center, in row-major order.
func Lattice(center []float64, side int, step float64) [][]float64 {
	half := float64(side-1) / 2
	points := make([][]float64, 0, side*side)
	for i := range side {
		for j := range side {
			points = append(points, []float64{
				center[0] + (float64(i)-half)*step,
				center[1] + (float64(j)-half)*step,
			})
		}
	}
	return points
}

// Lattices concatenates one Lattice per center.
func Lattices(centers [][]float64, side int, step float64) [][]float64 {
	var points [][]float64
	for _, c := range centers {
		points = append(points, Lattice(c, side, step)...)
	}
	return points
}
