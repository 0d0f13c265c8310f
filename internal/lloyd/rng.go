package lloyd

import "math/rand/v2"

// NewSource returns a deterministic random source for seed.
// Identical seeds always yield identical sequences.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
