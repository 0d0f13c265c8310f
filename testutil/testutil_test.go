package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformPoints(8, 3)

	require.Len(t, v, 8)
	for _, p := range v {
		require.Len(t, p, 3)
		for _, x := range p {
			assert.GreaterOrEqual(t, x, 0.0)
			assert.Less(t, x, 1.0)
		}
	}
}

func TestBlobs(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Blobs([][]float64{{0, 0}, {100, 100}}, 10, 0.1)

	require.Len(t, v, 20)
	assert.InDelta(t, 0.0, v[0][0], 1)
	assert.InDelta(t, 100.0, v[19][1], 1)
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.UniformPoints(2, 2)
	rng.Reset()
	b := rng.UniformPoints(2, 2)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(7), rng.Seed())
}

func TestLattice(t *testing.T) {
	v := Lattice([]float64{1, 1}, 3, 0.5)

	require.Len(t, v, 9)
	assert.Equal(t, []float64{0.5, 0.5}, v[0])
	assert.Equal(t, []float64{1, 1}, v[4])
	assert.Equal(t, []float64{1.5, 1.5}, v[8])

	all := Lattices([][]float64{{0, 0}, {5, 5}}, 2, 1)
	assert.Len(t, all, 8)
}
