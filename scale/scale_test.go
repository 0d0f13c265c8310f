package scale

import (
	"testing"

	"github.com/hupe1980/kmeans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	data := kmeans.Dataset{{0, 10, 5}, {5, 20, 5}, {10, 30, 5}}

	var m MinMax
	scaled, err := m.FitTransform(data)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dimension())

	want := kmeans.Dataset{{0, 0, 0}, {0.5, 0.5, 0}, {1, 1, 0}}
	for i := range want {
		assert.InDeltaSlice(t, want[i], scaled[i], 1e-12)
	}

	back, err := m.InverseTransform(scaled)
	require.NoError(t, err)
	for i := range data {
		assert.InDeltaSlice(t, data[i], back[i], 1e-12)
	}

	assert.Equal(t, 10.0, data[0][1], "input is not modified")
}

func TestMinMax_UnseenValues(t *testing.T) {
	var m MinMax
	require.NoError(t, m.Fit(kmeans.Dataset{{0}, {4}}))

	out, err := m.Transform(kmeans.Dataset{{8}, {-4}})
	require.NoError(t, err)
	assert.Equal(t, kmeans.Dataset{{2}, {-1}}, out)
}

func TestMinMax_Errors(t *testing.T) {
	var m MinMax

	_, err := m.Transform(kmeans.Dataset{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, m.Fit(nil), kmeans.ErrInvalidParameter)
	assert.ErrorIs(t, m.Fit(kmeans.Dataset{{}}), kmeans.ErrInvalidParameter)

	var dm *kmeans.ErrDimensionMismatch
	require.ErrorAs(t, m.Fit(kmeans.Dataset{{1, 2}, {3}}), &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 1, dm.Actual)

	require.NoError(t, m.Fit(kmeans.Dataset{{1, 2}}))
	_, err = m.Transform(kmeans.Dataset{{1}})
	assert.ErrorAs(t, err, &dm)
}
