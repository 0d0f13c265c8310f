// Package scale rescales datasets feature by feature.
package scale

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans"
	"gonum.org/v1/gonum/floats"
)

// ErrNotFitted is returned when a scaler is used before Fit.
var ErrNotFitted = errors.New("scale: scaler not fitted")

// MinMax maps every feature linearly onto [0, 1] using the minimum and
// maximum seen during Fit. Constant features map to 0.
type MinMax struct {
	min   []float64
	scale []float64 // max - min per feature, 0 for constant features
}

// Fit learns per-feature bounds from data.
func (m *MinMax) Fit(data kmeans.Dataset) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty dataset", kmeans.ErrInvalidParameter)
	}

	dim := len(data[0])
	if dim == 0 {
		return fmt.Errorf("%w: zero-dimensional points", kmeans.ErrInvalidParameter)
	}

	lo := make([]float64, dim)
	hi := make([]float64, dim)
	copy(lo, data[0])
	copy(hi, data[0])

	for i, p := range data {
		if len(p) != dim {
			return fmt.Errorf("point %d: %w", i, &kmeans.ErrDimensionMismatch{Expected: dim, Actual: len(p)})
		}
		for d, v := range p {
			lo[d] = min(lo[d], v)
			hi[d] = max(hi[d], v)
		}
	}

	floats.Sub(hi, lo)
	m.min = lo
	m.scale = hi
	return nil
}

// Dimension returns the number of features seen by Fit, or 0.
func (m *MinMax) Dimension() int {
	return len(m.min)
}

// Transform returns a scaled copy of data.
func (m *MinMax) Transform(data kmeans.Dataset) (kmeans.Dataset, error) {
	return m.apply(data, m.forward)
}

// FitTransform fits the scaler and transforms data.
func (m *MinMax) FitTransform(data kmeans.Dataset) (kmeans.Dataset, error) {
	if err := m.Fit(data); err != nil {
		return nil, err
	}
	return m.Transform(data)
}

// InverseTransform maps scaled points back to the original units. Constant
// features come back as their fitted value.
func (m *MinMax) InverseTransform(data kmeans.Dataset) (kmeans.Dataset, error) {
	return m.apply(data, m.inverse)
}

func (m *MinMax) apply(data kmeans.Dataset, fn func(dst, p []float64)) (kmeans.Dataset, error) {
	if m.min == nil {
		return nil, ErrNotFitted
	}

	out := make(kmeans.Dataset, len(data))
	for i, p := range data {
		if len(p) != len(m.min) {
			return nil, fmt.Errorf("point %d: %w", i, &kmeans.ErrDimensionMismatch{Expected: len(m.min), Actual: len(p)})
		}
		dst := make(kmeans.Point, len(p))
		fn(dst, p)
		out[i] = dst
	}
	return out, nil
}

func (m *MinMax) forward(dst, p []float64) {
	floats.SubTo(dst, p, m.min)
	for d, s := range m.scale {
		if s == 0 {
			dst[d] = 0
			continue
		}
		dst[d] /= s
	}
}

func (m *MinMax) inverse(dst, p []float64) {
	floats.MulTo(dst, p, m.scale)
	floats.Add(dst, m.min)
}
