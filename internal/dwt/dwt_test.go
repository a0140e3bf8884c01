package dwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaar(t *testing.T) {
	for _, size := range [][2]int{{4, 4}, {6, 2}, {8, 6}} {
		w, h := size[0], size[1]
		data := make([]float64, w*h)
		for i := range data {
			data[i] = float64((i * 29) % 200)
		}
		s := Haar(data, w, h)
		assert.Equal(t, w/2, s.Width)
		assert.Equal(t, h/2, s.Height)
		// orthonormal: energy is preserved
		total := Energy(s.LL) + Energy(s.HL) + Energy(s.LH) + Energy(s.HH)
		assert.InDelta(t, Energy(data), total, 1e-6)

		got := s.Inverse(w, h)
		for i := range data {
			require.InDelta(t, data[i], got[i], 1e-9)
		}
	}
}

func TestHaarFlat(t *testing.T) {
	data := []float64{10, 10, 10, 10}
	s := Haar(data, 2, 2)
	assert.Equal(t, []float64{20}, s.LL)
	assert.Equal(t, []float64{0}, s.HL)
	assert.Equal(t, 0.0, Norm(s.HH))
}

func TestHaarOdd(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	s := Haar(data, 3, 2)
	assert.Equal(t, 2, s.Width)
	got := s.Inverse(3, 2)
	assert.InDeltaSlice(t, data, got, 1e-9)
}
