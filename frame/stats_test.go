package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	f, err := New(2, 2, YUV420p, 8)
	require.NoError(t, err)
	copy(f.Plane(PlaneY), []uint16{0, 0, 10, 255})
	f.Fill(PlaneU, 128)

	h := f.Histogram()
	assert.Equal(t, []string{"Y", "Cb", "Cr"}, h.Names)
	assert.Len(t, h.Counts[0], 256)
	assert.Equal(t, 2, h.Counts[0][0])
	assert.Equal(t, 1, h.Counts[0][10])
	assert.Equal(t, 1, h.Counts[0][255])
	assert.Equal(t, 1, h.Counts[1][128])
	assert.Equal(t, 1, h.Counts[2][0])
	assert.Equal(t, h.Counts[0], f.LumaHistogram())
}

func TestStats(t *testing.T) {
	f, err := New(2, 2, YUV400, 8)
	require.NoError(t, err)
	copy(f.Plane(0), []uint16{2, 4, 4, 6})
	s := f.Stats()
	require.Len(t, s, 1)
	assert.Equal(t, "Y", s[0].Name)
	assert.Equal(t, 4., s[0].Mean)
	assert.InDelta(t, math.Sqrt(8./3.), s[0].StdDev, 1e-9)
	assert.Equal(t, 2., s[0].Min)
	assert.Equal(t, 6., s[0].Max)
	assert.Equal(t, 4., f.LumaMean())

	t.Run("single sample chroma", func(t *testing.T) {
		g, err := New(1, 1, YUV420p, 8)
		require.NoError(t, err)
		g.Fill(PlaneU, 90)
		for _, ps := range g.Stats() {
			assert.False(t, math.IsNaN(ps.StdDev), ps.Name)
			assert.Equal(t, 0., ps.StdDev, ps.Name)
		}
		assert.Equal(t, 90., g.Stats()[PlaneU].Mean)
	})
}

func TestQuality(t *testing.T) {
	a := ramp(t, 16, 16, YUV420p)
	b := a.Copy()

	mse, err := MSE(a, b, PlaneY)
	require.NoError(t, err)
	assert.Equal(t, 0., mse)
	psnr, err := PSNR(a, b, PlaneY)
	require.NoError(t, err)
	assert.True(t, math.IsInf(psnr, 1))
	ssim, err := SSIM(a, b, PlaneY)
	require.NoError(t, err)
	assert.InDelta(t, 1., ssim, 1e-9)

	// every luma sample off by 2
	for i, v := range b.Plane(PlaneY) {
		if v < 250 {
			b.Plane(PlaneY)[i] = v + 2
		} else {
			b.Plane(PlaneY)[i] = v - 2
		}
	}
	mse, err = MSE(a, b, PlaneY)
	require.NoError(t, err)
	assert.Equal(t, 4., mse)
	psnr, err = PSNR(a, b, PlaneY)
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log10(255*255/4.), psnr, 1e-9)
	ssim, err = SSIM(a, b, PlaneY)
	require.NoError(t, err)
	assert.Less(t, ssim, 1.)
	assert.Greater(t, ssim, .9)

	// chroma planes are compared independently
	ssim, err = SSIM(a, b, PlaneU)
	require.NoError(t, err)
	assert.InDelta(t, 1., ssim, 1e-9)

	_, err = MSE(a, ramp(t, 8, 8, YUV420p), PlaneY)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = PSNR(a, b, 5)
	assert.ErrorIs(t, err, ErrInvalidPlane)
}
