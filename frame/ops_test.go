package frame

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftBitDepth(t *testing.T) {
	f := ramp(t, 4, 4, YUV420p)
	f.Set(PlaneY, 0, 0, 255)

	up, err := f.ShiftBitDepth(10)
	require.NoError(t, err)
	assert.Equal(t, 10, up.BitDepth())
	assert.Equal(t, uint16(1020), up.At(PlaneY, 0, 0))

	down, err := up.ShiftBitDepth(8)
	require.NoError(t, err)
	assert.Equal(t, f.Plane(PlaneY), down.Plane(PlaneY))
	assert.Equal(t, f.Plane(PlaneV), down.Plane(PlaneV))

	_, err = f.ShiftBitDepth(0)
	assert.ErrorIs(t, err, ErrInvalidBitDepth)
}

func TestCrop(t *testing.T) {
	f := ramp(t, 8, 8, YUV420p)
	c, err := f.Crop(image.Rect(2, 2, 6, 8))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Width())
	assert.Equal(t, 6, c.Height())
	assert.Equal(t, 2, c.ChromaWidth())
	assert.Equal(t, 3, c.ChromaHeight())
	assert.Equal(t, f.At(PlaneY, 2, 2), c.At(PlaneY, 0, 0))
	assert.Equal(t, f.At(PlaneY, 5, 7), c.At(PlaneY, 3, 5))
	assert.Equal(t, f.At(PlaneU, 1, 1), c.At(PlaneU, 0, 0))
	assert.Equal(t, f.At(PlaneV, 2, 3), c.At(PlaneV, 1, 2))

	// clipped to bounds, reversed corners accepted
	c, err = f.Crop(image.Rect(10, 10, 6, 6))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), c.Bounds())
	assert.Equal(t, f.At(PlaneY, 6, 6), c.At(PlaneY, 0, 0))

	_, err = f.Crop(image.Rect(8, 8, 12, 12))
	assert.ErrorIs(t, err, ErrEmptyRect)
}

func TestShift(t *testing.T) {
	f := ramp(t, 8, 4, YUV444p)
	s := f.Shift(2, 1)
	for p := range 3 {
		// uncovered border is zero
		for x := range 8 {
			assert.Equal(t, uint16(0), s.At(p, x, 0))
		}
		for y := range 4 {
			assert.Equal(t, uint16(0), s.At(p, 0, y))
			assert.Equal(t, uint16(0), s.At(p, 1, y))
		}
		assert.Equal(t, f.At(p, 0, 0), s.At(p, 2, 1))
		assert.Equal(t, f.At(p, 5, 2), s.At(p, 7, 3))
	}

	left := f.Shift(-3, 0)
	assert.Equal(t, f.At(PlaneY, 3, 0), left.At(PlaneY, 0, 0))
	assert.Equal(t, uint16(0), left.At(PlaneY, 5, 0))

	sub := ramp(t, 8, 8, YUV420p).Shift(2, 2)
	assert.Equal(t, uint16(0), sub.At(PlaneU, 0, 0))
	assert.NotEqual(t, uint16(0), sub.At(PlaneU, 1, 1))

	t.Run("odd offset on subsampled chroma", func(t *testing.T) {
		g, err := New(4, 2, YUV420p, 8)
		require.NoError(t, err)
		g.Fill(PlaneY, 100)
		g.Fill(PlaneU, 200)

		right := g.Shift(1, 0)
		assert.Equal(t, []uint16{0, 100, 100, 100, 0, 100, 100, 100}, right.Plane(PlaneY))
		// column 0 covers luma 0..1 and luma 0 is now empty
		assert.Equal(t, []uint16{0, 200}, right.Plane(PlaneU))

		left := g.Shift(-1, 0)
		assert.Equal(t, []uint16{100, 100, 100, 0, 100, 100, 100, 0}, left.Plane(PlaneY))
		assert.Equal(t, []uint16{200, 0}, left.Plane(PlaneU))

		// an even offset moves whole chroma columns
		assert.Equal(t, []uint16{200, 0}, g.Shift(-2, 0).Plane(PlaneU))
		assert.Equal(t, []uint16{0, 200}, g.Shift(2, 0).Plane(PlaneU))
	})

	out := f.Shift(100, 0)
	assert.Equal(t, make([]uint16, 32), out.Plane(PlaneY))
}

func TestRotate(t *testing.T) {
	f := ramp(t, 4, 2, YUV444p)
	test := []struct {
		angle int
		w, h  int
		// (x, y) in rotated frame and where it came from
		dx, dy, sx, sy int
	}{
		{90, 2, 4, 0, 0, 0, 1},
		{90, 2, 4, 1, 0, 0, 0},
		{90, 2, 4, 0, 3, 3, 1},
		{180, 4, 2, 0, 0, 3, 1},
		{270, 2, 4, 0, 0, 3, 0},
		{270, 2, 4, 1, 3, 0, 1},
		{-90, 2, 4, 0, 0, 3, 0},
		{360, 4, 2, 1, 1, 1, 1},
	}
	for _, tt := range test {
		r, err := f.Rotate(tt.angle)
		require.NoError(t, err)
		assert.Equal(t, tt.w, r.Width(), "angle %d", tt.angle)
		assert.Equal(t, tt.h, r.Height(), "angle %d", tt.angle)
		for p := range 3 {
			assert.Equal(t, f.At(p, tt.sx, tt.sy), r.At(p, tt.dx, tt.dy), "angle %d plane %d", tt.angle, p)
		}
	}

	_, err := f.Rotate(45)
	assert.ErrorIs(t, err, ErrInvalidAngle)

	// four quarter turns restore the frame
	g := ramp(t, 6, 4, YUV420p)
	r := g
	for range 4 {
		r, err = r.Rotate(90)
		require.NoError(t, err)
	}
	assert.Equal(t, g.Plane(PlaneY), r.Plane(PlaneY))
	assert.Equal(t, g.Plane(PlaneU), r.Plane(PlaneU))

	r, err = g.Rotate(90)
	require.NoError(t, err)
	assert.Equal(t, 2, r.ChromaWidth())
	assert.Equal(t, 3, r.ChromaHeight())
}

func TestMirror(t *testing.T) {
	f := ramp(t, 4, 2, YUV444p)
	h := f.Mirror(true)
	assert.Equal(t, f.At(PlaneY, 0, 0), h.At(PlaneY, 3, 0))
	v := f.Mirror(false)
	assert.Equal(t, f.At(PlaneY, 0, 0), v.At(PlaneY, 0, 1))
	assert.Equal(t, f.Plane(PlaneY), h.Mirror(true).Plane(PlaneY))
}

func TestBinarize(t *testing.T) {
	f, err := New(4, 1, YUV420p, 8)
	require.NoError(t, err)
	copy(f.Plane(PlaneY), []uint16{0, 99, 100, 250})

	b := f.Binarize(100, false)
	assert.Equal(t, YUV400, b.Format())
	assert.Equal(t, []uint16{0, 0, 255, 255}, b.Plane(0))

	b = f.Binarize(100, true)
	assert.Equal(t, []uint16{255, 255, 0, 0}, b.Plane(0))

	rgb, err := New(2, 1, RGB24, 8)
	require.NoError(t, err)
	rgb.Fill(PlaneR, 255)
	rgb.Fill(PlaneG, 255)
	rgb.Fill(PlaneB, 255)
	rgb.Set(PlaneR, 1, 0, 0)
	rgb.Set(PlaneG, 1, 0, 0)
	rgb.Set(PlaneB, 1, 0, 0)
	assert.Equal(t, []uint16{255, 0}, rgb.Binarize(128, false).Plane(0))
}

func TestComponent(t *testing.T) {
	f := ramp(t, 8, 4, YUV420p)
	c, err := f.Component(PlaneV)
	require.NoError(t, err)
	assert.Equal(t, YUV400, c.Format())
	assert.Equal(t, 4, c.Width())
	assert.Equal(t, 2, c.Height())
	assert.Equal(t, f.Plane(PlaneV), c.Plane(0))

	_, err = f.Component(3)
	assert.ErrorIs(t, err, ErrInvalidPlane)
}

func TestDifference(t *testing.T) {
	a, _ := New(2, 1, YUV400, 8)
	b, _ := New(2, 1, YUV400, 8)
	copy(a.Plane(0), []uint16{10, 200})
	copy(b.Plane(0), []uint16{30, 100})

	d, err := Difference(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint16{108, 228}, d.Plane(0))

	d, err = AbsDifference(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint16{20, 100}, d.Plane(0))

	c, _ := New(2, 2, YUV400, 8)
	_, err = Difference(a, c)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = AbsDifference(a, c)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestResize(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		for _, k := range []Interpolator{Nearest, Bilinear, CatmullRom} {
			f, err := New(8, 8, YUV420p, 10)
			require.NoError(t, err)
			f.Fill(PlaneY, 700)
			f.Fill(PlaneU, 300)
			f.Fill(PlaneV, 512)
			got, err := f.Resize(12, 6, k)
			require.NoError(t, err)
			assert.Equal(t, "12x6 YUV420p 10bit", got.String())
			assert.Equal(t, 6, got.PlaneWidth(PlaneU))
			assert.Equal(t, 700, int(got.At(PlaneY, 11, 5)))
			assert.Equal(t, 300, int(got.At(PlaneU, 3, 2)))
			assert.Equal(t, 512, int(got.At(PlaneV, 0, 0)))
		}
	})
	t.Run("nearest doubles", func(t *testing.T) {
		f, err := New(2, 1, YUV400, 8)
		require.NoError(t, err)
		f.Set(PlaneY, 0, 0, 10)
		f.Set(PlaneY, 1, 0, 200)
		got, err := f.Resize(4, 2, Nearest)
		require.NoError(t, err)
		assert.Equal(t, []uint16{10, 10, 200, 200, 10, 10, 200, 200}, got.Plane(PlaneY))
	})
	t.Run("invalid", func(t *testing.T) {
		f := ramp(t, 4, 4, YUV420p)
		_, err := f.Resize(0, 4, Nearest)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
}
