package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	test := []struct {
		name   string
		color  color.RGBA
		format PixelFormat
		exp    [3]uint16
	}{
		{"white_420", color.RGBA{255, 255, 255, 255}, YUV420p, [3]uint16{255, 128, 128}},
		{"black_444", color.RGBA{0, 0, 0, 255}, YUV444p, [3]uint16{0, 128, 128}},
		{"red_rgb", color.RGBA{255, 0, 0, 255}, RGB24, [3]uint16{255, 0, 0}},
		{"gray_400", color.RGBA{100, 100, 100, 255}, YUV400, [3]uint16{100}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromImage(solid(4, 4, tt.color), tt.format, 8)
			require.NoError(t, err)
			assert.Equal(t, tt.format, f.Format())
			for p := range f.NumPlanes() {
				assert.Equal(t, tt.exp[p], f.At(p, 0, 0), "plane %d", p)
			}
		})
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			src.Set(x, y, color.RGBA{uint8(x * 60), uint8(y * 60), 100, 255})
		}
	}
	for _, format := range []PixelFormat{YUV444p, RGBp, RGB24} {
		f, err := FromImage(src, format, 8)
		require.NoError(t, err)
		out := f.ToRGBA()
		assert.Equal(t, src.Bounds(), out.Bounds())
		for i := range src.Pix {
			assert.InDelta(t, src.Pix[i], out.Pix[i], 2, "%s byte %d", format, i)
		}
	}

	// 10 bit gray renders through the top 8 bits
	g, err := New(1, 1, YUV400, 10)
	require.NoError(t, err)
	g.Fill(0, 1023)
	assert.Equal(t, []uint8{255, 255, 255, 255}, g.ToRGBA().Pix)
}

func TestConvert(t *testing.T) {
	f, err := New(4, 2, YUV444p, 8)
	require.NoError(t, err)
	f.Fill(PlaneY, 50)
	copy(f.Plane(PlaneU), []uint16{10, 20, 30, 40, 50, 60, 70, 80})
	f.Fill(PlaneV, 128)

	sub, err := f.Convert(YUV420p)
	require.NoError(t, err)
	// (10+20+50+60)/4, (30+40+70+80)/4
	assert.Equal(t, []uint16{35, 55}, sub.Plane(PlaneU))
	assert.Equal(t, f.Plane(PlaneY), sub.Plane(PlaneY))

	back, err := sub.Convert(YUV444p)
	require.NoError(t, err)
	assert.Equal(t, []uint16{35, 35, 55, 55, 35, 35, 55, 55}, back.Plane(PlaneU))

	gray, err := f.Convert(YUV400)
	require.NoError(t, err)
	assert.Equal(t, 1, gray.NumPlanes())
	assert.Equal(t, f.Plane(PlaneY), gray.Plane(0))

	yuv, err := gray.Convert(YUV422p)
	require.NoError(t, err)
	assert.Equal(t, []uint16{128, 128, 128, 128}, yuv.Plane(PlaneV))

	same, err := f.Convert(YUV444p)
	require.NoError(t, err)
	assert.Equal(t, f.Plane(PlaneU), same.Plane(PlaneU))

	rgb, err := gray.Convert(RGB24)
	require.NoError(t, err)
	assert.Equal(t, gray.Plane(0), rgb.Plane(PlaneB))

	_, err = f.Convert(PixelFormat(-1))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
