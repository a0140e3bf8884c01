package view

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/playuver/frame"
)

func checker(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(2, 2, frame.YUV400, 8)
	require.NoError(t, err)
	f.Set(0, 1, 0, 255)
	f.Set(0, 0, 1, 255)
	return f
}

func TestRenderZoom(t *testing.T) {
	f := checker(t)
	a := NewArea(image.Pt(2, 2), image.Pt(4, 4))
	a.SetZoom(2)

	img := Render(f, a, RenderOptions{})
	require.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	black := color.RGBA{A: 255}
	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, black, img.RGBAAt(0, 0))
	assert.Equal(t, black, img.RGBAAt(1, 1))
	assert.Equal(t, white, img.RGBAAt(2, 0))
	assert.Equal(t, white, img.RGBAAt(3, 1))
	assert.Equal(t, white, img.RGBAAt(0, 3))
	assert.Equal(t, black, img.RGBAAt(3, 3))
}

func TestRenderOverlays(t *testing.T) {
	f := checker(t)
	a := NewArea(image.Pt(2, 2), image.Pt(4, 4))
	a.SetZoom(2)

	mask := NewMask(2, 2)
	mask.Add(image.Rect(1, 0, 2, 1))
	img := Render(f, a, RenderOptions{
		Mask:      mask,
		Selection: image.Rect(0, 0, 1, 1),
	})
	assert.Equal(t, color.RGBA{255, 127, 127, 255}, img.RGBAAt(2, 0), "mask tint")
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, img.RGBAAt(1, 1), "selection outline")
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(3, 3))
}

func TestRenderBackground(t *testing.T) {
	f := checker(t)
	a := NewArea(image.Pt(2, 2), image.Pt(4, 4))
	blue := color.RGBA{B: 255, A: 255}

	img := Render(f, a, RenderOptions{Background: blue})
	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(2, 1))

	grid := Grid{HSpacing: 1, VSpacing: 1, Style: GridDotted, Visible: true, Color: color.RGBA{G: 255, A: 255}}
	img = Render(f, a, RenderOptions{Grid: &grid})
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(2, 2))
}
