package view

import (
	"image"
	"image/color"

	"github.com/yyyoichi/playuver/frame"
	"golang.org/x/image/draw"
)

// RenderOptions selects the overlays drawn by Render.
type RenderOptions struct {
	Grid *Grid
	Mask *Mask
	// Selection is outlined when not empty.
	Selection      image.Rectangle
	SelectionColor color.Color
	MaskColor      color.RGBA
	Background     color.Color
	// Smooth filters the image when zoomed out instead of dropping pixels.
	Smooth bool
}

var (
	defaultMaskColor      = color.RGBA{R: 255, A: 255}
	defaultSelectionColor = color.RGBA{R: 255, G: 255, A: 255}
)

// Render draws f as seen through a, viewport sized.
func Render(f *frame.Frame, a *Area, opts RenderOptions) *image.RGBA {
	vp := a.Viewport()
	dst := image.NewRGBA(image.Rect(0, 0, max(vp.X, 0), max(vp.Y, 0)))
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	src := f.ToRGBA()
	if opts.Mask != nil {
		tint(src, opts.Mask, opts.MaskColor)
	}
	target := a.ImageRectToWindow(src.Bounds())
	var scaler draw.Scaler = draw.NearestNeighbor
	if opts.Smooth && a.Zoom() < 1 {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(dst, target, src, src.Bounds(), draw.Src, nil)

	if opts.Grid != nil {
		opts.Grid.Draw(dst, a)
	}
	if !opts.Selection.Empty() {
		c := opts.SelectionColor
		if c == nil {
			c = defaultSelectionColor
		}
		outline(dst, a.ImageRectToWindow(opts.Selection), c)
	}
	return dst
}

// tint blends the mask color over masked pixels at half strength.
func tint(img *image.RGBA, m *Mask, c color.RGBA) {
	if c == (color.RGBA{}) {
		c = defaultMaskColor
	}
	b := img.Bounds().Intersect(m.Bounds())
	bits := m.Bools()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !bits[y*m.width+x] {
				continue
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8((uint16(img.Pix[i+0]) + uint16(c.R)) / 2)
			img.Pix[i+1] = uint8((uint16(img.Pix[i+1]) + uint16(c.G)) / 2)
			img.Pix[i+2] = uint8((uint16(img.Pix[i+2]) + uint16(c.B)) / 2)
		}
	}
}

// outline draws the one pixel border just inside r.
func outline(dst *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	clip := dst.Bounds()
	set := func(x, y int) {
		if image.Pt(x, y).In(clip) {
			dst.Set(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y)
		set(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y)
		set(r.Max.X-1, y)
	}
}
