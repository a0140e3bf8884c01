// Package view maps between window and image coordinates and draws the
// overlays of a zoomable frame view: grid, selection and mask.
package view

import (
	"image"
	"math"

	"github.com/yyyoichi/playuver/frame"
)

const (
	MinZoom = 1.0 / 32
	MaxZoom = 64.0
	// ZoomStep is the factor used by ZoomIn and ZoomOut when none is given.
	ZoomStep = 2.0
)

// Area is the visible part of an image inside a viewport. Window
// coordinates are viewport pixels, image coordinates are frame pixels.
type Area struct {
	size     image.Point
	viewport image.Point
	zoom     float64
	// scroll is the window position of the viewport when the scaled image
	// exceeds it.
	scroll image.Point
}

func NewArea(size, viewport image.Point) *Area {
	return &Area{size: size, viewport: viewport, zoom: 1}
}

func (a *Area) Zoom() float64          { return a.zoom }
func (a *Area) ImageSize() image.Point { return a.size }
func (a *Area) Viewport() image.Point  { return a.viewport }

// SetZoom clamps z to [MinZoom, MaxZoom] and returns the zoom applied.
// The view stays centered on the same image point.
func (a *Area) SetZoom(z float64) float64 {
	if math.IsNaN(z) || z <= 0 {
		z = 1
	}
	z = min(max(z, MinZoom), MaxZoom)
	center := a.viewportCenter()
	a.zoom = z
	a.scroll = image.Pt(
		int(math.Floor(center[0]*z))-a.viewport.X/2,
		int(math.Floor(center[1]*z))-a.viewport.Y/2,
	)
	a.clampScroll()
	return a.zoom
}

// viewportCenter returns the image position under the viewport center.
func (a *Area) viewportCenter() [2]float64 {
	off := a.Offset()
	return [2]float64{
		float64(a.viewport.X/2-off.X) / a.zoom,
		float64(a.viewport.Y/2-off.Y) / a.zoom,
	}
}

func (a *Area) ZoomIn(factor float64) float64 {
	if factor <= 1 {
		factor = ZoomStep
	}
	return a.SetZoom(a.zoom * factor)
}

func (a *Area) ZoomOut(factor float64) float64 {
	if factor <= 1 {
		factor = ZoomStep
	}
	return a.SetZoom(a.zoom / factor)
}

// ZoomToFit picks the largest zoom that shows the whole image.
func (a *Area) ZoomToFit() float64 {
	if a.size.X <= 0 || a.size.Y <= 0 || a.viewport.X <= 0 || a.viewport.Y <= 0 {
		return a.SetZoom(1)
	}
	return a.SetZoom(min(
		float64(a.viewport.X)/float64(a.size.X),
		float64(a.viewport.Y)/float64(a.size.Y),
	))
}

func (a *Area) SetViewport(viewport image.Point) {
	a.viewport = viewport
	a.clampScroll()
}

func (a *Area) SetImageSize(size image.Point) {
	a.size = size
	a.clampScroll()
}

// ScaledSize is the image size in window pixels.
func (a *Area) ScaledSize() image.Point {
	return image.Pt(
		int(math.Ceil(float64(a.size.X)*a.zoom)),
		int(math.Ceil(float64(a.size.Y)*a.zoom)),
	)
}

// Offset is the window position of the image origin. A scaled image smaller
// than the viewport is centered, a larger one is shifted by the scroll.
func (a *Area) Offset() image.Point {
	s := a.ScaledSize()
	return image.Pt(
		axisOffset(a.viewport.X, s.X, a.scroll.X),
		axisOffset(a.viewport.Y, s.Y, a.scroll.Y),
	)
}

func axisOffset(viewport, scaled, scroll int) int {
	if scaled < viewport {
		return (viewport - scaled) / 2
	}
	return -scroll
}

// Pan scrolls the view by a window delta. Axes where the image fits the
// viewport do not move.
func (a *Area) Pan(dx, dy int) {
	a.scroll = a.scroll.Add(image.Pt(dx, dy))
	a.clampScroll()
}

func (a *Area) clampScroll() {
	s := a.ScaledSize()
	a.scroll.X = min(max(a.scroll.X, 0), max(s.X-a.viewport.X, 0))
	a.scroll.Y = min(max(a.scroll.Y, 0), max(s.Y-a.viewport.Y, 0))
}

// WindowToImage maps a window point to the image pixel under it.
func (a *Area) WindowToImage(p image.Point) image.Point {
	off := a.Offset()
	return image.Pt(
		int(math.Floor(float64(p.X-off.X)/a.zoom)),
		int(math.Floor(float64(p.Y-off.Y)/a.zoom)),
	)
}

// ImageToWindow maps an image point to the window position of its top-left
// corner.
func (a *Area) ImageToWindow(p image.Point) image.Point {
	off := a.Offset()
	return image.Pt(
		int(math.Floor(float64(p.X)*a.zoom))+off.X,
		int(math.Floor(float64(p.Y)*a.zoom))+off.Y,
	)
}

// WindowRectToImage returns the image pixels touched by a window rectangle.
func (a *Area) WindowRectToImage(r image.Rectangle) image.Rectangle {
	r = r.Canon()
	off := a.Offset()
	return image.Rectangle{
		Min: a.WindowToImage(r.Min),
		Max: image.Pt(
			int(math.Ceil(float64(r.Max.X-off.X)/a.zoom)),
			int(math.Ceil(float64(r.Max.Y-off.Y)/a.zoom)),
		),
	}
}

func (a *Area) ImageRectToWindow(r image.Rectangle) image.Rectangle {
	r = r.Canon()
	return image.Rectangle{Min: a.ImageToWindow(r.Min), Max: a.ImageToWindow(r.Max)}
}

// Contains reports whether an image point lies inside the image.
func (a *Area) Contains(p image.Point) bool {
	return p.In(image.Rectangle{Max: a.size})
}

// PixelAt returns the pixel under a window point, for status displays.
func (a *Area) PixelAt(f *frame.Frame, window image.Point) (frame.Pixel, image.Point, bool) {
	p := a.WindowToImage(window)
	if !a.Contains(p) || !p.In(f.Bounds()) {
		return frame.Pixel{}, p, false
	}
	return f.PixelAt(p.X, p.Y), p, true
}
