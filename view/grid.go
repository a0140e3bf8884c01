package view

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
)

type GridStyle int

const (
	// GridDotted marks each intersection with a single pixel.
	GridDotted GridStyle = iota
	// GridCross marks each intersection with a small cross.
	GridCross
	GridDashed
	GridSolid
)

var gridStyleNames = [...]string{"dotted", "cross", "dashed", "solid"}

func (s GridStyle) String() string {
	if s < 0 || int(s) >= len(gridStyleNames) {
		return fmt.Sprintf("GridStyle(%d)", int(s))
	}
	return gridStyleNames[s]
}

func ParseGridStyle(name string) (GridStyle, error) {
	for i, n := range gridStyleNames {
		if strings.EqualFold(name, n) {
			return GridStyle(i), nil
		}
	}
	return 0, fmt.Errorf("unknown grid style %q", name)
}

const (
	// snapTolerance is the fraction of the spacing within which a point
	// snaps to an intersection.
	snapTolerance = 0.25
	crossArm      = 2
	dashLength    = 4
)

// Grid is an overlay of evenly spaced lines in image space.
type Grid struct {
	HSpacing int
	VSpacing int
	Style    GridStyle
	Visible  bool
	Color    color.Color
}

func DefaultGrid() Grid {
	return Grid{HSpacing: 8, VSpacing: 8, Style: GridSolid, Color: color.White}
}

func (g Grid) valid() bool { return g.HSpacing > 0 && g.VSpacing > 0 }

// NearPos returns the grid intersection closest to p when p lies within a
// quarter of the spacing of it on both axes.
func (g Grid) NearPos(p image.Point) (image.Point, bool) {
	if !g.valid() {
		return p, false
	}
	nx, okx := nearest(p.X, g.HSpacing)
	ny, oky := nearest(p.Y, g.VSpacing)
	if !okx || !oky {
		return p, false
	}
	return image.Pt(nx, ny), true
}

func nearest(v, spacing int) (int, bool) {
	n := int(math.Round(float64(v)/float64(spacing))) * spacing
	d := math.Abs(float64(v - n))
	return n, d <= snapTolerance*float64(spacing)
}

// SnapRect grows r to whole grid cells and clips it to bounds.
func (g Grid) SnapRect(r, bounds image.Rectangle) image.Rectangle {
	r = r.Canon()
	if g.valid() {
		r.Min.X = floorTo(r.Min.X, g.HSpacing)
		r.Min.Y = floorTo(r.Min.Y, g.VSpacing)
		r.Max.X = ceilTo(r.Max.X, g.HSpacing)
		r.Max.Y = ceilTo(r.Max.Y, g.VSpacing)
	}
	return r.Intersect(bounds)
}

func floorTo(v, step int) int {
	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}
	return q * step
}

func ceilTo(v, step int) int {
	return -floorTo(-v, step)
}

// Draw paints the grid over the image part of dst.
func (g Grid) Draw(dst draw.Image, a *Area) {
	if !g.Visible || !g.valid() {
		return
	}
	c := g.Color
	if c == nil {
		c = color.White
	}
	clip := a.ImageRectToWindow(image.Rectangle{Max: a.ImageSize()}).Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	set := func(x, y int) {
		if image.Pt(x, y).In(clip) {
			dst.Set(x, y, c)
		}
	}
	size := a.ImageSize()
	var xs, ys []int
	for x := 0; x <= size.X; x += g.HSpacing {
		xs = append(xs, a.ImageToWindow(image.Pt(x, 0)).X)
	}
	for y := 0; y <= size.Y; y += g.VSpacing {
		ys = append(ys, a.ImageToWindow(image.Pt(0, y)).Y)
	}

	switch g.Style {
	case GridDotted:
		for _, y := range ys {
			for _, x := range xs {
				set(x, y)
			}
		}
	case GridCross:
		for _, y := range ys {
			for _, x := range xs {
				for d := -crossArm; d <= crossArm; d++ {
					set(x+d, y)
					set(x, y+d)
				}
			}
		}
	case GridDashed, GridSolid:
		on := func(i int) bool {
			return g.Style == GridSolid || (i/dashLength)%2 == 0
		}
		for _, x := range xs {
			for y := clip.Min.Y; y < clip.Max.Y; y++ {
				if on(y - clip.Min.Y) {
					set(x, y)
				}
			}
		}
		for _, y := range ys {
			for x := clip.Min.X; x < clip.Max.X; x++ {
				if on(x - clip.Min.X) {
					set(x, y)
				}
			}
		}
	}
}
