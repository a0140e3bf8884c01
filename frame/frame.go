// Package frame holds planar video frames and the pixel operations on them.
//
// A Frame keeps one row-major []uint16 slice per plane. Chroma plane
// dimensions follow the subsampling of the frame's PixelFormat, rounded up
// for odd sizes. Every operation returns a new frame and leaves its
// receiver untouched.
package frame

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrInvalidSize     = errors.New("invalid frame size")
	ErrInvalidBitDepth = errors.New("invalid bit depth")
	ErrInvalidFormat   = errors.New("invalid pixel format")
	ErrInvalidPlane    = errors.New("invalid plane")
	ErrInvalidAngle    = errors.New("rotation angle must be a multiple of 90")
	ErrShapeMismatch   = errors.New("frames differ in size, format or bit depth")
	ErrEmptyRect       = errors.New("rectangle does not intersect the frame")
)

// MaxBitDepth is the deepest sample supported.
const MaxBitDepth = 16

// Plane indices.
const (
	PlaneY = 0
	PlaneU = 1
	PlaneV = 2

	PlaneR = 0
	PlaneG = 1
	PlaneB = 2
)

type Frame struct {
	width, height int
	format        PixelFormat
	bitDepth      int
	planes        [][]uint16
}

// New allocates a zeroed frame.
func New(width, height int, format PixelFormat, bitDepth int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if bitDepth < 1 || bitDepth > MaxBitDepth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBitDepth, bitDepth)
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, int(format))
	}
	f := &Frame{
		width:    width,
		height:   height,
		format:   format,
		bitDepth: bitDepth,
		planes:   make([][]uint16, format.NumPlanes()),
	}
	for p := range f.planes {
		pw, ph := format.PlaneSize(p, width, height)
		f.planes[p] = make([]uint16, pw*ph)
	}
	return f, nil
}

func mustNew(width, height int, format PixelFormat, bitDepth int) *Frame {
	f, err := New(width, height, format, bitDepth)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Frame) Width() int              { return f.width }
func (f *Frame) Height() int             { return f.height }
func (f *Frame) Format() PixelFormat     { return f.format }
func (f *Frame) BitDepth() int           { return f.bitDepth }
func (f *Frame) NumPlanes() int          { return len(f.planes) }
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.width, f.height) }

// MaxValue is the largest sample value at the frame's bit depth.
func (f *Frame) MaxValue() int { return 1<<f.bitDepth - 1 }

// ChromaWidth returns the width of the chroma planes.
func (f *Frame) ChromaWidth() int { return chromaLen(f.width, f.format.Log2ChromaWidth()) }

// ChromaHeight returns the height of the chroma planes.
func (f *Frame) ChromaHeight() int { return chromaLen(f.height, f.format.Log2ChromaHeight()) }

func (f *Frame) PlaneWidth(p int) int {
	w, _ := f.format.PlaneSize(p, f.width, f.height)
	return w
}

func (f *Frame) PlaneHeight(p int) int {
	_, h := f.format.PlaneSize(p, f.width, f.height)
	return h
}

// Plane returns the backing slice of plane p. Writes through it modify the frame.
func (f *Frame) Plane(p int) []uint16 {
	if p < 0 || p >= len(f.planes) {
		return nil
	}
	return f.planes[p]
}

// At returns the sample of plane p at plane coordinates (x, y).
// Out of range coordinates return 0.
func (f *Frame) At(p, x, y int) uint16 {
	if p < 0 || p >= len(f.planes) {
		return 0
	}
	w, h := f.format.PlaneSize(p, f.width, f.height)
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	return f.planes[p][y*w+x]
}

// Set writes a sample of plane p, clipped to the bit depth.
// Out of range coordinates are ignored.
func (f *Frame) Set(p, x, y int, v int) {
	if p < 0 || p >= len(f.planes) {
		return
	}
	w, h := f.format.PlaneSize(p, f.width, f.height)
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	f.planes[p][y*w+x] = f.clip(v)
}

// Fill sets every sample of plane p to v.
func (f *Frame) Fill(p int, v int) {
	if p < 0 || p >= len(f.planes) {
		return
	}
	c := f.clip(v)
	for i := range f.planes[p] {
		f.planes[p][i] = c
	}
}

// SameShape reports whether o has the same size, format and bit depth.
func (f *Frame) SameShape(o *Frame) bool {
	return o != nil && f.width == o.width && f.height == o.height &&
		f.format == o.format && f.bitDepth == o.bitDepth
}

func (f *Frame) Copy() *Frame {
	c := *f
	c.planes = make([][]uint16, len(f.planes))
	for p := range f.planes {
		c.planes[p] = make([]uint16, len(f.planes[p]))
		_ = copy(c.planes[p], f.planes[p])
	}
	return &c
}

// CopyFrom overwrites the samples of f with those of src.
func (f *Frame) CopyFrom(src *Frame) error {
	if !f.SameShape(src) {
		return ErrShapeMismatch
	}
	for p := range f.planes {
		_ = copy(f.planes[p], src.planes[p])
	}
	return nil
}

func (f *Frame) String() string {
	return fmt.Sprintf("%dx%d %s %dbit", f.width, f.height, f.format, f.bitDepth)
}

func (f *Frame) clip(v int) uint16 {
	if v < 0 {
		return 0
	}
	if max := f.MaxValue(); v > max {
		return uint16(max)
	}
	return uint16(v)
}

// sampleIndex maps a luma position onto the slice index of plane p.
func (f *Frame) sampleIndex(p, x, y int) int {
	if p == 0 {
		return y*f.width + x
	}
	lw, lh := f.format.Log2ChromaWidth(), f.format.Log2ChromaHeight()
	return (y>>lh)*f.ChromaWidth() + (x >> lw)
}
