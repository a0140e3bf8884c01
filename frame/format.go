package frame

import (
	"fmt"
	"strings"
)

// ColorSpace is the color model of a pixel format.
type ColorSpace int

const (
	ColorSpaceYUV ColorSpace = iota
	ColorSpaceRGB
	ColorSpaceGray
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceYUV:
		return "YUV"
	case ColorSpaceRGB:
		return "RGB"
	case ColorSpaceGray:
		return "Gray"
	}
	return fmt.Sprintf("ColorSpace(%d)", int(c))
}

// Layout describes how the samples of a format are arranged in a raw file.
type Layout int

const (
	LayoutPlanar     Layout = iota // one plane after another
	LayoutSemiPlanar               // luma plane followed by interleaved chroma
	LayoutPackedYUYV               // Y0 U Y1 V per pixel pair
	LayoutPackedRGB                // R G B per pixel
	LayoutPackedBGR                // B G R per pixel
)

// PixelFormat identifies the memory layout and subsampling of a frame.
type PixelFormat int

const (
	YUV420p PixelFormat = iota
	YUV422p
	YUV444p
	YUV400
	YUYV422
	NV12
	RGB24
	BGR24
	RGBp
)

type formatDesc struct {
	name         string
	aliases      []string
	space        ColorSpace
	planes       int
	log2w, log2h int
	layout       Layout
}

var formats = [...]formatDesc{
	YUV420p: {"YUV420p", []string{"i420", "yuv420", "420", "yuv420p"}, ColorSpaceYUV, 3, 1, 1, LayoutPlanar},
	YUV422p: {"YUV422p", []string{"yuv422", "422", "i422"}, ColorSpaceYUV, 3, 1, 0, LayoutPlanar},
	YUV444p: {"YUV444p", []string{"yuv444", "444", "i444"}, ColorSpaceYUV, 3, 0, 0, LayoutPlanar},
	YUV400:  {"YUV400", []string{"gray", "grey", "400", "mono", "y"}, ColorSpaceGray, 1, 0, 0, LayoutPlanar},
	YUYV422: {"YUYV422", []string{"yuyv", "yuy2", "yuyv422"}, ColorSpaceYUV, 3, 1, 0, LayoutPackedYUYV},
	NV12:    {"NV12", []string{"nv12"}, ColorSpaceYUV, 3, 1, 1, LayoutSemiPlanar},
	RGB24:   {"RGB24", []string{"rgb", "rgb24"}, ColorSpaceRGB, 3, 0, 0, LayoutPackedRGB},
	BGR24:   {"BGR24", []string{"bgr", "bgr24"}, ColorSpaceRGB, 3, 0, 0, LayoutPackedBGR},
	RGBp:    {"RGBp", []string{"rgbp", "gbrp", "rgb_planar"}, ColorSpaceRGB, 3, 0, 0, LayoutPlanar},
}

// PixelFormats returns every supported format.
func PixelFormats() []PixelFormat {
	list := make([]PixelFormat, len(formats))
	for i := range formats {
		list[i] = PixelFormat(i)
	}
	return list
}

// ParsePixelFormat looks a format up by its name or one of its aliases.
// Matching is case-insensitive.
func ParsePixelFormat(name string) (PixelFormat, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, d := range formats {
		if strings.ToLower(d.name) == n {
			return PixelFormat(i), nil
		}
		for _, a := range d.aliases {
			if a == n {
				return PixelFormat(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

func (f PixelFormat) Valid() bool {
	return f >= 0 && int(f) < len(formats)
}

func (f PixelFormat) desc() formatDesc {
	if !f.Valid() {
		return formatDesc{name: fmt.Sprintf("PixelFormat(%d)", int(f))}
	}
	return formats[f]
}

func (f PixelFormat) String() string { return f.desc().name }

// Name returns the canonical name of the format.
func (f PixelFormat) Name() string { return f.desc().name }

func (f PixelFormat) ColorSpace() ColorSpace { return f.desc().space }

// NumPlanes is the number of planes a decoded frame holds in memory.
// Packed and semi-planar layouts are unpacked into separate planes.
func (f PixelFormat) NumPlanes() int { return f.desc().planes }

func (f PixelFormat) Layout() Layout { return f.desc().layout }

// Log2ChromaWidth is the horizontal chroma subsampling shift.
func (f PixelFormat) Log2ChromaWidth() int { return f.desc().log2w }

// Log2ChromaHeight is the vertical chroma subsampling shift.
func (f PixelFormat) Log2ChromaHeight() int { return f.desc().log2h }

// PlaneName returns a short label for plane p.
func (f PixelFormat) PlaneName(p int) string {
	switch f.ColorSpace() {
	case ColorSpaceGray:
		if p == 0 {
			return "Y"
		}
	case ColorSpaceYUV:
		if p >= 0 && p < 3 {
			return [3]string{"Y", "Cb", "Cr"}[p]
		}
	case ColorSpaceRGB:
		if p >= 0 && p < 3 {
			return [3]string{"R", "G", "B"}[p]
		}
	}
	return ""
}

// PlaneSize returns the dimensions of plane p for a frame of w x h.
func (f PixelFormat) PlaneSize(p, w, h int) (int, int) {
	if p == 0 {
		return w, h
	}
	return chromaLen(w, f.Log2ChromaWidth()), chromaLen(h, f.Log2ChromaHeight())
}

// SamplesPerFrame is the number of samples stored for a w x h frame.
func (f PixelFormat) SamplesPerFrame(w, h int) int {
	total := 0
	for p := range f.NumPlanes() {
		pw, ph := f.PlaneSize(p, w, h)
		total += pw * ph
	}
	return total
}

// BytesPerFrame is the size of one raw frame. Samples deeper than 8 bits
// take two bytes.
func (f PixelFormat) BytesPerFrame(w, h, bitDepth int) int {
	return f.SamplesPerFrame(w, h) * BytesPerSample(bitDepth)
}

// BytesPerSample returns 1 for bit depths up to 8 and 2 above.
func BytesPerSample(bitDepth int) int {
	if bitDepth > 8 {
		return 2
	}
	return 1
}

func chromaLen(n, log2 int) int {
	return (n + (1 << log2) - 1) >> log2
}
