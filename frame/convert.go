package frame

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/yyyoichi/playuver/internal/yuv"
)

// ToRGBA renders the frame as an 8-bit RGBA image.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	rows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range f.width {
				px := f.PixelAt(x, y).Convert(ColorSpaceRGB)
				i := img.PixOffset(x, y)
				img.Pix[i+0] = yuv.To8(uint16(px.C[0]), f.bitDepth)
				img.Pix[i+1] = yuv.To8(uint16(px.C[1]), f.bitDepth)
				img.Pix[i+2] = yuv.To8(uint16(px.C[2]), f.bitDepth)
				img.Pix[i+3] = 0xff
			}
		}
	}
	bands := min(runtime.NumCPU(), f.height)
	step := (f.height + bands - 1) / bands
	var wg sync.WaitGroup
	for y0 := 0; y0 < f.height; y0 += step {
		wg.Add(1)
		go func(y0 int) {
			defer wg.Done()
			rows(y0, min(y0+step, f.height))
		}(y0)
	}
	wg.Wait()
	return img
}

// FromImage converts an image into a frame of the given format and bit depth.
func FromImage(src image.Image, format PixelFormat, bitDepth int) (*Frame, error) {
	b := src.Bounds()
	rgb, err := New(b.Dx(), b.Dy(), RGBp, bitDepth)
	if err != nil {
		return nil, err
	}
	pixels := make([]color.Color, rgb.width*rgb.height)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels[idx] = src.At(x, y)
			idx++
		}
	}
	yuv.ColorToRGBBatch(pixels, rgb.planes[PlaneR], rgb.planes[PlaneG], rgb.planes[PlaneB], bitDepth)
	if format == RGBp {
		return rgb, nil
	}
	return rgb.Convert(format)
}

// Convert returns the frame in another pixel format. Chroma is replicated
// when upsampling and averaged when downsampling.
func (f *Frame) Convert(target PixelFormat) (*Frame, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, int(target))
	}
	if target == f.format {
		return f.Copy(), nil
	}
	full := convertSpace(f.upsample(), f.format.ColorSpace(), target.ColorSpace(), f.bitDepth)
	dst := mustNew(f.width, f.height, target, f.bitDepth)
	dst.downsample(full)
	return dst, nil
}

// upsample returns every plane at luma resolution.
func (f *Frame) upsample() [][]uint16 {
	full := make([][]uint16, len(f.planes))
	area := f.width * f.height
	for p := range f.planes {
		if len(f.planes[p]) == area {
			full[p] = append([]uint16(nil), f.planes[p]...)
			continue
		}
		full[p] = make([]uint16, area)
		for y := range f.height {
			for x := range f.width {
				full[p][y*f.width+x] = f.planes[p][f.sampleIndex(p, x, y)]
			}
		}
	}
	return full
}

// downsample fills the planes of f from luma resolution planes.
func (f *Frame) downsample(full [][]uint16) {
	lw, lh := f.format.Log2ChromaWidth(), f.format.Log2ChromaHeight()
	for p := range f.planes {
		if len(f.planes[p]) == len(full[p]) {
			_ = copy(f.planes[p], full[p])
			continue
		}
		pw, ph := f.PlaneWidth(p), f.PlaneHeight(p)
		for cy := range ph {
			for cx := range pw {
				sum, n := 0, 0
				for y := cy << lh; y < min((cy+1)<<lh, f.height); y++ {
					for x := cx << lw; x < min((cx+1)<<lw, f.width); x++ {
						sum += int(full[p][y*f.width+x])
						n++
					}
				}
				f.planes[p][cy*pw+cx] = uint16((sum + n/2) / n)
			}
		}
	}
}

func convertSpace(planes [][]uint16, from, to ColorSpace, bitDepth int) [][]uint16 {
	if from == to {
		return planes
	}
	area := len(planes[0])
	alloc := func() [][]uint16 {
		return [][]uint16{make([]uint16, area), make([]uint16, area), make([]uint16, area)}
	}
	switch from {
	case ColorSpaceGray:
		if to == ColorSpaceRGB {
			return [][]uint16{planes[0], append([]uint16(nil), planes[0]...), append([]uint16(nil), planes[0]...)}
		}
		out := [][]uint16{planes[0], make([]uint16, area), make([]uint16, area)}
		delta := uint16(yuv.Delta(bitDepth))
		for i := range area {
			out[1][i], out[2][i] = delta, delta
		}
		return out
	case ColorSpaceYUV:
		if to == ColorSpaceGray {
			return planes[:1]
		}
		out := alloc()
		yuv.YUVToRGBBatch(planes[0], planes[1], planes[2], out[0], out[1], out[2], bitDepth)
		return out
	case ColorSpaceRGB:
		out := alloc()
		yuv.RGBToYUVBatch(planes[0], planes[1], planes[2], out[0], out[1], out[2], bitDepth)
		if to == ColorSpaceGray {
			return out[:1]
		}
		return out
	}
	return planes
}

// luma returns the luma plane at luma resolution. RGB frames are converted.
func (f *Frame) luma() []uint16 {
	if f.format.ColorSpace() != ColorSpaceRGB {
		return f.planes[0]
	}
	return convertSpace(f.planes, ColorSpaceRGB, ColorSpaceGray, f.bitDepth)[0]
}
