package frame

import (
	"fmt"
	"image"

	"github.com/yyyoichi/playuver/internal/yuv"
	"golang.org/x/image/draw"
)

// ShiftBitDepth rescales every sample to bitDepth by shifting left or right.
func (f *Frame) ShiftBitDepth(bitDepth int) (*Frame, error) {
	dst, err := New(f.width, f.height, f.format, bitDepth)
	if err != nil {
		return nil, err
	}
	shift := bitDepth - f.bitDepth
	for p := range f.planes {
		for i, v := range f.planes[p] {
			if shift >= 0 {
				dst.planes[p][i] = v << shift
			} else {
				dst.planes[p][i] = v >> -shift
			}
		}
	}
	return dst, nil
}

// Crop returns the part of the frame inside rect. The rectangle is clipped
// to the frame bounds first.
func (f *Frame) Crop(rect image.Rectangle) (*Frame, error) {
	r := rect.Canon().Intersect(f.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrEmptyRect, rect)
	}
	dst := mustNew(r.Dx(), r.Dy(), f.format, f.bitDepth)
	lw, lh := f.format.Log2ChromaWidth(), f.format.Log2ChromaHeight()
	for p := range f.planes {
		ox, oy := r.Min.X, r.Min.Y
		if p > 0 {
			ox, oy = ox>>lw, oy>>lh
		}
		sw, sh := f.PlaneWidth(p), f.PlaneHeight(p)
		dw, dh := dst.PlaneWidth(p), dst.PlaneHeight(p)
		for y := range dh {
			sy := min(oy+y, sh-1)
			for x := range dw {
				sx := min(ox+x, sw-1)
				dst.planes[p][y*dw+x] = f.planes[p][sy*sw+sx]
			}
		}
	}
	return dst, nil
}

// Shift translates the content by (dx, dy) luma samples. The uncovered
// border is filled with zero. A chroma sample is kept only when every luma
// sample it covers still has a source.
func (f *Frame) Shift(dx, dy int) *Frame {
	dst := mustNew(f.width, f.height, f.format, f.bitDepth)
	for p := range f.planes {
		lw, lh := 0, 0
		if p > 0 {
			lw, lh = f.format.Log2ChromaWidth(), f.format.Log2ChromaHeight()
		}
		w := f.PlaneWidth(p)
		for y := range f.PlaneHeight(p) {
			srcY := shiftSource(y, dy, lh, f.height)
			if srcY < 0 {
				continue
			}
			for x := range w {
				srcX := shiftSource(x, dx, lw, f.width)
				if srcX < 0 {
					continue
				}
				dst.planes[p][y*w+x] = f.planes[p][srcY*w+srcX]
			}
		}
	}
	return dst
}

// shiftSource returns the plane index that moves to i when a plane
// subsampled by 1<<log2 is shifted by d luma samples over a luma extent n,
// or -1 when part of its luma footprint is uncovered.
func shiftSource(i, d, log2, n int) int {
	lo := i<<log2 - d
	hi := min((i+1)<<log2, n) - 1 - d
	if lo < 0 || hi >= n {
		return -1
	}
	return lo >> log2
}

// Rotate turns the frame clockwise by angle degrees, which must be a
// multiple of 90. Negative angles rotate counter-clockwise.
func (f *Frame) Rotate(angle int) (*Frame, error) {
	if angle%90 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAngle, angle)
	}
	angle = ((angle % 360) + 360) % 360
	w, h := f.width, f.height
	var (
		dw, dh = w, h
		// inverse maps a destination luma position onto the source.
		inverse func(x, y int) (int, int)
	)
	switch angle {
	case 0:
		return f.Copy(), nil
	case 90:
		dw, dh = h, w
		inverse = func(x, y int) (int, int) { return y, h - 1 - x }
	case 180:
		inverse = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 270:
		dw, dh = h, w
		inverse = func(x, y int) (int, int) { return w - 1 - y, x }
	}
	dst := mustNew(dw, dh, f.format, f.bitDepth)
	dst.remap(f, inverse)
	return dst, nil
}

// Mirror flips the frame horizontally (left-right) or vertically.
func (f *Frame) Mirror(horizontal bool) *Frame {
	w, h := f.width, f.height
	inverse := func(x, y int) (int, int) { return x, h - 1 - y }
	if horizontal {
		inverse = func(x, y int) (int, int) { return w - 1 - x, y }
	}
	dst := mustNew(w, h, f.format, f.bitDepth)
	dst.remap(f, inverse)
	return dst
}

// remap fills every plane of f by sampling src at inverse(luma position).
// Chroma samples are mapped through their top-left luma position.
func (f *Frame) remap(src *Frame, inverse func(x, y int) (int, int)) {
	lw, lh := f.format.Log2ChromaWidth(), f.format.Log2ChromaHeight()
	for p := range f.planes {
		pw, ph := f.PlaneWidth(p), f.PlaneHeight(p)
		for y := range ph {
			for x := range pw {
				lx, ly := x, y
				if p > 0 {
					lx, ly = min(x<<lw, f.width-1), min(y<<lh, f.height-1)
				}
				sx, sy := inverse(lx, ly)
				f.planes[p][y*pw+x] = src.planes[p][src.sampleIndex(p, sx, sy)]
			}
		}
	}
}

// Binarize thresholds the luma of the frame into a YUV400 frame holding
// the maximum value where luma >= threshold and zero elsewhere.
// invert swaps both levels.
func (f *Frame) Binarize(threshold int, invert bool) *Frame {
	dst := mustNew(f.width, f.height, YUV400, f.bitDepth)
	max := uint16(f.MaxValue())
	for i, v := range f.luma() {
		if (int(v) >= threshold) != invert {
			dst.planes[0][i] = max
		}
	}
	return dst
}

// Component isolates plane p into a YUV400 frame of the plane's size.
func (f *Frame) Component(p int) (*Frame, error) {
	if p < 0 || p >= len(f.planes) {
		return nil, fmt.Errorf("%w: %d of %s", ErrInvalidPlane, p, f.format)
	}
	dst := mustNew(f.PlaneWidth(p), f.PlaneHeight(p), YUV400, f.bitDepth)
	_ = copy(dst.planes[0], f.planes[p])
	return dst, nil
}

// Difference returns a - b offset to the mid level and clipped, so equal
// frames produce a flat mid-gray result.
func Difference(a, b *Frame) (*Frame, error) {
	if !a.SameShape(b) {
		return nil, ErrShapeMismatch
	}
	dst := mustNew(a.width, a.height, a.format, a.bitDepth)
	delta := yuv.Delta(a.bitDepth)
	for p := range a.planes {
		for i := range a.planes[p] {
			dst.planes[p][i] = dst.clip(int(a.planes[p][i]) - int(b.planes[p][i]) + delta)
		}
	}
	return dst, nil
}

// AbsDifference returns |a - b| per sample.
func AbsDifference(a, b *Frame) (*Frame, error) {
	if !a.SameShape(b) {
		return nil, ErrShapeMismatch
	}
	dst := mustNew(a.width, a.height, a.format, a.bitDepth)
	for p := range a.planes {
		for i := range a.planes[p] {
			d := int(a.planes[p][i]) - int(b.planes[p][i])
			if d < 0 {
				d = -d
			}
			dst.planes[p][i] = uint16(d)
		}
	}
	return dst, nil
}

// Interpolator resamples planes for Resize.
type Interpolator = draw.Interpolator

var (
	Nearest    Interpolator = draw.NearestNeighbor
	Bilinear   Interpolator = draw.BiLinear
	CatmullRom Interpolator = draw.CatmullRom
)

// Resize scales every plane to the given luma size with k. Chroma planes
// keep the subsampling of the format.
func (f *Frame) Resize(width, height int, k Interpolator) (*Frame, error) {
	dst, err := New(width, height, f.format, f.bitDepth)
	if err != nil {
		return nil, err
	}
	shift := 16 - f.bitDepth
	half := 0
	if shift > 0 {
		half = 1 << (shift - 1)
	}
	for p := range f.planes {
		sw, sh := f.PlaneWidth(p), f.PlaneHeight(p)
		src := image.NewGray16(image.Rect(0, 0, sw, sh))
		for i, v := range f.planes[p] {
			src.Pix[2*i], src.Pix[2*i+1] = uint8(v<<shift>>8), uint8(v<<shift)
		}
		dw, dh := dst.PlaneWidth(p), dst.PlaneHeight(p)
		out := image.NewGray16(image.Rect(0, 0, dw, dh))
		k.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
		for i := range dst.planes[p] {
			v := int(out.Pix[2*i])<<8 | int(out.Pix[2*i+1])
			dst.planes[p][i] = dst.clip((v + half) >> shift)
		}
	}
	return dst, nil
}
