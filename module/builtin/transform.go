package builtin

import (
	"fmt"
	"math"

	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/internal/dct"
	"github.com/yyyoichi/playuver/internal/dwt"
	"github.com/yyyoichi/playuver/module"
)

var dctCache dct.Cache

// DCTFilter keeps the low frequency coefficients of every block, which
// shows what a coarse block transform codec would leave of the frame.
type DCTFilter struct{ module.Base }

func NewDCTFilter() module.Module {
	opts := module.NewOptions().
		AddInt("size", 8, "block size").
		AddInt("keep", 4, "coefficients kept per direction, counted from DC")
	return &DCTFilter{module.NewBase(module.Info{
		Name:        "dctfilter",
		Category:    categoryTransform,
		Description: "Zonal low-pass filter in the block DCT domain",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureSameFormat | module.FeatureSameResolution,
	}, opts)}
}

func (m *DCTFilter) Process(frames []*frame.Frame) (*frame.Frame, error) {
	n, keep := m.Options().GetInt("size"), m.Options().GetInt("keep")
	if n < 2 || n > 64 {
		return nil, fmt.Errorf("%w: size=%d", module.ErrInvalidOption, n)
	}
	if keep < 1 {
		return nil, fmt.Errorf("%w: keep=%d", module.ErrInvalidOption, keep)
	}
	src := frames[0]
	dst := src.Copy()
	d := dctCache.Get(n)
	block := make([]float64, n*n)
	for p := range src.NumPlanes() {
		w, h := src.PlaneWidth(p), src.PlaneHeight(p)
		for by := 0; by < h; by += n {
			for bx := 0; bx < w; bx += n {
				// edge blocks repeat the last row and column
				for y := range n {
					for x := range n {
						block[y*n+x] = float64(src.At(p, min(bx+x, w-1), min(by+y, h-1)))
					}
				}
				d.Forward(block)
				for v := range n {
					for u := range n {
						if u >= keep || v >= keep {
							block[v*n+u] = 0
						}
					}
				}
				d.Inverse(block)
				for y := range n {
					for x := range n {
						dst.Set(p, bx+x, by+y, int(math.Round(block[y*n+x])))
					}
				}
			}
		}
	}
	return dst, nil
}

// Haar shows the one level Haar subbands of the luma.
type Haar struct{ module.Base }

func NewHaar() module.Module {
	opts := module.NewOptions().
		AddString("band", "all", "all tiles LL, HL, LH and HH; ll, hl, lh or hh shows one band")
	return &Haar{module.NewBase(module.Info{
		Name:        "haar",
		Category:    categoryTransform,
		Description: "Haar wavelet subbands of the luma channel",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureNewWindow,
	}, opts)}
}

func (m *Haar) Process(frames []*frame.Frame) (*frame.Frame, error) {
	gray, err := frames[0].Convert(frame.YUV400)
	if err != nil {
		return nil, err
	}
	w, h := gray.Width(), gray.Height()
	data := make([]float64, w*h)
	for i, v := range gray.Plane(frame.PlaneY) {
		data[i] = float64(v)
	}
	s := dwt.Haar(data, w, h)

	bands := map[string][]float64{"ll": s.LL, "hl": s.HL, "lh": s.LH, "hh": s.HH}
	name := m.Options().GetString("band")
	if band, ok := bands[name]; ok {
		dst, err := frame.New(s.Width, s.Height, frame.YUV400, gray.BitDepth())
		if err != nil {
			return nil, err
		}
		paint(dst, band, s.Width, 0, 0, name != "ll")
		return dst, nil
	}
	if name != "all" {
		return nil, fmt.Errorf("%w: band=%q", module.ErrInvalidOption, name)
	}
	dst, err := frame.New(2*s.Width, 2*s.Height, frame.YUV400, gray.BitDepth())
	if err != nil {
		return nil, err
	}
	paint(dst, s.LL, s.Width, 0, 0, false)
	paint(dst, s.HL, s.Width, s.Width, 0, true)
	paint(dst, s.LH, s.Width, 0, s.Height, true)
	paint(dst, s.HH, s.Width, s.Width, s.Height, true)
	return dst, nil
}

// paint draws a band at (x0, y0) halving its values. Detail bands are
// signed and centered on the mid level.
func paint(dst *frame.Frame, band []float64, width, x0, y0 int, detail bool) {
	offset := 0.0
	if detail {
		offset = float64(dst.MaxValue()+1) / 2
	}
	for i, v := range band {
		dst.Set(frame.PlaneY, x0+i%width, y0+i/width, int(math.Round(offset+v/2)))
	}
}
