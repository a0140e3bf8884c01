package frame

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram counts sample values per plane.
type Histogram struct {
	BitDepth int
	Names    []string
	// Counts[p][v] is the number of samples of plane p equal to v.
	Counts [][]int
}

// Histogram counts the samples of every plane.
func (f *Frame) Histogram() Histogram {
	h := Histogram{
		BitDepth: f.bitDepth,
		Names:    make([]string, len(f.planes)),
		Counts:   make([][]int, len(f.planes)),
	}
	for p := range f.planes {
		h.Names[p] = f.format.PlaneName(p)
		h.Counts[p] = make([]int, 1<<f.bitDepth)
		for _, v := range f.planes[p] {
			h.Counts[p][v]++
		}
	}
	return h
}

// LumaHistogram counts luma values; RGB frames are converted first.
func (f *Frame) LumaHistogram() []int {
	counts := make([]int, 1<<f.bitDepth)
	for _, v := range f.luma() {
		counts[v]++
	}
	return counts
}

// PlaneStats summarizes the samples of one plane.
type PlaneStats struct {
	Name     string
	Mean     float64
	StdDev   float64
	Min, Max float64
}

// Stats summarizes every plane of the frame.
func (f *Frame) Stats() []PlaneStats {
	stats := make([]PlaneStats, len(f.planes))
	for p := range f.planes {
		data := toFloat(f.planes[p])
		mean, std := stat.MeanStdDev(data, nil)
		if len(data) < 2 {
			// the sample deviation of one value is NaN
			std = 0
		}
		stats[p] = PlaneStats{
			Name:   f.format.PlaneName(p),
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(data),
			Max:    floats.Max(data),
		}
	}
	return stats
}

// LumaMean is the average luma value.
func (f *Frame) LumaMean() float64 {
	return stat.Mean(toFloat(f.luma()), nil)
}

func checkPlanes(a, b *Frame, p int) error {
	if !a.SameShape(b) {
		return ErrShapeMismatch
	}
	if p < 0 || p >= len(a.planes) {
		return fmt.Errorf("%w: %d of %s", ErrInvalidPlane, p, a.format)
	}
	return nil
}

// MSE is the mean squared error between plane p of a and b.
func MSE(a, b *Frame, p int) (float64, error) {
	if err := checkPlanes(a, b, p); err != nil {
		return 0, err
	}
	sq := make([]float64, len(a.planes[p]))
	for i := range sq {
		d := float64(a.planes[p][i]) - float64(b.planes[p][i])
		sq[i] = d * d
	}
	return stat.Mean(sq, nil), nil
}

// PSNR is the peak signal to noise ratio in dB between plane p of a and b.
// Identical planes yield +Inf.
func PSNR(a, b *Frame, p int) (float64, error) {
	mse, err := MSE(a, b, p)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	peak := float64(a.MaxValue())
	return 10 * math.Log10(peak*peak/mse), nil
}

const ssimWindow = 8

// SSIM is the mean structural similarity index over non-overlapping 8x8
// windows of plane p. Planes smaller than a window are treated as one window.
func SSIM(a, b *Frame, p int) (float64, error) {
	if err := checkPlanes(a, b, p); err != nil {
		return 0, err
	}
	w, h := a.PlaneWidth(p), a.PlaneHeight(p)
	peak := float64(a.MaxValue())
	c1 := (0.01 * peak) * (0.01 * peak)
	c2 := (0.03 * peak) * (0.03 * peak)
	ww, wh := min(ssimWindow, w), min(ssimWindow, h)

	x := make([]float64, 0, ww*wh)
	y := make([]float64, 0, ww*wh)
	var total float64
	var n int
	for y0 := 0; y0+wh <= h; y0 += wh {
		for x0 := 0; x0+ww <= w; x0 += ww {
			x, y = x[:0], y[:0]
			for yy := y0; yy < y0+wh; yy++ {
				for xx := x0; xx < x0+ww; xx++ {
					x = append(x, float64(a.planes[p][yy*w+xx]))
					y = append(y, float64(b.planes[p][yy*w+xx]))
				}
			}
			mx, vx := stat.PopMeanVariance(x, nil)
			my, vy := stat.PopMeanVariance(y, nil)
			cov := stat.Covariance(x, y, nil) * float64(len(x)-1) / float64(len(x))
			if len(x) == 1 {
				cov = 0
			}
			total += ((2*mx*my + c1) * (2*cov + c2)) / ((mx*mx + my*my + c1) * (vx + vy + c2))
			n++
		}
	}
	return total / float64(n), nil
}

func toFloat(v []uint16) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = float64(v[i])
	}
	return out
}
