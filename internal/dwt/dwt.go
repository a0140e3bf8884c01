// Package dwt implements a one level 2-D Haar wavelet transform.
package dwt

import "math"

// Subbands holds the four quarter size bands of a transform. Odd sizes
// round up by repeating the last row or column.
type Subbands struct {
	Width, Height  int // of each band
	LL, HL, LH, HH []float64
}

// Haar transforms the w x h samples in data.
func Haar(data []float64, w, h int) Subbands {
	hw, hh := (w+1)/2, (h+1)/2
	n := hw * hh
	s := Subbands{
		Width:  hw,
		Height: hh,
		LL:     make([]float64, n),
		HL:     make([]float64, n),
		LH:     make([]float64, n),
		HH:     make([]float64, n),
	}
	for y := 0; y < h; y += 2 {
		y1 := min(y+1, h-1)
		for x := 0; x < w; x += 2 {
			x1 := min(x+1, w-1)
			a, b := data[y*w+x], data[y*w+x1]
			c, d := data[y1*w+x], data[y1*w+x1]
			i := (y/2)*hw + x/2
			s.LL[i] = (a + b + c + d) / 2
			s.HL[i] = (a - b + c - d) / 2
			s.LH[i] = (a + b - c - d) / 2
			s.HH[i] = (a - b - c + d) / 2
		}
	}
	return s
}

// Inverse reconstructs the w x h samples.
func (s Subbands) Inverse(w, h int) []float64 {
	data := make([]float64, w*h)
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			i := (y/2)*s.Width + x/2
			ll, hl, lh, hh := s.LL[i], s.HL[i], s.LH[i], s.HH[i]
			data[y*w+x] = (ll + hl + lh + hh) / 2
			if x+1 < w {
				data[y*w+x+1] = (ll - hl + lh - hh) / 2
			}
			if y+1 < h {
				data[(y+1)*w+x] = (ll + hl - lh - hh) / 2
				if x+1 < w {
					data[(y+1)*w+x+1] = (ll - hl - lh + hh) / 2
				}
			}
		}
	}
	return data
}

// Energy is the sum of squares of a band.
func Energy(band []float64) float64 {
	var sum float64
	for _, v := range band {
		sum += v * v
	}
	return sum
}

// Norm returns the root mean square of a band.
func Norm(band []float64) float64 {
	if len(band) == 0 {
		return 0
	}
	return math.Sqrt(Energy(band) / float64(len(band)))
}
