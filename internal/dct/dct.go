// Package dct implements the orthonormal 2-D DCT-II over square blocks.
package dct

import (
	"math"
	"sync"
)

// DCT transforms n x n blocks stored row-major.
type DCT struct {
	n   int
	phi []float64 // phi[k*n+x] is basis k at sample x
}

func New(n int) *DCT {
	d := &DCT{n: n, phi: make([]float64, n*n)}
	nf := float64(n)
	for x := range n {
		d.phi[x] = 1.0 / math.Sqrt(nf)
	}
	for k := 1; k < n; k++ {
		for x := range n {
			d.phi[k*n+x] = math.Sqrt(2.0/nf) * math.Cos(float64(k)*math.Pi*(2*float64(x)+1)/(2*nf))
		}
	}
	return d
}

func (d *DCT) Size() int { return d.n }

// Forward replaces block with its coefficients.
func (d *DCT) Forward(block []float64) {
	d.separable(block, func(k, x int) float64 { return d.phi[k*d.n+x] })
}

// Inverse replaces coefficients with samples.
func (d *DCT) Inverse(block []float64) {
	d.separable(block, func(x, k int) float64 { return d.phi[k*d.n+x] })
}

// separable applies the 1-D transform m to rows, then columns.
func (d *DCT) separable(block []float64, m func(i, j int) float64) {
	n := d.n
	tmp := make([]float64, n)
	for r := range n {
		row := block[r*n : (r+1)*n]
		for i := range n {
			var sum float64
			for j := range n {
				sum += m(i, j) * row[j]
			}
			tmp[i] = sum
		}
		copy(row, tmp)
	}
	for c := range n {
		for i := range n {
			var sum float64
			for j := range n {
				sum += m(i, j) * block[j*n+c]
			}
			tmp[i] = sum
		}
		for i := range n {
			block[i*n+c] = tmp[i]
		}
	}
}

// Cache shares transforms by block size.
type Cache struct {
	data sync.Map
}

func (c *Cache) Get(n int) *DCT {
	if v, ok := c.data.Load(n); ok {
		return v.(*DCT)
	}
	actual, _ := c.data.LoadOrStore(n, New(n))
	return actual.(*DCT)
}
