package yuv

import "image/color"

// BT.601 full range (JFIF) coefficients.
// https://www.itu.int/rec/R-REC-BT.601

const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
	uf = 0.564
	vf = 0.713
)

const (
	vr = 1.402
	ug = -0.344136
	vg = -0.714136
	ub = 1.772
)

// Delta returns the chroma zero level for the bit depth.
func Delta(bitDepth int) int {
	return 1 << (bitDepth - 1)
}

// Max returns the largest sample value for the bit depth.
func Max(bitDepth int) int {
	return 1<<bitDepth - 1
}

// ToYUV converts one RGB sample triple into Y, U and V of the same bit depth.
func ToYUV(r, g, b int, bitDepth int) (y, u, v int) {
	delta := float64(Delta(bitDepth))
	fr, fg, fb := float64(r), float64(g), float64(b)
	yVal := yr*fr + yg*fg + yb*fb
	max := Max(bitDepth)
	y = clip(yVal, max)
	u = clip(uf*(fb-yVal)+delta, max)
	v = clip(vf*(fr-yVal)+delta, max)
	return
}

// ToRGB converts one YUV sample triple into R, G and B of the same bit depth.
func ToRGB(y, u, v int, bitDepth int) (r, g, b int) {
	delta := Delta(bitDepth)
	yVal := float64(y)
	uDelta := float64(u - delta)
	vDelta := float64(v - delta)
	max := Max(bitDepth)
	r = clip(yVal+vr*vDelta, max)
	g = clip(yVal+ug*uDelta+vg*vDelta, max)
	b = clip(yVal+ub*uDelta, max)
	return
}

// RGBToYUVBatch converts full resolution R, G, B planes.
// All slices must share the same length.
func RGBToYUVBatch(r, g, b, y, u, v []uint16, bitDepth int) {
	for i := range r {
		yy, uu, vv := ToYUV(int(r[i]), int(g[i]), int(b[i]), bitDepth)
		y[i], u[i], v[i] = uint16(yy), uint16(uu), uint16(vv)
	}
}

// YUVToRGBBatch converts full resolution Y, U, V planes.
func YUVToRGBBatch(y, u, v, r, g, b []uint16, bitDepth int) {
	for i := range y {
		rr, gg, bb := ToRGB(int(y[i]), int(u[i]), int(v[i]), bitDepth)
		r[i], g[i], b[i] = uint16(rr), uint16(gg), uint16(bb)
	}
}

// ColorToRGBBatch splits pixels into R, G, B planes scaled to bitDepth.
func ColorToRGBBatch(pixels []color.Color, r, g, b []uint16, bitDepth int) {
	shift := 16 - bitDepth
	for i, pixel := range pixels {
		r32, g32, b32, _ := pixel.RGBA()
		r[i] = uint16(r32 >> shift)
		g[i] = uint16(g32 >> shift)
		b[i] = uint16(b32 >> shift)
	}
}

// To8 rescales a sample of bitDepth to 8 bits.
func To8(v uint16, bitDepth int) uint8 {
	switch {
	case bitDepth > 8:
		return uint8(v >> (bitDepth - 8))
	case bitDepth < 8:
		return uint8(int(v) * 255 / Max(bitDepth))
	}
	return uint8(v)
}

func clip(v float64, max int) int {
	if v < 0 {
		return 0
	}
	i := int(v + .5)
	if i > max {
		return max
	}
	return i
}
