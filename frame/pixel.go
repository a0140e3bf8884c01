package frame

import (
	"fmt"

	"github.com/yyyoichi/playuver/internal/yuv"
)

// Pixel is the value of one position of a frame.
// Gray pixels only use the first component.
type Pixel struct {
	Space    ColorSpace
	BitDepth int
	C        [3]int
}

// PixelAt returns the pixel at luma position (x, y). Chroma is taken from
// the co-sited subsampled position.
func (f *Frame) PixelAt(x, y int) Pixel {
	px := Pixel{Space: f.format.ColorSpace(), BitDepth: f.bitDepth}
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return px
	}
	for p := range f.planes {
		px.C[p] = int(f.planes[p][f.sampleIndex(p, x, y)])
	}
	return px
}

// Convert returns the pixel expressed in space.
func (px Pixel) Convert(space ColorSpace) Pixel {
	if px.Space == space {
		return px
	}
	out := Pixel{Space: space, BitDepth: px.BitDepth}
	delta := yuv.Delta(px.BitDepth)
	switch px.Space {
	case ColorSpaceGray:
		switch space {
		case ColorSpaceYUV:
			out.C = [3]int{px.C[0], delta, delta}
		case ColorSpaceRGB:
			out.C = [3]int{px.C[0], px.C[0], px.C[0]}
		}
	case ColorSpaceYUV:
		switch space {
		case ColorSpaceGray:
			out.C[0] = px.C[0]
		case ColorSpaceRGB:
			out.C[0], out.C[1], out.C[2] = yuv.ToRGB(px.C[0], px.C[1], px.C[2], px.BitDepth)
		}
	case ColorSpaceRGB:
		y, u, v := yuv.ToYUV(px.C[0], px.C[1], px.C[2], px.BitDepth)
		switch space {
		case ColorSpaceGray:
			out.C[0] = y
		case ColorSpaceYUV:
			out.C = [3]int{y, u, v}
		}
	}
	return out
}

func (px Pixel) String() string {
	switch px.Space {
	case ColorSpaceGray:
		return fmt.Sprintf("Y: %d", px.C[0])
	case ColorSpaceRGB:
		return fmt.Sprintf("R: %d G: %d B: %d", px.C[0], px.C[1], px.C[2])
	}
	return fmt.Sprintf("Y: %d U: %d V: %d", px.C[0], px.C[1], px.C[2])
}
