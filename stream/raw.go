package stream

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/yyyoichi/playuver/frame"
)

// Endianness is the byte order of samples deeper than 8 bits.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

// ParseEndianness accepts "le", "little", "be" and "big".
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "le", "little", "":
		return LittleEndian, nil
	case "be", "big":
		return BigEndian, nil
	}
	return 0, fmt.Errorf("unknown endianness %q", s)
}

func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

func (e Endianness) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

type sampler struct {
	buf   []byte
	bps   int
	order binary.ByteOrder
	mask  uint16
}

func newSampler(buf []byte, bitDepth int, endian Endianness) sampler {
	return sampler{
		buf:   buf,
		bps:   frame.BytesPerSample(bitDepth),
		order: endian.order(),
		mask:  uint16(1<<bitDepth - 1),
	}
}

func (s sampler) get(i int) uint16 {
	if s.bps == 1 {
		return uint16(s.buf[i]) & s.mask
	}
	return s.order.Uint16(s.buf[2*i:]) & s.mask
}

func (s sampler) put(i int, v uint16) {
	if s.bps == 1 {
		s.buf[i] = byte(v)
		return
	}
	s.order.PutUint16(s.buf[2*i:], v)
}

// Decode unpacks one raw frame.
func Decode(buf []byte, width, height int, format frame.PixelFormat, bitDepth int, endian Endianness) (*frame.Frame, error) {
	if format.Layout() == frame.LayoutPackedYUYV && width%2 != 0 {
		return nil, fmt.Errorf("%w: %s needs an even width, got %d", frame.ErrInvalidSize, format, width)
	}
	f, err := frame.New(width, height, format, bitDepth)
	if err != nil {
		return nil, err
	}
	if need := format.BytesPerFrame(width, height, bitDepth); len(buf) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortFrame, len(buf), need)
	}
	s := newSampler(buf, bitDepth, endian)
	walk(f, func(p, i, at int) {
		f.Plane(p)[i] = s.get(at)
	})
	return f, nil
}

// Encode packs a frame into its raw layout.
func Encode(f *frame.Frame, endian Endianness) []byte {
	buf := make([]byte, f.Format().BytesPerFrame(f.Width(), f.Height(), f.BitDepth()))
	s := newSampler(buf, f.BitDepth(), endian)
	walk(f, func(p, i, at int) {
		s.put(at, f.Plane(p)[i])
	})
	return buf
}

// walk calls fn for every sample with its plane, index inside the plane
// and position in the raw sample sequence.
func walk(f *frame.Frame, fn func(p, i, at int)) {
	w, h := f.Width(), f.Height()
	switch f.Format().Layout() {
	case frame.LayoutPlanar:
		at := 0
		for p := range f.NumPlanes() {
			for i := range f.Plane(p) {
				fn(p, i, at)
				at++
			}
		}
	case frame.LayoutSemiPlanar:
		area := w * h
		for i := range area {
			fn(0, i, i)
		}
		for i := range f.Plane(1) {
			fn(1, i, area+2*i)
			fn(2, i, area+2*i+1)
		}
	case frame.LayoutPackedYUYV:
		cw := f.ChromaWidth()
		for y := range h {
			for cx := range cw {
				at := (y*cw + cx) * 4
				fn(0, y*w+2*cx, at)
				fn(1, y*cw+cx, at+1)
				fn(0, y*w+2*cx+1, at+2)
				fn(2, y*cw+cx, at+3)
			}
		}
	case frame.LayoutPackedRGB, frame.LayoutPackedBGR:
		order := [3]int{frame.PlaneR, frame.PlaneG, frame.PlaneB}
		if f.Format().Layout() == frame.LayoutPackedBGR {
			order = [3]int{frame.PlaneB, frame.PlaneG, frame.PlaneR}
		}
		for i := range w * h {
			for c, p := range order {
				fn(p, i, i*3+c)
			}
		}
	}
}
