package view

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/playuver/internal/bitconv"
)

var ErrBadPBM = errors.New("bad PBM data")

// Mask is a painted 1-bit bitmap over an image, stored packed.
type Mask struct {
	width, height int
	bits          *bitstream.BitWriter[uint64]
	count         int
}

func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	m := &Mask{width: width, height: height}
	m.Clear()
	return m
}

func (m *Mask) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// Count returns the number of set pixels.
func (m *Mask) Count() int { return m.count }

func (m *Mask) Clear() {
	m.bits = bitstream.NewBitWriter[uint64](0, 0)
	if n := m.width * m.height; n > 0 {
		// reserve the whole bitmap up front
		m.bits.WriteBitAt(n-1, false)
	}
	m.count = 0
}

func (m *Mask) At(x, y int) bool {
	if !image.Pt(x, y).In(m.Bounds()) {
		return false
	}
	return m.reader().bit(y*m.width + x)
}

type maskReader struct {
	r *bitstream.BitReader[uint64]
}

func (m *Mask) reader() maskReader {
	return maskReader{r: bitstream.NewBitReader(m.bits.Data(), 0, 0)}
}

func (r maskReader) bit(i int) bool {
	v, err := r.r.ReadBitAt(i)
	return err == nil && v
}

func (m *Mask) set(r maskReader, i int, on bool) {
	if r.bit(i) == on {
		return
	}
	m.bits.WriteBitAt(i, on)
	if on {
		m.count++
	} else {
		m.count--
	}
}

// Add sets every pixel of rect.
func (m *Mask) Add(rect image.Rectangle) { m.fill(rect, true) }

// Erase clears every pixel of rect.
func (m *Mask) Erase(rect image.Rectangle) { m.fill(rect, false) }

func (m *Mask) fill(rect image.Rectangle, on bool) {
	rect = rect.Canon().Intersect(m.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			m.set(m.reader(), y*m.width+x, on)
		}
	}
}

// Paint sets or clears a disc of the given radius around p, like a brush.
func (m *Mask) Paint(p image.Point, radius int, on bool) {
	radius = max(radius, 0)
	box := image.Rect(p.X-radius, p.Y-radius, p.X+radius+1, p.Y+radius+1).Intersect(m.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			dx, dy := x-p.X, y-p.Y
			if dx*dx+dy*dy <= radius*radius {
				m.set(m.reader(), y*m.width+x, on)
			}
		}
	}
}

// Bools returns the bitmap row by row.
func (m *Mask) Bools() []bool {
	r := m.reader()
	bits := make([]bool, m.width*m.height)
	for i := range bits {
		bits[i] = r.bit(i)
	}
	return bits
}

// WritePBM writes the mask as a binary PBM (P4) image, set pixels black.
func (m *Mask) WritePBM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P4\n%d %d\n", m.width, m.height); err != nil {
		return err
	}
	_, err := w.Write(bitconv.PackRows(m.Bools(), m.width))
	return err
}

// ReadPBM loads a binary PBM image written by WritePBM.
func ReadPBM(r io.Reader) (*Mask, error) {
	br := bufio.NewReader(r)
	var magic string
	var width, height int
	if _, err := fmt.Fscan(br, &magic, &width, &height); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPBM, err)
	}
	if magic != "P4" || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: header %s %d %d", ErrBadPBM, magic, width, height)
	}
	// a single whitespace byte separates the header from the raster
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPBM, err)
	}
	data := make([]byte, (width+7)/8*height)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPBM, err)
	}
	m := NewMask(width, height)
	rd := m.reader()
	for i, on := range bitconv.UnpackRows(data, width, height) {
		if on {
			m.set(rd, i, true)
		}
	}
	return m, nil
}
