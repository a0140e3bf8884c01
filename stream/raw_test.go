package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/playuver/frame"
)

func pattern(t testing.TB, w, h int, format frame.PixelFormat, bitDepth int) *frame.Frame {
	t.Helper()
	f, err := frame.New(w, h, format, bitDepth)
	require.NoError(t, err)
	top := f.MaxValue()
	for p := range f.NumPlanes() {
		for i := range f.Plane(p) {
			f.Plane(p)[i] = uint16((i*13 + p*71) % (top + 1))
		}
	}
	return f
}

func TestRawRoundTrip(t *testing.T) {
	for _, format := range frame.PixelFormats() {
		for _, bitDepth := range []int{8, 10, 16} {
			for _, endian := range []Endianness{LittleEndian, BigEndian} {
				name := fmt.Sprintf("%s/%d/%s", format, bitDepth, endian)
				t.Run(name, func(t *testing.T) {
					src := pattern(t, 6, 4, format, bitDepth)
					buf := Encode(src, endian)
					assert.Len(t, buf, format.BytesPerFrame(6, 4, bitDepth))
					got, err := Decode(buf, 6, 4, format, bitDepth, endian)
					require.NoError(t, err)
					for p := range src.NumPlanes() {
						assert.Equal(t, src.Plane(p), got.Plane(p), "plane %d", p)
					}
				})
			}
		}
	}
}

func TestRawLayout(t *testing.T) {
	test := []struct {
		name   string
		format frame.PixelFormat
		// raw bytes of a 2x2 frame
		raw  []byte
		want [][]uint16
	}{
		{
			name:   "YUV420p",
			format: frame.YUV420p,
			raw:    []byte{1, 2, 3, 4, 5, 6},
			want:   [][]uint16{{1, 2, 3, 4}, {5}, {6}},
		},
		{
			name:   "NV12",
			format: frame.NV12,
			raw:    []byte{1, 2, 3, 4, 5, 6},
			want:   [][]uint16{{1, 2, 3, 4}, {5}, {6}},
		},
		{
			name:   "YUYV422",
			format: frame.YUYV422,
			raw:    []byte{1, 10, 2, 20, 3, 11, 4, 21},
			want:   [][]uint16{{1, 2, 3, 4}, {10, 11}, {20, 21}},
		},
		{
			name:   "BGR24",
			format: frame.BGR24,
			raw:    []byte{3, 2, 1, 6, 5, 4, 9, 8, 7, 12, 11, 10},
			want:   [][]uint16{{1, 4, 7, 10}, {2, 5, 8, 11}, {3, 6, 9, 12}},
		},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode(tt.raw, 2, 2, tt.format, 8, LittleEndian)
			require.NoError(t, err)
			for p, want := range tt.want {
				assert.Equal(t, want, f.Plane(p), "plane %d", p)
			}
			assert.Equal(t, tt.raw, Encode(f, LittleEndian))
		})
	}
}

func TestDecodeEndianness(t *testing.T) {
	le, err := Decode([]byte{0x01, 0x02}, 1, 1, frame.YUV400, 10, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), le.At(0, 0, 0))

	be, err := Decode([]byte{0x01, 0x02}, 1, 1, frame.YUV400, 10, BigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), be.At(0, 0, 0))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(make([]byte, 3), 2, 2, frame.YUV420p, 8, LittleEndian)
	assert.ErrorIs(t, err, ErrShortFrame)

	_, err = Decode(make([]byte, 64), 3, 2, frame.YUYV422, 8, LittleEndian)
	assert.ErrorIs(t, err, frame.ErrInvalidSize)
}

func TestParseEndianness(t *testing.T) {
	for in, want := range map[string]Endianness{"": LittleEndian, "LE": LittleEndian, "little": LittleEndian, "be": BigEndian, "Big": BigEndian} {
		got, err := ParseEndianness(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseEndianness("middle")
	assert.Error(t, err)
}
