package bitconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitConv(t *testing.T) {
	test := []struct {
		data []byte
		exp  []byte
	}{
		{data: []byte{0b10101010}, exp: []byte{0b10101010}},
		{data: []byte{0b11110000, 0b00001111}, exp: []byte{0b11110000, 0b00001111}},
		{data: []byte("Hello"), exp: []byte("Hello")},
		{data: []byte{}, exp: []byte{}},
	}
	for _, tt := range test {
		bits := BytesToBools(tt.data)
		out := BoolsToBytes(bits)
		assert.Equal(t, tt.exp, out)
	}
}

func TestBoolsToBytesPadding(t *testing.T) {
	assert.Equal(t, []byte{0b10100000}, BoolsToBytes([]bool{true, false, true}))
}

func TestPackRows(t *testing.T) {
	// 3x2 bitmap
	bits := []bool{
		true, false, true,
		false, true, false,
	}
	packed := PackRows(bits, 3)
	assert.Equal(t, []byte{0b10100000, 0b01000000}, packed)
	assert.Equal(t, bits, UnpackRows(packed, 3, 2))
	assert.Equal(t, []byte{}, PackRows(bits, 0))
}
