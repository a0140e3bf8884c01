package bitconv

// BytesToBools unpacks bytes MSB first.
func BytesToBools(b []byte) []bool {
	bits := make([]bool, 0, len(b)*8)
	for _, bb := range b {
		for i := 7; i >= 0; i-- {
			bits = append(bits, ((bb>>uint(i))&1) == 1)
		}
	}
	return bits
}

// BoolsToBytes packs bits MSB first, zero padding the last byte.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// PackRows packs a row-major bitmap of the given width where every row
// starts on a byte boundary, as required by PBM (P4) rasters.
func PackRows(bits []bool, width int) []byte {
	if width <= 0 {
		return []byte{}
	}
	rowBytes := (width + 7) / 8
	rows := len(bits) / width
	out := make([]byte, 0, rows*rowBytes)
	for y := range rows {
		out = append(out, BoolsToBytes(bits[y*width:(y+1)*width])...)
	}
	return out
}

// UnpackRows is the inverse of PackRows.
func UnpackRows(data []byte, width, height int) []bool {
	rowBytes := (width + 7) / 8
	bits := make([]bool, 0, width*height)
	for y := range height {
		if (y+1)*rowBytes > len(data) {
			break
		}
		row := BytesToBools(data[y*rowBytes : (y+1)*rowBytes])
		bits = append(bits, row[:width]...)
	}
	return bits
}
