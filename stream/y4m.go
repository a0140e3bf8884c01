package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yyyoichi/playuver/frame"
)

const (
	y4mSignature   = "YUV4MPEG2"
	y4mFrameHeader = "FRAME\n"
)

var (
	errSignatureMismatch = errors.New("Y4M signature mismatch")
	errIncompleteHeader  = errors.New("incomplete Y4M header")
)

// y4mHeader is the stream header of a YUV4MPEG2 file.
type y4mHeader struct {
	width, height int
	format        frame.PixelFormat
	bitDepth      int
	frameRate     float64
	// size is the header length including the trailing newline.
	size int
}

var y4mColorSpaces = map[string]struct {
	format   frame.PixelFormat
	bitDepth int
}{
	"420":      {frame.YUV420p, 8},
	"420jpeg":  {frame.YUV420p, 8},
	"420paldv": {frame.YUV420p, 8},
	"420mpeg2": {frame.YUV420p, 8},
	"420p10":   {frame.YUV420p, 10},
	"420p12":   {frame.YUV420p, 12},
	"420p16":   {frame.YUV420p, 16},
	"422":      {frame.YUV422p, 8},
	"422p10":   {frame.YUV422p, 10},
	"422p12":   {frame.YUV422p, 12},
	"444":      {frame.YUV444p, 8},
	"444p10":   {frame.YUV444p, 10},
	"444p12":   {frame.YUV444p, 12},
	"mono":     {frame.YUV400, 8},
	"mono10":   {frame.YUV400, 10},
	"mono12":   {frame.YUV400, 12},
	"mono16":   {frame.YUV400, 16},
}

func readY4MHeader(r io.Reader) (y4mHeader, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return y4mHeader{}, errIncompleteHeader
		}
		return y4mHeader{}, err
	}
	return parseY4MHeader(line)
}

func parseY4MHeader(line string) (y4mHeader, error) {
	h := y4mHeader{format: frame.YUV420p, bitDepth: 8, size: len(line)}
	tokens := strings.Fields(line)
	if len(tokens) == 0 || tokens[0] != y4mSignature {
		return h, errSignatureMismatch
	}
	for _, token := range tokens[1:] {
		value := token[1:]
		switch token[0] {
		case 'W':
			w, err := strconv.Atoi(value)
			if err != nil {
				return h, fmt.Errorf("invalid Y4M width %q: %w", value, err)
			}
			h.width = w
		case 'H':
			v, err := strconv.Atoi(value)
			if err != nil {
				return h, fmt.Errorf("invalid Y4M height %q: %w", value, err)
			}
			h.height = v
		case 'F':
			num, den, ok := strings.Cut(value, ":")
			n, err := strconv.Atoi(num)
			if err != nil || n <= 0 {
				return h, fmt.Errorf("invalid Y4M frame rate %q", value)
			}
			d := 1
			if ok {
				if d, err = strconv.Atoi(den); err != nil || d <= 0 {
					return h, fmt.Errorf("invalid Y4M frame rate %q", value)
				}
			}
			h.frameRate = float64(n) / float64(d)
		case 'C':
			cs, ok := y4mColorSpaces[value]
			if !ok {
				return h, fmt.Errorf("%w: Y4M color space %q", ErrUnsupportedFormat, value)
			}
			h.format, h.bitDepth = cs.format, cs.bitDepth
		}
		// I (interlacing), A (aspect) and X (extensions) carry nothing we use.
	}
	if h.width <= 0 || h.height <= 0 {
		return h, fmt.Errorf("%w: Y4M header without size", ErrUnknownResolution)
	}
	return h, nil
}

// formatY4MHeader builds a stream header. Only YUV planar and gray
// formats can be stored.
func formatY4MHeader(width, height int, format frame.PixelFormat, bitDepth int, frameRate float64) (string, error) {
	var cs string
	switch format {
	case frame.YUV420p:
		cs = "420jpeg"
		if bitDepth > 8 {
			cs = "420p" + strconv.Itoa(bitDepth)
		}
	case frame.YUV422p:
		cs = "422"
	case frame.YUV444p:
		cs = "444"
	case frame.YUV400:
		cs = "mono"
	default:
		return "", fmt.Errorf("%w: %s in Y4M", ErrUnsupportedFormat, format)
	}
	if bitDepth > 8 && format != frame.YUV420p {
		cs += "p" + strconv.Itoa(bitDepth)
		if format == frame.YUV400 {
			cs = "mono" + strconv.Itoa(bitDepth)
		}
	}
	if _, ok := y4mColorSpaces[cs]; !ok {
		return "", fmt.Errorf("%w: %s %d bit in Y4M", ErrUnsupportedFormat, format, bitDepth)
	}
	num, den := rational(frameRate)
	return fmt.Sprintf("%s W%d H%d F%d:%d Ip A1:1 C%s\n", y4mSignature, width, height, num, den, cs), nil
}

// rational expresses common frame rates exactly, including the NTSC ones.
func rational(fps float64) (int, int) {
	if fps <= 0 {
		return 30, 1
	}
	for _, base := range []int{24, 30, 60, 120} {
		ntsc := float64(base) * 1000 / 1001
		if d := fps - ntsc; d > -0.005 && d < 0.005 {
			return base * 1000, 1001
		}
	}
	if fps == float64(int(fps)) {
		return int(fps), 1
	}
	return int(fps*1000 + .5), 1000
}
