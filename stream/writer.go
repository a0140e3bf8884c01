package stream

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/playuver/frame"
)

// Writer appends frames to a raw or Y4M file.
type Writer struct {
	file      *os.File
	buf       *bufio.Writer
	config    config
	container Container
	header    bool
	frames    int
}

// Create truncates path and prepares it for writing. Files ending in .y4m
// get a YUV4MPEG2 header, written together with the first frame.
// Unset options are taken from the first frame.
func Create(path string, opts ...Option) (*Writer, error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	container := ContainerRaw
	if strings.EqualFold(filepath.Ext(path), ".y4m") {
		container = ContainerY4M
		if c.hasFormat {
			if _, err := formatY4MHeader(1, 1, c.format, max(c.bitDepth, 8), defaultFrameRate); err != nil {
				return nil, err
			}
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"function":  "Create",
		"path":      path,
		"container": container.String(),
	}).Info("Created output stream")
	return &Writer{file: file, buf: bufio.NewWriter(file), config: c, container: container}, nil
}

// WriteFrame converts f to the configured format, bit depth and size and
// appends it.
func (w *Writer) WriteFrame(f *frame.Frame) error {
	if w.file == nil {
		return os.ErrClosed
	}
	if w.frames == 0 {
		w.settle(f)
	}
	c := w.config
	if f.Width() != c.width || f.Height() != c.height {
		return fmt.Errorf("%w: frame %dx%d, stream %dx%d", frame.ErrShapeMismatch, f.Width(), f.Height(), c.width, c.height)
	}
	out := f
	var err error
	if out.Format() != c.format {
		if out, err = out.Convert(c.format); err != nil {
			return err
		}
	}
	if out.BitDepth() != c.bitDepth {
		if out, err = out.ShiftBitDepth(c.bitDepth); err != nil {
			return err
		}
	}
	if w.container == ContainerY4M {
		if !w.header {
			h, err := formatY4MHeader(c.width, c.height, c.format, c.bitDepth, c.frameRate)
			if err != nil {
				return err
			}
			if _, err := w.buf.WriteString(h); err != nil {
				return err
			}
			w.header = true
		}
		if _, err := w.buf.WriteString(y4mFrameHeader); err != nil {
			return err
		}
	}
	if _, err := w.buf.Write(Encode(out, c.endian)); err != nil {
		return err
	}
	w.frames++
	return nil
}

// settle fills unset options from the first frame.
func (w *Writer) settle(f *frame.Frame) {
	c := &w.config
	if c.width == 0 || c.height == 0 {
		c.width, c.height = f.Width(), f.Height()
	}
	if !c.hasFormat {
		c.format, c.hasFormat = f.Format(), true
	}
	if c.bitDepth == 0 {
		c.bitDepth = f.BitDepth()
	}
	if c.frameRate == 0 {
		c.frameRate = defaultFrameRate
	}
}

// Frames returns the count of frames written so far.
func (w *Writer) Frames() int { return w.frames }

func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.buf.Flush()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	logrus.WithFields(logrus.Fields{
		"function": "Close",
		"path":     w.file.Name(),
		"frames":   w.frames,
	}).Info("Closed output stream")
	w.file = nil
	return err
}
