// Package stream reads and writes sequences of raw video frames.
//
// Raw files carry no header, so the frame geometry comes from options or
// is guessed from the file name. YUV4MPEG2 files are detected by their
// signature and describe themselves.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/playuver/frame"
)

var (
	ErrUnknownResolution = errors.New("unknown resolution")
	ErrEmptyStream       = errors.New("stream holds no complete frame")
	ErrShortFrame        = errors.New("short frame")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrFrameOutOfRange   = errors.New("frame index out of range")
	ErrBadFrameHeader    = errors.New("bad Y4M frame header")
)

const defaultFrameRate = 30

// Container is the file layout around the frame data.
type Container int

const (
	ContainerRaw Container = iota
	ContainerY4M
)

func (c Container) String() string {
	if c == ContainerY4M {
		return "y4m"
	}
	return "raw"
}

// Info describes an opened stream.
type Info struct {
	Path       string
	Container  Container
	Width      int
	Height     int
	Format     frame.PixelFormat
	BitDepth   int
	Endianness Endianness
	FrameRate  float64
	Frames     int
	Size       int64
}

// FrameBytes is the size of the sample data of one frame.
func (i Info) FrameBytes() int {
	return i.Format.BytesPerFrame(i.Width, i.Height, i.BitDepth)
}

// Stream gives random access to the frames of a file.
type Stream struct {
	mu          sync.RWMutex
	file        *os.File
	info        Info
	headerSize  int64
	frameHeader int64
	cache       *frameCache
}

// Open opens path for reading. Options override what the file declares
// or what its name suggests.
func Open(path string, opts ...Option) (*Stream, error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := &Stream{file: file, cache: newFrameCache(c.cacheSize)}
	s.info.Path = path
	if err := s.probe(c); err != nil {
		file.Close()
		return nil, err
	}
	if s.info.Frames == 0 {
		file.Close()
		return nil, fmt.Errorf("%w: %s (%d bytes, frame %d bytes)", ErrEmptyStream, path, s.info.Size, s.info.FrameBytes())
	}
	logrus.WithFields(logrus.Fields{
		"function":  "Open",
		"path":      path,
		"container": s.info.Container.String(),
		"size":      fmt.Sprintf("%dx%d", s.info.Width, s.info.Height),
		"format":    s.info.Format.String(),
		"bit_depth": s.info.BitDepth,
		"frames":    s.info.Frames,
	}).Info("Opened stream")
	return s, nil
}

func (s *Stream) probe(c config) error {
	sig := make([]byte, len(y4mSignature))
	n, err := s.file.ReadAt(sig, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if n == len(sig) && bytes.Equal(sig, []byte(y4mSignature)) {
		h, err := readY4MHeader(io.NewSectionReader(s.file, 0, 1<<16))
		if err != nil {
			return err
		}
		s.info.Container = ContainerY4M
		s.headerSize = int64(h.size)
		s.frameHeader = int64(len(y4mFrameHeader))
		// a Y4M header describes the frames, options may only refine it
		if c.width == 0 {
			c.width, c.height = h.width, h.height
		}
		if !c.hasFormat {
			c.format, c.hasFormat = h.format, true
		}
		if c.bitDepth == 0 {
			c.bitDepth = h.bitDepth
		}
		if c.frameRate == 0 && h.frameRate > 0 {
			c.frameRate = h.frameRate
		}
	}
	c.fill(GuessFromName(s.info.Path))
	if c.width <= 0 || c.height <= 0 {
		return fmt.Errorf("%w: %s", ErrUnknownResolution, s.info.Path)
	}
	if c.format.Layout() == frame.LayoutPackedYUYV && c.width%2 != 0 {
		return fmt.Errorf("%w: %s needs an even width, got %d", frame.ErrInvalidSize, c.format, c.width)
	}
	s.info.Width, s.info.Height = c.width, c.height
	s.info.Format = c.format
	s.info.BitDepth = c.bitDepth
	s.info.Endianness = c.endian
	s.info.FrameRate = c.frameRate
	_, err = s.refresh()
	return err
}

func (s *Stream) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

func (s *Stream) FrameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info.Frames
}

// ReadFrame decodes frame n. Recently read frames are served from the cache
// and are shared, so callers must copy a frame before changing it.
func (s *Stream) ReadFrame(ctx context.Context, n int) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.file == nil {
		return nil, os.ErrClosed
	}
	if n < 0 || n >= s.info.Frames {
		return nil, fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, n, s.info.Frames)
	}
	if f, ok := s.cache.get(n); ok {
		return f, nil
	}
	size := int64(s.info.FrameBytes())
	offset := s.headerSize + int64(n)*(s.frameHeader+size)
	if s.frameHeader > 0 {
		marker := make([]byte, s.frameHeader)
		if _, err := s.file.ReadAt(marker, offset); err != nil {
			return nil, err
		}
		if string(marker) != y4mFrameHeader {
			return nil, fmt.Errorf("%w: frame %d", ErrBadFrameHeader, n)
		}
		offset += s.frameHeader
	}
	buf := make([]byte, size)
	if _, err := s.file.ReadAt(buf, offset); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: frame %d", ErrShortFrame, n)
		}
		return nil, err
	}
	f, err := Decode(buf, s.info.Width, s.info.Height, s.info.Format, s.info.BitDepth, s.info.Endianness)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"function": "ReadFrame",
		"index":    n,
		"offset":   offset,
	}).Debug("Decoded frame")
	s.cache.add(n, f)
	return f, nil
}

// Refresh recomputes the frame count from the current file size and
// reports whether it changed.
func (s *Stream) Refresh() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return false, os.ErrClosed
	}
	return s.refresh()
}

func (s *Stream) refresh() (bool, error) {
	replaced, err := s.reopen()
	if err != nil {
		return false, err
	}
	st, err := s.file.Stat()
	if err != nil {
		return false, err
	}
	frames := 0
	if data := st.Size() - s.headerSize; data > 0 {
		frames = int(data / (s.frameHeader + int64(s.info.FrameBytes())))
	}
	changed := replaced || frames != s.info.Frames || st.Size() != s.info.Size
	if frames < s.info.Frames {
		s.cache.dropFrom(frames)
	}
	s.info.Size = st.Size()
	s.info.Frames = frames
	return changed, nil
}

// reopen switches to the file now at the stream path when the open one
// was replaced, for example by a rename. Cached frames are dropped.
func (s *Stream) reopen() (bool, error) {
	cur, err := s.file.Stat()
	if err != nil {
		return false, err
	}
	st, err := os.Stat(s.info.Path)
	if err != nil || os.SameFile(cur, st) {
		// a missing path keeps the open file readable
		return false, nil
	}
	file, err := os.Open(s.info.Path)
	if err != nil {
		return false, err
	}
	s.file.Close()
	s.file = file
	s.cache.dropFrom(0)
	logrus.WithFields(logrus.Fields{
		"function": "reopen",
		"path":     s.info.Path,
	}).Info("Stream file replaced")
	return true, nil
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	logrus.WithFields(logrus.Fields{
		"function": "Close",
		"path":     s.info.Path,
	}).Info("Closed stream")
	return err
}
