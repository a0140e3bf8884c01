package stream

import (
	"fmt"

	"github.com/yyyoichi/playuver/frame"
)

type config struct {
	width, height int
	format        frame.PixelFormat
	hasFormat     bool
	bitDepth      int
	endian        Endianness
	frameRate     float64
	cacheSize     int
}

type Option func(*config) error

// WithResolution sets the luma size of every frame.
func WithResolution(width, height int) Option {
	return func(c *config) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("%w: %dx%d", frame.ErrInvalidSize, width, height)
		}
		c.width, c.height = width, height
		return nil
	}
}

func WithPixelFormat(format frame.PixelFormat) Option {
	return func(c *config) error {
		if !format.Valid() {
			return fmt.Errorf("%w: %d", frame.ErrInvalidFormat, int(format))
		}
		c.format, c.hasFormat = format, true
		return nil
	}
}

// WithBitDepth sets the sample depth. Depths above 8 are stored in two bytes.
func WithBitDepth(bitDepth int) Option {
	return func(c *config) error {
		if bitDepth < 1 || bitDepth > frame.MaxBitDepth {
			return fmt.Errorf("%w: %d", frame.ErrInvalidBitDepth, bitDepth)
		}
		c.bitDepth = bitDepth
		return nil
	}
}

func WithEndianness(e Endianness) Option {
	return func(c *config) error {
		c.endian = e
		return nil
	}
}

func WithFrameRate(fps float64) Option {
	return func(c *config) error {
		if fps <= 0 {
			return fmt.Errorf("invalid frame rate %v", fps)
		}
		c.frameRate = fps
		return nil
	}
}

// WithCacheSize bounds the number of decoded frames kept in memory.
// Zero disables caching.
func WithCacheSize(n int) Option {
	return func(c *config) error {
		if n < 0 {
			n = 0
		}
		c.cacheSize = n
		return nil
	}
}

func newConfig(opts ...Option) (config, error) {
	c := config{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return c, err
		}
	}
	return c, nil
}

// fill completes unset fields from a file name guess and defaults.
func (c *config) fill(g Guess) {
	if c.width == 0 && c.height == 0 {
		c.width, c.height = g.Width, g.Height
	}
	if !c.hasFormat {
		c.format = frame.YUV420p
		if g.HasFormat {
			c.format = g.Format
		}
		c.hasFormat = true
	}
	if c.bitDepth == 0 {
		c.bitDepth = 8
		if g.BitDepth > 0 && g.BitDepth <= frame.MaxBitDepth {
			c.bitDepth = g.BitDepth
		}
	}
	if c.frameRate == 0 {
		c.frameRate = defaultFrameRate
		if g.FrameRate > 0 {
			c.frameRate = g.FrameRate
		}
	}
}
