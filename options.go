package playuver

import (
	"fmt"
	"image"

	"github.com/yyyoichi/playuver/stream"
	"github.com/yyyoichi/playuver/view"
)

type Option func(*Player) error

// WithLoop makes playback restart at the first frame instead of stopping.
func WithLoop(loop bool) Option {
	return func(p *Player) error {
		p.loop = loop
		return nil
	}
}

// WithViewport sets the window size used by Render. By default the
// viewport matches the frame size.
func WithViewport(width, height int) Option {
	return func(p *Player) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid viewport %dx%d", width, height)
		}
		p.viewport = image.Pt(width, height)
		return nil
	}
}

// WithStream passes options to stream.Open, such as the resolution of a
// raw file.
func WithStream(opts ...stream.Option) Option {
	return func(p *Player) error {
		p.streamOpts = append(p.streamOpts, opts...)
		return nil
	}
}

// WithGrid sets the grid overlay.
func WithGrid(g view.Grid) Option {
	return func(p *Player) error {
		if g.HSpacing <= 0 || g.VSpacing <= 0 {
			return fmt.Errorf("invalid grid spacing %dx%d", g.HSpacing, g.VSpacing)
		}
		p.Grid = g
		return nil
	}
}

// WithFrameRate overrides the playback rate.
func WithFrameRate(fps float64) Option {
	return func(p *Player) error {
		if fps <= 0 {
			return fmt.Errorf("invalid frame rate %v", fps)
		}
		p.frameRate = fps
		return nil
	}
}
