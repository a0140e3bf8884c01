// Package playuver is a headless player for raw video files. A Player
// keeps the current frame of a stream together with the view state a
// display needs: zoom area, grid, selection and mask.
package playuver

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/module"
	"github.com/yyyoichi/playuver/stream"
	"github.com/yyyoichi/playuver/view"
)

var ErrNotMeasurement = errors.New("module is not a measurement")

type Player struct {
	stream  *stream.Stream
	index   int
	current *frame.Frame

	Area     *view.Area
	Grid     view.Grid
	Selector *view.Selector
	Mask     *view.Mask
	// Smooth filters the rendered image when zoomed out.
	Smooth bool

	loop       bool
	frameRate  float64
	viewport   image.Point
	streamOpts []stream.Option
}

// Open opens a stream and shows its first frame.
func Open(path string, opts ...Option) (*Player, error) {
	p := &Player{Grid: view.DefaultGrid()}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	s, err := stream.Open(path, p.streamOpts...)
	if err != nil {
		return nil, err
	}
	p.stream = s
	info := s.Info()
	if p.frameRate == 0 {
		p.frameRate = info.FrameRate
	}
	size := image.Pt(info.Width, info.Height)
	if p.viewport == (image.Point{}) {
		p.viewport = size
	}
	p.Area = view.NewArea(size, p.viewport)
	p.Mask = view.NewMask(info.Width, info.Height)
	p.Selector = view.NewSelector(image.Rectangle{Max: size})
	p.Selector.Grid = &p.Grid
	p.Selector.Mask = p.Mask

	if err := p.load(context.Background(), 0); err != nil {
		s.Close()
		return nil, err
	}
	return p, nil
}

func (p *Player) Info() stream.Info { return p.stream.Info() }

// Frame returns the current frame. It is shared with the stream cache.
func (p *Player) Frame() *frame.Frame { return p.current }

func (p *Player) Index() int { return p.index }

func (p *Player) FrameCount() int { return p.stream.FrameCount() }

func (p *Player) FrameRate() float64 { return p.frameRate }

func (p *Player) load(ctx context.Context, n int) error {
	f, err := p.stream.ReadFrame(ctx, n)
	if err != nil {
		return err
	}
	p.index, p.current = n, f
	return nil
}

// Seek moves to frame n, clamped to the stream.
func (p *Player) Seek(ctx context.Context, n int) error {
	n = min(max(n, 0), p.stream.FrameCount()-1)
	if n == p.index && p.current != nil {
		return nil
	}
	return p.load(ctx, n)
}

// Next moves one frame forward. At the last frame it wraps around when
// looping and otherwise reports false.
func (p *Player) Next(ctx context.Context) (bool, error) {
	n := p.index + 1
	if n >= p.stream.FrameCount() {
		if !p.loop {
			return false, nil
		}
		n = 0
	}
	return true, p.load(ctx, n)
}

// Prev moves one frame back and reports false at the first frame.
func (p *Player) Prev(ctx context.Context) (bool, error) {
	if p.index == 0 {
		return false, nil
	}
	return true, p.load(ctx, p.index-1)
}

// Play advances at the frame rate and calls fn with every new frame. It
// returns nil at the end of a non looping stream, fn's error if fn fails,
// or ctx's error when ctx is done.
func (p *Player) Play(ctx context.Context, fn func(index int, f *frame.Frame) error) error {
	// very high rates from a file header would truncate to zero
	interval := max(time.Duration(float64(time.Second)/p.frameRate), time.Nanosecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logrus.WithFields(logrus.Fields{
		"function": "Play",
		"from":     p.index,
		"interval": interval.String(),
		"loop":     p.loop,
	}).Info("Starting playback")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			ok, err := p.Next(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := fn(p.index, p.current); err != nil {
				return err
			}
		}
	}
}

// Apply runs a processing module on the current frame followed by extra
// inputs and returns its result.
func (p *Player) Apply(ctx context.Context, m module.Module, extra ...*frame.Frame) (*frame.Frame, error) {
	res, err := module.Run(ctx, m, append([]*frame.Frame{p.current}, extra...)...)
	if err != nil {
		return nil, err
	}
	if res.Frame == nil {
		return nil, module.ErrNotProcessing
	}
	return res.Frame, nil
}

// Measure runs a measurement module on the current frame followed by
// extra inputs.
func (p *Player) Measure(ctx context.Context, m module.Module, extra ...*frame.Frame) (float64, error) {
	if m.Info().Type != module.TypeMeasurement {
		return 0, ErrNotMeasurement
	}
	res, err := module.Run(ctx, m, append([]*frame.Frame{p.current}, extra...)...)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// Render draws the current frame with the visible overlays.
func (p *Player) Render() *image.RGBA {
	opts := view.RenderOptions{Grid: &p.Grid, Smooth: p.Smooth}
	if p.Mask.Count() > 0 {
		opts.Mask = p.Mask
	}
	if sel, ok := p.Selector.Selection(); ok {
		opts.Selection = sel
	}
	return view.Render(p.current, p.Area, opts)
}

func (p *Player) Close() error {
	return p.stream.Close()
}
