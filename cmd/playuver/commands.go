package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/yyyoichi/playuver"
	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/stream"
	"github.com/yyyoichi/playuver/view"
)

func runInfo(ctx context.Context, e *env, args []string) error {
	fs := e.flags("info")
	if err := e.parse(fs, args, 1); err != nil {
		return err
	}
	for _, path := range fs.Args() {
		s, err := e.open(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		i := s.Info()
		s.Close()
		fmt.Fprintf(e.out, "%s\n", i.Path)
		fmt.Fprintf(e.out, "  container:  %s\n", i.Container)
		fmt.Fprintf(e.out, "  resolution: %dx%d\n", i.Width, i.Height)
		fmt.Fprintf(e.out, "  format:     %s %dbit %s endian\n", i.Format, i.BitDepth, i.Endianness)
		fmt.Fprintf(e.out, "  frame rate: %g\n", i.FrameRate)
		fmt.Fprintf(e.out, "  frames:     %d (%d bytes each)\n", i.Frames, i.FrameBytes())
	}
	return nil
}

func runFrame(ctx context.Context, e *env, args []string) error {
	fs := e.flags("frame")
	index := fs.IntP("frame", "n", 0, "frame index")
	output := fs.StringP("output", "o", "frame.png", "png file to write")
	if err := e.parse(fs, args, 1); err != nil {
		return err
	}
	s, err := e.open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer s.Close()
	f, err := s.ReadFrame(ctx, *index)
	if err != nil {
		return err
	}
	return e.writePNG(*output, f.ToRGBA())
}

func runConvert(ctx context.Context, e *env, args []string) error {
	fs := e.flags("convert")
	outFormat := fs.String("out-fmt", "", "output pixel format, input format when empty")
	outBits := fs.Int("out-bits", 0, "output bits per sample, input depth when 0")
	outEndian := fs.String("out-endian", "little", "output byte order of 16 bit samples")
	start := fs.Int("start", 0, "first frame")
	count := fs.Int("count", 0, "frames to convert, all when 0")
	apply := fs.StringArray("apply", nil, "processing module as name[:key=value,...], may repeat")
	if err := e.parse(fs, args, 2); err != nil {
		return err
	}
	s, err := e.open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer s.Close()

	pipeline, err := buildPipeline(*apply)
	if err != nil {
		return err
	}
	defer pipeline.Clear()

	endian, err := stream.ParseEndianness(*outEndian)
	if err != nil {
		return err
	}
	opts := []stream.Option{stream.WithEndianness(endian), stream.WithFrameRate(s.Info().FrameRate)}
	if *outFormat != "" {
		f, err := frame.ParsePixelFormat(*outFormat)
		if err != nil {
			return err
		}
		opts = append(opts, stream.WithPixelFormat(f))
	}
	if *outBits != 0 {
		opts = append(opts, stream.WithBitDepth(*outBits))
	}
	w, err := stream.Create(fs.Arg(1), opts...)
	if err != nil {
		return err
	}

	end := s.FrameCount()
	if *count > 0 {
		end = min(end, *start+*count)
	}
	for n := *start; n < end; n++ {
		f, err := s.ReadFrame(ctx, n)
		if err != nil {
			w.Close()
			return err
		}
		if f, err = pipeline.Apply(ctx, f); err != nil {
			w.Close()
			return err
		}
		if err := w.WriteFrame(f); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "wrote %d frames to %s\n", w.Frames(), fs.Arg(1))
	return nil
}

func runView(ctx context.Context, e *env, args []string) error {
	fs := e.flags("view")
	index := fs.IntP("frame", "n", 0, "frame index")
	output := fs.StringP("output", "o", "view.png", "png file to write")
	viewport := fs.IntSlice("viewport", nil, "window size as width,height, frame size when empty")
	pan := fs.IntSlice("pan", nil, "scroll the zoomed image by dx,dy")
	sel := fs.IntSlice("select", nil, "selection rectangle as x0,y0,x1,y1 in image pixels")
	maskPath := fs.String("mask", "", "pbm mask to overlay")
	pixel := fs.IntSlice("pixel", nil, "print the pixel under window point x,y")
	smooth := fs.Bool("smooth", false, "filter when zoomed out")
	if err := e.parse(fs, args, 1); err != nil {
		return err
	}
	streamOpts, err := e.cfg.StreamOptions()
	if err != nil {
		return err
	}
	grid, err := e.cfg.Grid()
	if err != nil {
		return err
	}
	opts := []playuver.Option{playuver.WithStream(streamOpts...), playuver.WithGrid(grid)}
	if len(*viewport) > 0 {
		if len(*viewport) != 2 {
			return fmt.Errorf("--viewport needs width,height")
		}
		opts = append(opts, playuver.WithViewport((*viewport)[0], (*viewport)[1]))
	}
	p, err := playuver.Open(fs.Arg(0), opts...)
	if err != nil {
		return err
	}
	defer p.Close()
	if err := p.Seek(ctx, *index); err != nil {
		return err
	}

	if z := e.cfg.View.Zoom; z > 0 {
		p.Area.SetZoom(z)
	} else {
		p.Area.ZoomToFit()
	}
	if len(*pan) == 2 {
		p.Area.Pan((*pan)[0], (*pan)[1])
	}
	if len(*sel) > 0 {
		if len(*sel) != 4 {
			return fmt.Errorf("--select needs x0,y0,x1,y1")
		}
		r := image.Rect((*sel)[0], (*sel)[1], (*sel)[2], (*sel)[3])
		p.Selector.Select(r.Intersect(p.Frame().Bounds()))
	}
	if *maskPath != "" {
		if err := loadMask(p, *maskPath); err != nil {
			return err
		}
	}
	if len(*pixel) == 2 {
		px, at, ok := p.Area.PixelAt(p.Frame(), image.Pt((*pixel)[0], (*pixel)[1]))
		if !ok {
			fmt.Fprintln(e.out, "pixel outside of the image")
		} else {
			fmt.Fprintf(e.out, "(%d,%d) %s\n", at.X, at.Y, px)
		}
	}

	p.Smooth = *smooth
	return e.writePNG(*output, p.Render())
}

func loadMask(p *playuver.Player, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	m, err := view.ReadPBM(f)
	if err != nil {
		return err
	}
	if m.Bounds() != p.Frame().Bounds() {
		return fmt.Errorf("mask %v does not match frame %v", m.Bounds().Size(), p.Frame().Bounds().Size())
	}
	p.Mask = m
	p.Selector.Mask = m
	return nil
}

func runPlay(ctx context.Context, e *env, args []string) error {
	fs := e.flags("play")
	loop := fs.Bool("loop", false, "restart at the first frame")
	if err := e.parse(fs, args, 1); err != nil {
		return err
	}
	streamOpts, err := e.cfg.StreamOptions()
	if err != nil {
		return err
	}
	p, err := playuver.Open(fs.Arg(0), playuver.WithStream(streamOpts...), playuver.WithLoop(*loop))
	if err != nil {
		return err
	}
	defer p.Close()
	show := func(index int, f *frame.Frame) error {
		fmt.Fprintf(e.out, "frame %d/%d luma %.2f\n", index, p.FrameCount(), f.LumaMean())
		return nil
	}
	if err := show(p.Index(), p.Frame()); err != nil {
		return err
	}
	return p.Play(ctx, show)
}

func runWatch(ctx context.Context, e *env, args []string) error {
	fs := e.flags("watch")
	if err := e.parse(fs, args, 1); err != nil {
		return err
	}
	s, err := e.open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer s.Close()
	fmt.Fprintf(e.out, "%s: %d frames\n", fs.Arg(0), s.FrameCount())
	err = s.Watch(ctx, func(frames int) {
		fmt.Fprintf(e.out, "%s: %d frames\n", fs.Arg(0), frames)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// writePNG writes img to path, or to the output when path is "-".
func (e *env) writePNG(path string, img image.Image) error {
	if path == "-" {
		return png.Encode(e.out, img)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
