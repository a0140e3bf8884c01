package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/module"
	"github.com/yyyoichi/playuver/stream"
)

// newModule creates a module from name[:key=value,...].
func newModule(arg string) (module.Module, error) {
	name, settings, _ := strings.Cut(arg, ":")
	m, err := module.New(name)
	if err != nil {
		return nil, err
	}
	if settings != "" {
		if err := m.Options().Parse(strings.Split(settings, ",")...); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return m, nil
}

func buildPipeline(args []string) (*module.Pipeline, error) {
	p := module.NewPipeline()
	for _, arg := range args {
		m, err := newModule(arg)
		if err != nil {
			p.Clear()
			return nil, err
		}
		if err := p.Add(m); err != nil {
			p.Clear()
			return nil, err
		}
	}
	return p, nil
}

func runModule(ctx context.Context, e *env, args []string) error {
	fs := e.flags("module")
	index := fs.IntP("frame", "n", 0, "frame index")
	count := fs.Int("count", 1, "frames to process starting at --frame, all remaining when 0")
	settings := fs.StringArrayP("opt", "O", nil, "module option as key=value, may repeat")
	output := fs.StringP("output", "o", "", "result file, .png for one frame or a raw/.y4m stream")
	if err := e.parse(fs, args, 2); err != nil {
		return err
	}
	m, err := module.New(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := m.Options().Parse(*settings...); err != nil {
		return err
	}
	info := m.Info()
	paths := fs.Args()[1:]
	if len(paths) != info.NumFrames {
		return fmt.Errorf("%w: %s takes %d inputs, got %d", module.ErrFrameCount, info.Name, info.NumFrames, len(paths))
	}

	streams := make([]*stream.Stream, len(paths))
	for i, path := range paths {
		s, err := e.open(path)
		if err != nil {
			return err
		}
		defer s.Close()
		streams[i] = s
	}
	end := streams[0].FrameCount()
	for _, s := range streams[1:] {
		end = min(end, s.FrameCount())
	}
	if *count > 0 {
		end = min(end, *index+*count)
	}
	if *index >= end {
		return fmt.Errorf("%w: %d", stream.ErrFrameOutOfRange, *index)
	}

	runner := module.NewRunner(m)
	defer runner.Close()
	var w *stream.Writer
	for n := *index; n < end; n++ {
		frames := make([]*frame.Frame, len(streams))
		for i, s := range streams {
			if frames[i], err = s.ReadFrame(ctx, n); err != nil {
				return err
			}
		}
		res, err := runner.Run(ctx, frames...)
		if err != nil {
			return err
		}
		if info.Type == module.TypeMeasurement {
			fmt.Fprintf(e.out, "%d\t%s\t%.6f\n", n, info.Name, res.Value)
			continue
		}
		if *output == "" {
			fmt.Fprintf(e.out, "%d\t%s\n", n, res.Frame)
			continue
		}
		if strings.EqualFold(filepath.Ext(*output), ".png") {
			if err := e.writePNG(*output, res.Frame.ToRGBA()); err != nil {
				return err
			}
			break
		}
		if w == nil {
			if w, err = stream.Create(*output, stream.WithFrameRate(streams[0].Info().FrameRate)); err != nil {
				return err
			}
			defer w.Close()
		}
		if err := w.WriteFrame(res.Frame); err != nil {
			return err
		}
	}
	if w != nil {
		return w.Close()
	}
	return nil
}

func runModules(ctx context.Context, e *env, args []string) error {
	fs := e.flags("modules")
	if err := e.parse(fs, args, 0); err != nil {
		return err
	}
	groups := module.ByCategory()
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(e.out, "%s\n", c)
		for _, info := range groups[c] {
			fmt.Fprintf(e.out, "  %-14s %s, %d input(s): %s\n", info.Name, info.Type, info.NumFrames, info.Description)
			m, err := module.New(info.Name)
			if err != nil {
				return err
			}
			for _, opt := range m.Options().List() {
				fmt.Fprintf(e.out, "      %s=%v (%s) %s\n", opt.Name, opt.Default, opt.Kind, opt.Help)
			}
		}
	}
	return nil
}
