package module

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/playuver/frame"
)

// Result is the output of one module run. Frame is set by processing
// modules and Value by measurement modules.
type Result struct {
	Frame *frame.Frame
	Value float64
}

// Validate checks frames against what the module declares.
func Validate(info Info, frames []*frame.Frame) error {
	if len(frames) != info.NumFrames {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrFrameCount, info.Name, info.NumFrames, len(frames))
	}
	for i, f := range frames {
		if f == nil {
			return fmt.Errorf("%w: input %d of %s", ErrNilFrame, i, info.Name)
		}
	}
	if len(frames) == 0 {
		return nil
	}
	first := frames[0]
	for _, f := range frames[1:] {
		if info.Features.Has(FeatureSameFormat) && (f.Format() != first.Format() || f.BitDepth() != first.BitDepth()) {
			return fmt.Errorf("%w: %s needs one format, got %s and %s", ErrIncompatible, info.Name, first, f)
		}
		if info.Features.Has(FeatureSameResolution) && (f.Width() != first.Width() || f.Height() != first.Height()) {
			return fmt.Errorf("%w: %s needs one size, got %s and %s", ErrIncompatible, info.Name, first, f)
		}
	}
	return nil
}

// Runner drives one module instance: Create on the first run, Destroy on
// Close.
type Runner struct {
	mu      sync.Mutex
	module  Module
	created bool
}

func NewRunner(m Module) *Runner {
	return &Runner{module: m}
}

func (r *Runner) Module() Module { return r.module }

func (r *Runner) Run(ctx context.Context, frames ...*frame.Frame) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	info := r.module.Info()
	if err := Validate(info, frames); err != nil {
		return Result{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.created {
		if err := r.module.Create(frames); err != nil {
			return Result{}, fmt.Errorf("create %s: %w", info.Name, err)
		}
		r.created = true
	}
	logrus.WithFields(logrus.Fields{
		"function": "Run",
		"module":   info.Name,
		"type":     info.Type.String(),
		"frames":   len(frames),
	}).Debug("Running module")

	switch info.Type {
	case TypeMeasurement:
		v, err := r.module.Measure(frames)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", info.Name, err)
		}
		return Result{Value: v}, nil
	default:
		f, err := r.module.Process(frames)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", info.Name, err)
		}
		return Result{Frame: f}, nil
	}
}

// Close destroys the module if it was created.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.created {
		r.module.Destroy()
		r.created = false
	}
}

// Run applies m once to frames.
func Run(ctx context.Context, m Module, frames ...*frame.Frame) (Result, error) {
	r := NewRunner(m)
	defer r.Close()
	return r.Run(ctx, frames...)
}
