// Package module defines pluggable frame transforms and measurements and
// a registry to look them up by name.
package module

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yyyoichi/playuver/frame"
)

var (
	ErrUnknownModule   = errors.New("unknown module")
	ErrFrameCount      = errors.New("wrong number of frames")
	ErrIncompatible    = errors.New("incompatible frames")
	ErrNotProcessing   = errors.New("module does not process frames")
	ErrNotMeasurement  = errors.New("module does not measure frames")
	ErrNotChainable    = errors.New("module cannot be chained")
	ErrUnknownOption   = errors.New("unknown option")
	ErrInvalidOption   = errors.New("invalid option value")
	ErrNilFrame        = errors.New("nil frame")
	ErrDuplicateModule = errors.New("module already registered")
)

// Type tells what a module produces.
type Type int

const (
	// TypeProcessing modules return a frame.
	TypeProcessing Type = iota
	// TypeMeasurement modules return a number.
	TypeMeasurement
)

func (t Type) String() string {
	switch t {
	case TypeProcessing:
		return "processing"
	case TypeMeasurement:
		return "measurement"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

type Feature uint

const (
	// FeatureSameFormat requires every input in the same format and bit depth.
	FeatureSameFormat Feature = 1 << iota
	// FeatureSameResolution requires every input in the same size.
	FeatureSameResolution
	// FeatureNewWindow asks for the result to be shown on its own.
	FeatureNewWindow
	// FeatureOptions marks modules with user settable options.
	FeatureOptions
)

func (f Feature) Has(flag Feature) bool { return f&flag == flag }

func (f Feature) String() string {
	var names []string
	for _, v := range []struct {
		flag Feature
		name string
	}{
		{FeatureSameFormat, "same-format"},
		{FeatureSameResolution, "same-resolution"},
		{FeatureNewWindow, "new-window"},
		{FeatureOptions, "options"},
	} {
		if f.Has(v.flag) {
			names = append(names, v.name)
		}
	}
	return strings.Join(names, ",")
}

// Info describes a module.
type Info struct {
	Name        string
	Category    string
	Description string
	Type        Type
	NumFrames   int
	Features    Feature
}

// Module is a frame transform or measurement over a fixed number of
// input frames.
type Module interface {
	Info() Info
	Options() *Options
	// Create prepares the module for the given inputs. It is called once
	// before the first Process or Measure.
	Create(frames []*frame.Frame) error
	Process(frames []*frame.Frame) (*frame.Frame, error)
	Measure(frames []*frame.Frame) (float64, error)
	Destroy()
}

// Base provides the parts of a Module that most modules share. Embedders
// override Process or Measure.
type Base struct {
	info    Info
	options *Options
}

func NewBase(info Info, options *Options) Base {
	if options == nil {
		options = NewOptions()
	}
	if options.Len() > 0 {
		info.Features |= FeatureOptions
	}
	return Base{info: info, options: options}
}

func (b *Base) Info() Info        { return b.info }
func (b *Base) Options() *Options { return b.options }

func (b *Base) Create([]*frame.Frame) error { return nil }

func (b *Base) Process([]*frame.Frame) (*frame.Frame, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotProcessing, b.info.Name)
}

func (b *Base) Measure([]*frame.Frame) (float64, error) {
	return 0, fmt.Errorf("%w: %s", ErrNotMeasurement, b.info.Name)
}

func (b *Base) Destroy() {}
