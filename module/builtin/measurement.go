package builtin

import (
	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/module"
)

type LumaAverage struct{ module.Base }

func NewLumaAverage() module.Module {
	return &LumaAverage{module.NewBase(module.Info{
		Name:        "lumaaverage",
		Category:    categoryMeasurement,
		Description: "Average luma value",
		Type:        module.TypeMeasurement,
		NumFrames:   1,
	}, nil)}
}

func (m *LumaAverage) Measure(frames []*frame.Frame) (float64, error) {
	return frames[0].LumaMean(), nil
}

// quality compares one plane of two frames.
type quality struct {
	module.Base
	fn func(a, b *frame.Frame, p int) (float64, error)
}

func newQuality(name, description string, fn func(a, b *frame.Frame, p int) (float64, error)) *quality {
	opts := module.NewOptions().AddInt("plane", 0, "plane index to compare")
	return &quality{
		Base: module.NewBase(module.Info{
			Name:        name,
			Category:    categoryQuality,
			Description: description,
			Type:        module.TypeMeasurement,
			NumFrames:   2,
			Features:    module.FeatureSameFormat | module.FeatureSameResolution,
		}, opts),
		fn: fn,
	}
}

func (m *quality) Measure(frames []*frame.Frame) (float64, error) {
	return m.fn(frames[0], frames[1], m.Options().GetInt("plane"))
}

func NewMSE() module.Module {
	return newQuality("mse", "Mean squared error", frame.MSE)
}

func NewPSNR() module.Module {
	return newQuality("psnr", "Peak signal to noise ratio in dB", frame.PSNR)
}

func NewSSIM() module.Module {
	return newQuality("ssim", "Structural similarity index", frame.SSIM)
}
