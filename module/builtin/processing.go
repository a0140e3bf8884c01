package builtin

import (
	"fmt"
	"image"

	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/internal/kmeans"
	"github.com/yyyoichi/playuver/module"
)

// Binarize thresholds luma into a two level gray frame.
type Binarize struct{ module.Base }

func NewBinarize() module.Module {
	opts := module.NewOptions().
		AddInt("threshold", 128, "threshold on an 8 bit scale").
		AddBool("invert", false, "swap black and white").
		AddBool("auto", false, "pick the threshold by two class k-means over the luma histogram")
	return &Binarize{module.NewBase(module.Info{
		Name:        "binarize",
		Category:    categoryProcessing,
		Description: "Binarize the luma channel",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureNewWindow,
	}, opts)}
}

func (m *Binarize) Process(frames []*frame.Frame) (*frame.Frame, error) {
	f := frames[0]
	opts := m.Options()
	threshold := scale8(opts.GetInt("threshold"), f.BitDepth())
	if opts.GetBool("auto") {
		threshold = kmeans.Threshold(f.LumaHistogram())
	}
	return f.Binarize(threshold, opts.GetBool("invert")), nil
}

// scale8 moves an 8 bit level to bitDepth.
func scale8(v, bitDepth int) int {
	if bitDepth >= 8 {
		return v << (bitDepth - 8)
	}
	return v >> (8 - bitDepth)
}

type Shift struct{ module.Base }

func NewShift() module.Module {
	opts := module.NewOptions().
		AddInt("dx", 0, "horizontal offset, positive moves right").
		AddInt("dy", 0, "vertical offset, positive moves down")
	return &Shift{module.NewBase(module.Info{
		Name:        "shift",
		Category:    categoryGeometry,
		Description: "Translate the frame, filling the border with zero",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureSameFormat | module.FeatureSameResolution,
	}, opts)}
}

func (m *Shift) Process(frames []*frame.Frame) (*frame.Frame, error) {
	return frames[0].Shift(m.Options().GetInt("dx"), m.Options().GetInt("dy")), nil
}

type Crop struct{ module.Base }

func NewCrop() module.Module {
	opts := module.NewOptions().
		AddInt("x", 0, "left edge").
		AddInt("y", 0, "top edge").
		AddInt("width", 0, "width, 0 for up to the right edge").
		AddInt("height", 0, "height, 0 for up to the bottom edge")
	return &Crop{module.NewBase(module.Info{
		Name:        "crop",
		Category:    categoryGeometry,
		Description: "Cut a rectangle out of the frame",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureSameFormat,
	}, opts)}
}

func (m *Crop) Process(frames []*frame.Frame) (*frame.Frame, error) {
	f, opts := frames[0], m.Options()
	x, y := opts.GetInt("x"), opts.GetInt("y")
	w, h := opts.GetInt("width"), opts.GetInt("height")
	if w <= 0 {
		w = f.Width() - x
	}
	if h <= 0 {
		h = f.Height() - y
	}
	return f.Crop(image.Rect(x, y, x+w, y+h))
}

type Rotate struct{ module.Base }

func NewRotate() module.Module {
	opts := module.NewOptions().AddInt("angle", 90, "clockwise angle, a multiple of 90")
	return &Rotate{module.NewBase(module.Info{
		Name:        "rotate",
		Category:    categoryGeometry,
		Description: "Rotate the frame clockwise",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureSameFormat,
	}, opts)}
}

func (m *Rotate) Process(frames []*frame.Frame) (*frame.Frame, error) {
	return frames[0].Rotate(m.Options().GetInt("angle"))
}

type Mirror struct{ module.Base }

func NewMirror() module.Module {
	opts := module.NewOptions().AddBool("horizontal", true, "flip left to right, otherwise top to bottom")
	return &Mirror{module.NewBase(module.Info{
		Name:        "mirror",
		Category:    categoryGeometry,
		Description: "Flip the frame",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureSameFormat | module.FeatureSameResolution,
	}, opts)}
}

func (m *Mirror) Process(frames []*frame.Frame) (*frame.Frame, error) {
	return frames[0].Mirror(m.Options().GetBool("horizontal")), nil
}

// Component isolates one plane as a gray frame.
type Component struct{ module.Base }

func NewComponent() module.Module {
	opts := module.NewOptions().AddInt("plane", 0, "plane index, 0 is luma or red")
	return &Component{module.NewBase(module.Info{
		Name:        "component",
		Category:    categoryFormat,
		Description: "Extract one color component",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureNewWindow,
	}, opts)}
}

func (m *Component) Process(frames []*frame.Frame) (*frame.Frame, error) {
	return frames[0].Component(m.Options().GetInt("plane"))
}

type BitDepth struct{ module.Base }

func NewBitDepth() module.Module {
	opts := module.NewOptions().AddInt("bits", 8, "target bits per sample")
	return &BitDepth{module.NewBase(module.Info{
		Name:        "bitdepth",
		Category:    categoryFormat,
		Description: "Change the bits per sample by shifting",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureSameResolution,
	}, opts)}
}

func (m *BitDepth) Process(frames []*frame.Frame) (*frame.Frame, error) {
	return frames[0].ShiftBitDepth(m.Options().GetInt("bits"))
}

type Difference struct{ module.Base }

func NewDifference() module.Module {
	return &Difference{module.NewBase(module.Info{
		Name:        "difference",
		Category:    categoryDifference,
		Description: "Signed difference of two frames around mid gray",
		Type:        module.TypeProcessing,
		NumFrames:   2,
		Features:    module.FeatureSameFormat | module.FeatureSameResolution | module.FeatureNewWindow,
	}, nil)}
}

func (m *Difference) Process(frames []*frame.Frame) (*frame.Frame, error) {
	return frame.Difference(frames[0], frames[1])
}

type AbsDifference struct{ module.Base }

func NewAbsDifference() module.Module {
	return &AbsDifference{module.NewBase(module.Info{
		Name:        "absdifference",
		Category:    categoryDifference,
		Description: "Absolute difference of two frames",
		Type:        module.TypeProcessing,
		NumFrames:   2,
		Features:    module.FeatureSameFormat | module.FeatureSameResolution | module.FeatureNewWindow,
	}, nil)}
}

func (m *AbsDifference) Process(frames []*frame.Frame) (*frame.Frame, error) {
	return frame.AbsDifference(frames[0], frames[1])
}

// Scale resizes the frame.
type Scale struct{ module.Base }

var interpolators = map[string]frame.Interpolator{
	"nearest":    frame.Nearest,
	"bilinear":   frame.Bilinear,
	"catmullrom": frame.CatmullRom,
}

func NewScale() module.Module {
	opts := module.NewOptions().
		AddInt("width", 0, "output width, keeps the aspect ratio when 0").
		AddInt("height", 0, "output height, keeps the aspect ratio when 0").
		AddString("filter", "catmullrom", "nearest, bilinear or catmullrom")
	return &Scale{module.NewBase(module.Info{
		Name:        "scale",
		Category:    categoryGeometry,
		Description: "Resize the frame",
		Type:        module.TypeProcessing,
		NumFrames:   1,
		Features:    module.FeatureSameFormat | module.FeatureNewWindow,
	}, opts)}
}

func (m *Scale) Process(frames []*frame.Frame) (*frame.Frame, error) {
	f, opts := frames[0], m.Options()
	k, ok := interpolators[opts.GetString("filter")]
	if !ok {
		return nil, fmt.Errorf("%w: filter=%q", module.ErrInvalidOption, opts.GetString("filter"))
	}
	w, h := opts.GetInt("width"), opts.GetInt("height")
	switch {
	case w == 0 && h == 0:
		w, h = f.Width(), f.Height()
	case w == 0:
		w = max(1, (f.Width()*h+f.Height()/2)/f.Height())
	case h == 0:
		h = max(1, (f.Height()*w+f.Width()/2)/f.Width())
	}
	return f.Resize(w, h, k)
}
