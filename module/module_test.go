package module

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/playuver/frame"
)

// invert is a test module that inverts every sample and counts Create and
// Destroy calls.
type invert struct {
	Base
	created, destroyed int
}

func newInvert() Module {
	return &invert{Base: NewBase(Info{Name: "invert", Category: "Test", Type: TypeProcessing, NumFrames: 1}, nil)}
}

func (m *invert) Create([]*frame.Frame) error {
	m.created++
	return nil
}

func (m *invert) Destroy() { m.destroyed++ }

func (m *invert) Process(frames []*frame.Frame) (*frame.Frame, error) {
	f := frames[0].Copy()
	for p := range f.NumPlanes() {
		for i, v := range f.Plane(p) {
			f.Plane(p)[i] = uint16(f.MaxValue()) - v
		}
	}
	return f, nil
}

type count struct{ Base }

func newCount() Module {
	return &count{NewBase(Info{
		Name: "count", Category: "Measure", Type: TypeMeasurement, NumFrames: 2,
		Features: FeatureSameFormat | FeatureSameResolution,
	}, NewOptions().AddFloat("scale", 1, "multiplier"))}
}

func (m *count) Measure(frames []*frame.Frame) (float64, error) {
	return float64(len(frames[0].Plane(0))) * m.Options().GetFloat("scale"), nil
}

func gray(t *testing.T, w, h int, v int) *frame.Frame {
	t.Helper()
	f, err := frame.New(w, h, frame.YUV400, 8)
	require.NoError(t, err)
	f.Fill(0, v)
	return f
}

func TestOptions(t *testing.T) {
	o := NewOptions().
		AddInt("n", 3, "").
		AddFloat("gain", 1.5, "").
		AddBool("on", false, "").
		AddString("mode", "fast", "")
	assert.Equal(t, 4, o.Len())
	assert.Equal(t, 3, o.GetInt("n"))
	assert.Equal(t, 1.5, o.GetFloat("gain"))
	assert.False(t, o.GetBool("on"))
	assert.Equal(t, "fast", o.GetString("mode"))
	assert.Zero(t, o.GetInt("missing"))

	require.NoError(t, o.Parse("n=7", "gain = 0.25", "on", "mode=slow"))
	assert.Equal(t, 7, o.GetInt("n"))
	assert.Equal(t, 0.25, o.GetFloat("gain"))
	assert.True(t, o.GetBool("on"))
	assert.Equal(t, "slow", o.GetString("mode"))

	assert.ErrorIs(t, o.Set("n", "seven"), ErrInvalidOption)
	assert.ErrorIs(t, o.Set("nope", "1"), ErrUnknownOption)
	assert.ErrorIs(t, o.Parse("n"), ErrInvalidOption)

	o.Reset()
	assert.Equal(t, 3, o.GetInt("n"))
	opt, ok := o.Lookup("gain")
	require.True(t, ok)
	assert.Equal(t, KindFloat, opt.Kind)
	assert.Equal(t, 1.5, opt.Value())

	assert.Panics(t, func() { o.AddInt("n", 0, "") })
}

func TestBase(t *testing.T) {
	m := newInvert()
	assert.False(t, m.Info().Features.Has(FeatureOptions))
	c := newCount()
	assert.True(t, c.Info().Features.Has(FeatureOptions))
	assert.Equal(t, "same-format,same-resolution,options", c.Info().Features.String())

	_, err := c.Process(nil)
	assert.ErrorIs(t, err, ErrNotProcessing)
	_, err = m.Measure(nil)
	assert.ErrorIs(t, err, ErrNotMeasurement)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("invert", newInvert)
	r.Register("count", newCount)
	assert.Panics(t, func() { r.Register("invert", newInvert) })
	assert.Panics(t, func() { r.Register("", newInvert) })

	assert.Equal(t, []string{"count", "invert"}, r.Names())
	m, err := r.New("invert")
	require.NoError(t, err)
	assert.Equal(t, "invert", m.Info().Name)
	_, err = r.New("blur")
	assert.ErrorIs(t, err, ErrUnknownModule)

	infos := r.Infos()
	require.Len(t, infos, 2)
	assert.Equal(t, "Measure", infos[0].Category)
	assert.Equal(t, "Test", infos[1].Category)

	cats := r.ByCategory()
	assert.Len(t, cats["Test"], 1)
	assert.Len(t, cats["Measure"], 1)
}

func TestValidate(t *testing.T) {
	info := newCount().Info()
	test := []struct {
		name   string
		frames []*frame.Frame
		err    error
	}{
		{"ok", []*frame.Frame{gray(t, 2, 2, 0), gray(t, 2, 2, 1)}, nil},
		{"count", []*frame.Frame{gray(t, 2, 2, 0)}, ErrFrameCount},
		{"nil", []*frame.Frame{gray(t, 2, 2, 0), nil}, ErrNilFrame},
		{"size", []*frame.Frame{gray(t, 2, 2, 0), gray(t, 4, 2, 0)}, ErrIncompatible},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(info, tt.frames)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}

	rgb, err := frame.New(2, 2, frame.RGBp, 8)
	require.NoError(t, err)
	assert.ErrorIs(t, Validate(info, []*frame.Frame{gray(t, 2, 2, 0), rgb}), ErrIncompatible)
}

func TestRunner(t *testing.T) {
	ctx := context.Background()
	m := newInvert().(*invert)
	r := NewRunner(m)
	for range 3 {
		res, err := r.Run(ctx, gray(t, 2, 2, 10))
		require.NoError(t, err)
		assert.Equal(t, uint16(245), res.Frame.At(0, 0, 0))
	}
	assert.Equal(t, 1, m.created)
	r.Close()
	r.Close()
	assert.Equal(t, 1, m.destroyed)

	res, err := Run(ctx, newCount(), gray(t, 2, 3, 0), gray(t, 2, 3, 0))
	require.NoError(t, err)
	assert.Equal(t, 6.0, res.Value)
	assert.Nil(t, res.Frame)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Run(cancelled, newInvert(), gray(t, 2, 2, 0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline(t *testing.T) {
	ctx := context.Background()
	p := NewPipeline()
	src := gray(t, 2, 2, 10)

	got, err := p.Apply(ctx, src)
	require.NoError(t, err)
	assert.NotSame(t, src, got)
	assert.Equal(t, src.Plane(0), got.Plane(0))

	require.NoError(t, p.Add(newInvert()))
	assert.ErrorIs(t, p.Add(newCount()), ErrNotChainable)
	assert.Equal(t, 1, p.Len())

	got, err = p.Apply(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, uint16(245), got.At(0, 0, 0))
	assert.Equal(t, uint16(10), src.At(0, 0, 0), "source untouched")

	require.NoError(t, p.Add(newInvert()))
	assert.Equal(t, []string{"invert", "invert"}, p.Names())
	got, err = p.Apply(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, uint16(10), got.At(0, 0, 0))

	_, err = p.Apply(ctx, nil)
	assert.ErrorIs(t, err, ErrNilFrame)

	p.Clear()
	assert.Zero(t, p.Len())
}
