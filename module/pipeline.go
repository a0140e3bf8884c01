package module

import (
	"context"
	"fmt"

	"github.com/yyyoichi/playuver/frame"
)

// Pipeline applies single input processing modules in sequence.
type Pipeline struct {
	runners []*Runner
}

func NewPipeline() *Pipeline {
	return &Pipeline{runners: make([]*Runner, 0)}
}

// Add appends m. Only processing modules taking one frame can be chained.
func (p *Pipeline) Add(m Module) error {
	info := m.Info()
	if info.Type != TypeProcessing || info.NumFrames != 1 {
		return fmt.Errorf("%w: %s (%s, %d frames)", ErrNotChainable, info.Name, info.Type, info.NumFrames)
	}
	p.runners = append(p.runners, NewRunner(m))
	return nil
}

// Apply runs f through every module. An empty pipeline returns a copy.
func (p *Pipeline) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	if f == nil {
		return nil, ErrNilFrame
	}
	current := f.Copy()
	for i, r := range p.runners {
		res, err := r.Run(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("module %d (%s) failed: %w", i, r.Module().Info().Name, err)
		}
		current = res.Frame
	}
	return current, nil
}

func (p *Pipeline) Len() int { return len(p.runners) }

// Names lists the chained modules in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.runners))
	for i, r := range p.runners {
		names[i] = r.Module().Info().Name
	}
	return names
}

// Clear destroys and removes every module.
func (p *Pipeline) Clear() {
	for _, r := range p.runners {
		r.Close()
	}
	p.runners = p.runners[:0]
}
