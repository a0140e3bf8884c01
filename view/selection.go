package view

import (
	"fmt"
	"image"
	"strings"
)

// Tool decides what a click-drag gesture does.
type Tool int

const (
	ToolNavigation Tool = iota
	ToolSelection
	ToolBlockSelection
	ToolMask
	ToolEraser
)

var toolNames = [...]string{"navigation", "selection", "block", "mask", "eraser"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

func ParseTool(name string) (Tool, error) {
	for i, n := range toolNames {
		if strings.EqualFold(name, n) {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Selector turns drag gestures in image space into rectangles. Both end
// points of a drag are included in the rectangle.
type Selector struct {
	Tool Tool
	// Grid snaps block selections. Nil disables snapping.
	Grid *Grid
	// Mask receives the rectangles of the mask and eraser tools.
	Mask *Mask

	bounds     image.Rectangle
	start, end image.Point
	dragging   bool
	selection  image.Rectangle
}

func NewSelector(bounds image.Rectangle) *Selector {
	return &Selector{Tool: ToolSelection, bounds: bounds}
}

func (s *Selector) SetBounds(bounds image.Rectangle) {
	s.bounds = bounds
	s.selection = s.selection.Intersect(bounds)
}

func (s *Selector) Dragging() bool { return s.dragging }

// Begin starts a gesture at p. The navigation tool never selects.
func (s *Selector) Begin(p image.Point) {
	if s.Tool == ToolNavigation {
		return
	}
	s.start, s.end = p, p
	s.dragging = true
}

func (s *Selector) Move(p image.Point) {
	if s.dragging {
		s.end = p
	}
}

// End finishes the gesture and returns the resulting rectangle. Mask and
// eraser gestures change the mask and leave the selection untouched.
func (s *Selector) End() (image.Rectangle, bool) {
	if !s.dragging {
		return image.Rectangle{}, false
	}
	s.dragging = false
	r := s.current()
	if r.Empty() {
		return r, false
	}
	switch s.Tool {
	case ToolMask:
		if s.Mask != nil {
			s.Mask.Add(r)
		}
	case ToolEraser:
		if s.Mask != nil {
			s.Mask.Erase(r)
		}
	default:
		s.selection = r
	}
	return r, true
}

func (s *Selector) current() image.Rectangle {
	r := image.Rectangle{Min: s.start, Max: s.end}.Canon()
	r.Max = r.Max.Add(image.Pt(1, 1))
	if s.Tool == ToolBlockSelection && s.Grid != nil {
		return s.Grid.SnapRect(r, s.bounds)
	}
	return r.Intersect(s.bounds)
}

// Selection returns the rectangle being dragged, or else the last selection.
func (s *Selector) Selection() (image.Rectangle, bool) {
	if s.dragging {
		r := s.current()
		return r, !r.Empty()
	}
	return s.selection, !s.selection.Empty()
}

// Select sets the selection directly, clipped to the bounds.
func (s *Selector) Select(r image.Rectangle) {
	s.selection = r.Canon().Intersect(s.bounds)
}

func (s *Selector) Clear() {
	s.selection = image.Rectangle{}
	s.dragging = false
}
