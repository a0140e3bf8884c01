package view

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector(t *testing.T) {
	bounds := image.Rect(0, 0, 20, 10)
	test := []struct {
		name     string
		tool     Tool
		from, to image.Point
		want     image.Rectangle
	}{
		{"reversed drag", ToolSelection, image.Pt(5, 5), image.Pt(2, 8), image.Rect(2, 5, 6, 9)},
		{"clipped", ToolSelection, image.Pt(15, 2), image.Pt(30, -5), image.Rect(15, 0, 20, 3)},
		{"single pixel", ToolSelection, image.Pt(3, 3), image.Pt(3, 3), image.Rect(3, 3, 4, 4)},
		{"block", ToolBlockSelection, image.Pt(5, 5), image.Pt(6, 6), image.Rect(4, 4, 8, 8)},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(bounds)
			s.Tool = tt.tool
			s.Grid = &Grid{HSpacing: 4, VSpacing: 4}
			s.Begin(tt.from)
			assert.True(t, s.Dragging())
			s.Move(tt.to)
			got, ok := s.End()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			sel, ok := s.Selection()
			assert.True(t, ok)
			assert.Equal(t, tt.want, sel)
		})
	}
}

func TestSelectorGestures(t *testing.T) {
	s := NewSelector(image.Rect(0, 0, 20, 10))

	s.Begin(image.Pt(1, 1))
	s.Move(image.Pt(3, 3))
	live, ok := s.Selection()
	assert.True(t, ok)
	assert.Equal(t, image.Rect(1, 1, 4, 4), live)
	s.End()

	s.Clear()
	_, ok = s.Selection()
	assert.False(t, ok)

	s.Tool = ToolNavigation
	s.Begin(image.Pt(1, 1))
	_, ok = s.End()
	assert.False(t, ok)

	s.Tool = ToolSelection
	s.Begin(image.Pt(25, 25))
	_, ok = s.End()
	assert.False(t, ok, "outside the image")

	s.Select(image.Rect(15, 5, 40, 40))
	sel, _ := s.Selection()
	assert.Equal(t, image.Rect(15, 5, 20, 10), sel)
	s.SetBounds(image.Rect(0, 0, 18, 8))
	sel, _ = s.Selection()
	assert.Equal(t, image.Rect(15, 5, 18, 8), sel)
}

func TestSelectorMask(t *testing.T) {
	s := NewSelector(image.Rect(0, 0, 20, 10))
	s.Mask = NewMask(20, 10)

	s.Tool = ToolMask
	s.Begin(image.Pt(0, 0))
	s.Move(image.Pt(1, 1))
	_, ok := s.End()
	require.True(t, ok)
	assert.Equal(t, 4, s.Mask.Count())

	s.Tool = ToolEraser
	s.Begin(image.Pt(1, 1))
	_, ok = s.End()
	require.True(t, ok)
	assert.Equal(t, 3, s.Mask.Count())
	assert.False(t, s.Mask.At(1, 1))

	_, ok = s.Selection()
	assert.False(t, ok, "mask gestures do not select")
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{ToolNavigation, ToolSelection, ToolBlockSelection, ToolMask, ToolEraser} {
		got, err := ParseTool(tool.String())
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}
	_, err := ParseTool("lasso")
	assert.Error(t, err)
}
