package graphics_test

import (
	"image/color"
	"testing"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachDetachCounts(t *testing.T) {
	s := graphics.NewStage(100, 50)
	l := s.Layer()
	p := s.Path()

	p.SetParent(l)
	p.SetParent(l)
	l.SetParent(s.Root())
	assert.Equal(t, 2, s.Stats().Attached)
	assert.Equal(t, 2, s.Stats().Created)

	p.SetParent(nil)
	p.SetParent(nil)
	assert.Equal(t, 1, s.Stats().Detached)
	assert.Equal(t, 0, l.NumChildren())
	assert.Nil(t, p.Parent())
}

func TestReparentMovesChild(t *testing.T) {
	s := graphics.NewStage(10, 10)
	a, b := s.Layer(), s.Layer()
	p := s.Path()
	a.AddChild(p)
	b.AddChild(p)
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, 1, b.NumChildren())
	assert.Equal(t, graphics.Layer(b), p.Parent())

	b.RemoveChildren()
	assert.Equal(t, 0, b.NumChildren())
}

func TestChildrenSortedByZIndex(t *testing.T) {
	s := graphics.NewStage(10, 10)
	root := s.Root()
	top, bottom, middle := s.Path(), s.Path(), s.Path()
	top.SetZIndex(10)
	middle.SetZIndex(5)
	root.AddChild(top)
	root.AddChild(bottom)
	root.AddChild(middle)

	got := root.Children()
	require.Len(t, got, 3)
	assert.Equal(t, bottom.ID(), got[0].ID())
	assert.Equal(t, middle.ID(), got[1].ID())
	assert.Equal(t, top.ID(), got[2].ID())
}

func TestPathBounds(t *testing.T) {
	s := graphics.NewStage(10, 10)
	p := s.Path()
	assert.True(t, p.Bounds().IsEmpty())
	p.Rect(graphics.R(5, 5, 10, 20))
	assert.Equal(t, graphics.R(5, 5, 10, 20), p.Bounds())
	assert.Len(t, p.Commands(), 5)

	p.Clear()
	assert.Empty(t, p.Commands())
	assert.Equal(t, 1, s.Stats().Cleared)
}

func TestLayerBoundsSkipsHidden(t *testing.T) {
	s := graphics.NewStage(100, 100)
	l := s.Layer()
	a, b := s.Path(), s.Path()
	a.Rect(graphics.R(0, 0, 10, 10))
	b.Rect(graphics.R(50, 50, 10, 10))
	l.AddChild(a)
	l.AddChild(b)
	assert.Equal(t, graphics.R(0, 0, 60, 60), l.Bounds())

	b.SetVisible(false)
	assert.Equal(t, graphics.R(0, 0, 10, 10), l.Bounds())
}

func TestPointerEventsBubble(t *testing.T) {
	s := graphics.NewStage(10, 10)
	l := s.Layer()
	p := s.Path()
	l.AddChild(p)

	var got []string
	p.On("click", func(ev graphics.PointerEvent) { got = append(got, "path:"+ev.Target.ID()) })
	l.On("click", func(ev graphics.PointerEvent) { got = append(got, "layer:"+ev.Target.ID()) })

	assert.True(t, p.Dispatch(graphics.PointerEvent{Type: "click"}))
	assert.Equal(t, []string{"path:" + p.ID(), "layer:" + p.ID()}, got)
	assert.False(t, p.Dispatch(graphics.PointerEvent{Type: "mouseover"}))

	assert.Equal(t, 1, p.HandlerCount())
	p.RemoveAllHandlers()
	assert.Equal(t, 0, p.HandlerCount())
}

func TestTextMeasure(t *testing.T) {
	s := graphics.NewStage(10, 10)
	txt := s.Text()
	txt.SetFontSize(10)
	txt.SetText("abcd")
	w, h := txt.Measure()
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h, 10.0)
	assert.Equal(t, graphics.R(0, 0, w, h), txt.Bounds())

	wide, _ := graphics.MeasureText("abcdabcd", 10)
	assert.Greater(t, wide, w)
	big, bigH := graphics.MeasureText("abcd", 20)
	assert.InDelta(t, 2*w, big, 0.5)
	assert.InDelta(t, 2*h, bigH, 0.5)

	w, h = graphics.MeasureText("", 10)
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.Equal(t, color.Black, txt.Color())
}

func TestStageFrames(t *testing.T) {
	s := graphics.NewStage(10, 10)
	s.Suspend()
	s.Suspend()
	s.Resume()
	assert.True(t, s.IsSuspended())
	s.Resume()
	s.Resume()
	assert.False(t, s.IsSuspended())
	assert.Equal(t, 1, s.Stats().Frames)
}

func TestRectHelpers(t *testing.T) {
	r := graphics.R(10, 10, 100, 50)
	assert.Equal(t, 110.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.True(t, r.Contains(50, 30))
	assert.False(t, r.Contains(5, 30))
	assert.Equal(t, graphics.R(15, 20, 85, 30), r.Inset(10, 0, 10, 5))
	assert.Equal(t, graphics.R(0, 0, 0, 0), graphics.R(0, 0, 5, 5).Inset(10, 10, 10, 10).Union(graphics.Rect{}))
	assert.True(t, r.Intersects(graphics.R(100, 50, 20, 20)))
	assert.False(t, r.Intersects(graphics.R(110, 10, 20, 20)))
	x, y := r.Center()
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 35.0, y)
}
