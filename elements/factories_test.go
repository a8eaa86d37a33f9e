package elements_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsReuseElements(t *testing.T) {
	s := graphics.NewStage(100, 100)
	l := elements.NewLabels()
	l.SetContainer(s.Root())
	for i := 0; i < 3; i++ {
		l.Add(i, "x", float64(i*10), 0, elements.AnchorLeftTop)
	}
	l.Draw()
	require.True(t, l.IsConsistent())
	layer := s.Root().Children()[0].(graphics.Layer)
	assert.Equal(t, 3, layer.NumChildren())
	created := s.Stats().Created

	l.Clear()
	assert.Equal(t, 3, l.Pooled())
	assert.Equal(t, 0, layer.NumChildren())

	l.Add(0, "y", 5, 5, elements.AnchorCenter)
	l.Draw()
	assert.Equal(t, 2, l.Pooled())
	assert.Equal(t, created, s.Stats().Created)
	require.Equal(t, 1, layer.NumChildren())
	txt := layer.Children()[0].(graphics.Text)
	assert.Equal(t, "y", txt.Text())
	x, y := txt.Position()
	w, h := graphics.MeasureText("y", 11)
	assert.InDelta(t, 5-w/2, x, 1e-9)
	assert.InDelta(t, 5-h/2, y, 1e-9)
}

func TestLabelsHiddenAndFormatter(t *testing.T) {
	rec := reporting.NewRecorder()
	defer reporting.SetReporter(rec)()

	s := graphics.NewStage(100, 100)
	l := elements.NewLabels()
	l.SetContainer(s.Root())
	assert.Equal(t, "2.5", l.Format(2.5))

	l.SetFormatter(func(v float64) string { return fmt.Sprintf("$%.0f", v) })
	assert.Equal(t, "$5", l.Format(5))
	lbl := l.Add(0, l.Format(5), 0, 0, elements.AnchorLeftTop)
	lbl.Hidden = true
	l.Draw()
	txt := s.Root().Children()[0].(graphics.Layer).Children()[0]
	assert.False(t, txt.Visible())

	l.Serialize()
	assert.Equal(t, []reporting.WarningCode{reporting.WarnCantSerializeFunction}, rec.Warnings())
}

func TestMarkersHandlersAndRelease(t *testing.T) {
	s := graphics.NewStage(100, 100)
	m := elements.NewMarkers()
	m.SetContainer(s.Root())
	var clicked []int
	m.SetHandler("click", func(mk *elements.Marker, _ graphics.PointerEvent) {
		clicked = append(clicked, mk.Index)
	})
	m.Add(7, 10, 10)
	m.Add(8, 20, 20)
	m.Draw()

	paths := s.Root().Children()[0].(graphics.Layer).Children()
	require.Len(t, paths, 2)
	assert.True(t, paths[1].Dispatch(graphics.PointerEvent{Type: "click"}))
	assert.Equal(t, []int{8}, clicked)
	assert.Equal(t, graphics.R(5, 5, 20, 20), m.Bounds())

	m.Clear()
	assert.Equal(t, 2, m.Pooled())
	assert.Zero(t, paths[1].HandlerCount())
	assert.Nil(t, paths[1].Tag())
	assert.Nil(t, paths[1].Parent())
	assert.Empty(t, paths[1].(graphics.Path).Commands())
}

func TestMarkersShapes(t *testing.T) {
	s := graphics.NewStage(100, 100)
	m := elements.NewMarkers()
	m.SetContainer(s.Root())
	m.SetType(elements.Square)
	m.Add(0, 10, 10)
	m.Draw()
	p := s.Root().Children()[0].(graphics.Layer).Children()[0].(graphics.Path)
	assert.Equal(t, graphics.R(5, 5, 10, 10), p.Bounds())

	m.SetType(elements.Diamond)
	m.Draw()
	assert.Len(t, p.Commands(), 5)
	assert.Equal(t, graphics.R(5, 5, 10, 10), p.Bounds())
}

func TestTicksLayout(t *testing.T) {
	s := graphics.NewStage(100, 100)
	tk := elements.NewTicks()
	tk.SetContainer(s.Root())
	tk.Layout(elements.Bottom, 50, []float64{10, 20})
	tk.Draw()
	p := s.Root().Children()[0].(graphics.Path)
	assert.Equal(t, []graphics.PathCommand{
		{Op: 'M', X: 10, Y: 50}, {Op: 'L', X: 10, Y: 56},
		{Op: 'M', X: 20, Y: 50}, {Op: 'L', X: 20, Y: 56},
	}, p.Commands())
	assert.Equal(t, 6.0, tk.Extent())

	before := s.Stats()
	tk.Layout(elements.Bottom, 50, []float64{10, 20})
	tk.Draw()
	assert.Equal(t, before, s.Stats())

	tk.SetPosition(elements.TicksInside)
	assert.Zero(t, tk.Extent())
	tk.Layout(elements.Left, 50, []float64{5})
	tk.Draw()
	assert.Equal(t, []graphics.PathCommand{{Op: 'M', X: 50, Y: 5}, {Op: 'L', X: 56, Y: 5}}, p.Commands())
}
