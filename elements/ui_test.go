package elements_test

import (
	"math"
	"testing"

	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollBarHiddenOnFullRange(t *testing.T) {
	s := graphics.NewStage(200, 100)
	sb := elements.NewScrollBar()
	sb.SetContainer(s.Root())
	sb.Draw()
	layer := s.Root().Children()[0]
	assert.True(t, sb.Hidden())
	assert.False(t, layer.Visible())
	assert.Equal(t, 1, s.Stats().Frames)

	sb.SetRatios(0.5, 0.5)
	assert.True(t, sb.Hidden())
	sb.SetRatios(0.6, 0.2)
	assert.InDelta(t, 0.2, sb.Start(), 1e-9)
	assert.InDelta(t, 0.6, sb.End(), 1e-9)
	assert.False(t, sb.Hidden())
}

func TestScrollBarThumbAndTrackClick(t *testing.T) {
	s := graphics.NewStage(200, 100)
	sb := elements.NewScrollBar()
	sb.SetContainer(s.Root())
	sb.Draw()

	var changes [][2]float64
	sb.OnChange(func(start, end float64) { changes = append(changes, [2]float64{start, end}) })
	got := record(sb)
	sb.SetRatios(0.2, 0.4)
	assert.Equal(t, []signal.Mask{signal.NeedsRedraw}, *got)
	require.Len(t, changes, 1)

	sb.Draw()
	require.True(t, sb.IsConsistent())
	layer := s.Root().Children()[0].(graphics.Layer)
	assert.True(t, layer.Visible())
	thumb := sb.ThumbBounds()
	assert.InDelta(t, 40, thumb.Left, 1e-9)
	assert.InDelta(t, 90, thumb.Top, 1e-9)
	assert.InDelta(t, 40, thumb.Width, 1e-9)
	assert.InDelta(t, 90, sb.RemainingBounds().Height, 1e-9)

	track := layer.Children()[0]
	track.Dispatch(graphics.PointerEvent{Type: "click", X: 150, Y: 95})
	assert.InDelta(t, 0.65, sb.Start(), 1e-9)
	assert.InDelta(t, 0.85, sb.End(), 1e-9)
	assert.Len(t, changes, 2)

	track.Dispatch(graphics.PointerEvent{Type: "click", X: 199, Y: 95})
	assert.InDelta(t, 0.8, sb.Start(), 1e-9)
	assert.InDelta(t, 1, sb.End(), 1e-9)
}

func TestScrollBarSmallThumbKeepsMinimumSize(t *testing.T) {
	s := graphics.NewStage(200, 100)
	sb := elements.NewScrollBar()
	sb.SetContainer(s.Root())
	sb.SetRatios(0.5, 0.51)
	sb.Draw()
	assert.InDelta(t, 8, sb.ThumbBounds().Width, 1e-9)
}

func TestScrollBarFullRangeOnNarrowTrack(t *testing.T) {
	s := graphics.NewStage(5, 100)
	sb := elements.NewScrollBar()
	sb.SetContainer(s.Root())
	sb.SetRatios(0, 1)
	sb.Draw()
	thumb := sb.ThumbBounds()
	assert.False(t, math.IsNaN(thumb.Left), "%+v", thumb)
	assert.InDelta(t, 0, thumb.Left, 1e-9)
	assert.InDelta(t, 5, thumb.Width, 1e-9)
}

func TestTooltipShowHide(t *testing.T) {
	s := graphics.NewStage(200, 100)
	tt := elements.NewTooltip()
	tt.SetContainer(s.Root())
	tt.Draw()
	layer := s.Root().Children()[0]
	assert.False(t, layer.Visible())

	got := record(tt)
	tt.Show("Title", "value: 10", 190, 90)
	assert.Equal(t, []signal.Mask{signal.NeedsRedraw}, *got)
	tt.Draw()
	require.True(t, tt.IsConsistent())
	assert.True(t, layer.Visible())

	tw, th := graphics.MeasureText("Title", tt.Title().FontSize())
	cw, ch := graphics.MeasureText("value: 10", 12)
	w, h := max(tw, cw)+12, th+ch+18
	box := tt.Box()
	assert.InDelta(t, w, box.Width, 1e-9)
	assert.InDelta(t, h, box.Height, 1e-9)
	assert.InDelta(t, 190-10-w, box.Left, 1e-9)
	assert.InDelta(t, 90-10-h, box.Top, 1e-9)

	var texts []string
	walk(layer.(graphics.Layer), func(e graphics.Element) {
		if txt, ok := e.(graphics.Text); ok {
			texts = append(texts, txt.Text())
		}
	})
	assert.ElementsMatch(t, []string{"Title", "value: 10"}, texts)

	tt.Show("Title", "value: 10", 190, 90)
	assert.Len(t, *got, 1)

	tt.Hide()
	tt.Draw()
	assert.False(t, layer.Visible())
	assert.False(t, tt.Visible())
}
