package chart_test

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/delaneyj/chartparty/chart"
	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	chart.Base
	drawn []graphics.Rect
}

func newStub() *stub {
	c := &stub{}
	c.Base = chart.NewBase(c, "stub", 0, 0)
	c.Init()
	return c
}

func (c *stub) DrawContent(bounds graphics.Rect) {
	c.drawn = append(c.drawn, bounds)
}

func record(c *stub) *[]signal.Mask {
	var got []signal.Mask
	c.ListenSignalsFunc(func(ev signal.Event) { got = append(got, ev.Signals) })
	return &got
}

func ptr[T any](v T) *T { return &v }

func TestDrawLaysOutTitleAndLegend(t *testing.T) {
	stage := graphics.NewStage(400, 300)
	c := newStub()
	c.SetContainer(stage.Root())
	c.Title().SetEnabled(true)
	c.Title().SetText("Sales")
	c.Legend().SetEnabled(true)
	c.Legend().SetItems([]elements.LegendItem{{Text: "a", Color: color.Black}})

	c.Draw()
	require.Len(t, c.drawn, 1)
	got := c.ContentBounds()
	assert.InDelta(t, c.Title().Height(), got.Top, 1e-9)
	assert.InDelta(t, 300-c.Title().Height()-c.Legend().Size(), got.Height, 1e-9)
	assert.Equal(t, 400.0, got.Width)
	assert.True(t, c.IsConsistent(), c.ConsistencyString())
	assert.Same(t, stage.Root(), c.Root().Parent())
}

func TestDrawIsIdempotent(t *testing.T) {
	stage := graphics.NewStage(200, 100)
	c := newStub()
	c.SetContainer(stage.Root())
	c.Title().SetEnabled(true)
	c.Title().SetText("T")

	c.Draw()
	assert.Equal(t, 1, stage.Stats().Frames)
	before := stage.Stats()
	c.Draw()
	assert.Equal(t, before, stage.Stats())
	assert.Len(t, c.drawn, 1)
}

func TestChildChangesAreRemapped(t *testing.T) {
	stage := graphics.NewStage(200, 100)
	c := newStub()
	c.SetContainer(stage.Root())
	c.Draw()
	got := record(c)

	c.Background().SetFill(color.Black)
	require.Equal(t, []signal.Mask{signal.NeedsRedraw}, *got)
	assert.True(t, c.HasInvalidationState(chart.Background))
	assert.False(t, c.HasInvalidationState(consistency.Bounds))

	c.Title().SetEnabled(true)
	c.Title().SetText("Now with a title")
	assert.True(t, c.HasInvalidationState(chart.Title|consistency.Bounds))
	assert.Equal(t, signal.NeedsRedraw|signal.BoundsChanged, (*got)[len(*got)-1])

	c.Draw()
	require.Len(t, c.drawn, 2)
	assert.Greater(t, c.ContentBounds().Top, 0.0)
	assert.True(t, c.IsConsistent())
}

func TestMarginShrinksContent(t *testing.T) {
	stage := graphics.NewStage(200, 100)
	c := newStub()
	c.SetContainer(stage.Root())
	c.SetMargin(10)
	c.Draw()
	assert.Equal(t, graphics.R(10, 10, 180, 80), c.ContentBounds())
}

func TestMissingContainerReports(t *testing.T) {
	rec := reporting.NewRecorder()
	defer reporting.SetReporter(rec)()

	c := newStub()
	c.Draw()
	assert.Equal(t, []reporting.ErrorCode{reporting.ErrContainerNotSet}, rec.Errors())
	assert.Empty(t, c.drawn)
	assert.False(t, c.IsConsistent())
}

func TestSetupDispatchesOnce(t *testing.T) {
	c := newStub()
	got := record(c)
	c.Setup(chart.Config{
		Margin: ptr(4.0),
		Title:  &elements.TitleConfig{Text: ptr("Hello")},
		Background: &elements.BackgroundConfig{
			Fill: ptr("#eeeeee"),
		},
	})
	require.Len(t, *got, 1)
	assert.True(t, (*got)[0].Has(signal.NeedsRedraw))

	cfg := c.Serialize()
	assert.Equal(t, 4.0, *cfg.Margin)
	assert.Equal(t, "Hello", *cfg.Title.Text)
	assert.Equal(t, "#eeeeee", *cfg.Background.Fill)
}

func TestSaveAsPNGIsDeprecated(t *testing.T) {
	rec := reporting.NewRecorder()
	defer reporting.SetReporter(rec)()

	stage := graphics.NewStage(40, 30)
	c := newStub()
	c.SetContainer(stage.Root())
	c.Draw()

	var buf bytes.Buffer
	require.NoError(t, c.SaveAsPNG(&buf))
	assert.NotZero(t, buf.Len())
	assert.Equal(t, []reporting.WarningCode{reporting.WarnDeprecated}, rec.Warnings())
}

func TestDisposeDetachesRoot(t *testing.T) {
	stage := graphics.NewStage(40, 30)
	c := newStub()
	c.SetContainer(stage.Root())
	c.Draw()
	require.Equal(t, 1, stage.Root().NumChildren())

	c.Dispose()
	assert.Equal(t, 0, stage.Root().NumChildren())
	assert.True(t, c.IsDisposed())
}
