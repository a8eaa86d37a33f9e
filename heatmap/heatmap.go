// Package heatmap draws a grid of cells colored through a color scale, with
// a column axis at the bottom and a row axis on the left.
package heatmap

import (
	"image/color"
	"math"

	"github.com/delaneyj/chartparty/chart"
	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/pool"
	"github.com/delaneyj/chartparty/scales"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

const family = "heatmap"

var (
	StateAxes       = chart.Register(family, 0, "HEATMAP_AXES")
	StateSeries     = chart.Register(family, 1, "HEATMAP_SERIES")
	StateScales     = chart.Register(family, 2, "HEATMAP_SCALES")
	StateColorRange = chart.Register(family, 3, "HEATMAP_COLOR_RANGE")

	States = StateAxes | StateSeries | StateScales | StateColorRange
)

var cellStroke = graphics.Stroke{Color: color.White, Thickness: 1}

type HeatMap struct {
	chart.Base

	series         *Series
	seriesListener signal.Listener

	xScale     core.Slot[*scales.Linear]
	yScale     core.Slot[*scales.Linear]
	colorScale core.Slot[*scales.LinearColor]
	xAxis      core.Slot[*elements.Axis]
	yAxis      core.Slot[*elements.Axis]

	onCellClick func(Cell)

	layer graphics.Layer
	cells *pool.Pool[graphics.Path]
	paths []graphics.Path
	plot  graphics.Rect
}

func New() *HeatMap {
	h := &HeatMap{}
	h.Base = chart.NewBase(h, family, States, signal.DataChanged)
	h.Init()

	h.series = NewSeries()
	h.seriesListener = h.series.ListenSignals(signal.Func(h.seriesInvalidated))

	scaleListener := signal.Func(h.scaleInvalidated)
	h.xScale = core.NewSlot[*scales.Linear](scaleListener)
	h.yScale = core.NewSlot[*scales.Linear](scaleListener)
	h.colorScale = core.NewSlot[*scales.LinearColor](scaleListener)

	axisRemap := core.Remap{
		{When: signal.NeedsRedraw, State: StateAxes, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: StateAxes | StateSeries, Signal: signal.NeedsRedraw | signal.BoundsChanged},
	}
	h.xAxis = core.NewSlot[*elements.Axis](core.Forward(h, axisRemap))
	h.yAxis = core.NewSlot[*elements.Axis](core.Forward(h, axisRemap))
	return h
}

func (h *HeatMap) seriesInvalidated(ev signal.Event) {
	var (
		state consistency.State
		sig   signal.Mask
	)
	if ev.TargetNeedsRedraw() {
		state |= StateSeries
		sig |= signal.NeedsRedraw
	}
	if ev.TargetDataChanged() {
		state |= StateScales | StateSeries
		sig |= signal.NeedsRedraw | signal.DataChanged
	}
	if ev.HasSignal(signal.NeedUpdateColorRange) {
		state |= StateColorRange | StateSeries
		sig |= signal.NeedsRedraw
	}
	h.Invalidate(state, sig)
}

func (h *HeatMap) scaleInvalidated(ev signal.Event) {
	if ev.HasSignal(scales.Signals) {
		h.Invalidate(StateSeries, signal.NeedsRedraw)
	}
}

func (h *HeatMap) Series() *Series { return h.series }

func (h *HeatMap) XScale() *scales.Linear {
	return h.xScale.Get(scales.NewLinear)
}

func (h *HeatMap) YScale() *scales.Linear {
	return h.yScale.Get(scales.NewLinear)
}

func (h *HeatMap) ColorScale() *scales.LinearColor {
	return h.colorScale.Get(func() *scales.LinearColor { return scales.NewLinearColor() })
}

func (h *HeatMap) SetColorScale(s *scales.LinearColor) {
	if s != nil && h.colorScale.Set(s) {
		h.Invalidate(StateColorRange|StateSeries, signal.NeedsRedraw)
	}
}

func (h *HeatMap) XAxis() *elements.Axis {
	return h.xAxis.Get(func() *elements.Axis {
		a := elements.NewAxis()
		a.SetScale(h.XScale())
		return a
	})
}

func (h *HeatMap) YAxis() *elements.Axis {
	return h.yAxis.Get(func() *elements.Axis {
		a := elements.NewAxis()
		a.SetOrientation(elements.Left)
		a.SetScale(h.YScale())
		return a
	})
}

func (h *HeatMap) OnCellClick(fn func(Cell)) {
	h.onCellClick = fn
}

// PlotBounds is the area cells were last drawn in.
func (h *HeatMap) PlotBounds() graphics.Rect { return h.plot }

// CellPaths returns the drawn cells in series order.
func (h *HeatMap) CellPaths() []graphics.Path { return h.paths }

func (h *HeatMap) DrawContent(bounds graphics.Rect) {
	if h.layer == nil {
		h.layer = h.Root().Stage().Layer()
		h.layer.SetTag(h)
		h.layer.SetParent(h.Root())
	}

	// The axes listen to the scales too: resuming with dispatch lets them
	// drop their labels, what they send back only marks states here.
	if h.HasInvalidationState(StateScales) {
		columns, rows := h.series.Extent()
		fit(h.XScale(), columns)
		fit(h.YScale(), rows)
		h.MarkConsistent(StateScales)
	}

	if h.HasInvalidationState(StateColorRange) {
		cs := h.ColorScale()
		cs.SuspendSignalsDispatching()
		cs.ResetDataRange()
		for _, c := range h.series.cells {
			cs.ExtendDataRange(c.Value)
		}
		cs.ResumeSignalsDispatching(false)
		h.Invalidate(StateSeries, 0)
		h.MarkConsistent(StateColorRange)
	}

	if h.HasInvalidationState(StateAxes | consistency.Bounds) {
		xAxis, yAxis := h.XAxis(), h.YAxis()
		xSize, ySize := xAxis.Size(), yAxis.Size()
		plot := graphics.R(bounds.Left+ySize, bounds.Top, math.Max(0, bounds.Width-ySize), math.Max(0, bounds.Height-xSize))
		if plot != h.plot {
			h.plot = plot
			h.Invalidate(StateSeries, 0)
		}
		visual.Place(xAxis, h.layer, graphics.R(plot.Left, plot.Top, plot.Width, plot.Height+xSize))
		visual.Place(yAxis, h.layer, graphics.R(bounds.Left, plot.Top, plot.Width+ySize, plot.Height))
		h.MarkConsistent(StateAxes)
	}

	if h.HasInvalidationState(StateSeries) {
		h.drawCells()
		h.MarkConsistent(StateSeries)
	}
}

func fit(s *scales.Linear, n int) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)
	s.ResetDataRange()
	if n > 0 {
		s.ExtendDataRange(0, float64(n))
	}
}

func (h *HeatMap) drawCells() {
	if h.cells == nil {
		h.cells = pool.New(h.Root().Stage().Path, pool.ResetElement[graphics.Path])
	}
	for _, p := range h.paths {
		h.cells.Release(p)
	}
	h.paths = h.paths[:0]

	cs := h.ColorScale()
	for _, c := range h.series.cells {
		p := h.cells.Checkout()
		p.SetTag(h)
		p.SetParent(h.layer)
		p.Rect(h.cellBounds(c))
		p.SetFill(cs.ValueToColor(c.Value))
		p.SetStroke(cellStroke)
		p.On("click", func(graphics.PointerEvent) {
			if h.onCellClick != nil {
				h.onCellClick(c)
			}
		})
		h.paths = append(h.paths, p)
	}
}

func (h *HeatMap) cellBounds(c Cell) graphics.Rect {
	xs, ys := h.XScale(), h.YScale()
	x0 := h.plot.Left + xs.Transform(float64(c.Column))*h.plot.Width
	x1 := h.plot.Left + xs.Transform(float64(c.Column+1))*h.plot.Width
	y0 := h.plot.Bottom() - ys.Transform(float64(c.Row+1))*h.plot.Height
	y1 := h.plot.Bottom() - ys.Transform(float64(c.Row))*h.plot.Height
	return graphics.R(math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0))
}

// Pooled is the number of cell paths waiting for reuse.
func (h *HeatMap) Pooled() int {
	if h.cells == nil {
		return 0
	}
	return h.cells.Free()
}

func (h *HeatMap) Dispose() {
	if h.IsDisposed() {
		return
	}
	h.series.UnlistenSignals(h.seriesListener)
	h.series.Dispose()
	h.xAxis.Dispose()
	h.yAxis.Dispose()
	h.xScale.Clear()
	h.yScale.Clear()
	h.colorScale.Clear()
	h.Base.Dispose()
}
