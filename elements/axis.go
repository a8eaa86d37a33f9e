package elements

import (
	"image/color"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

var (
	AxisTitle   = consistency.Register("axis", consistency.Family(0), "AXIS_TITLE")
	AxisLabels  = consistency.Register("axis", consistency.Family(1), "AXIS_LABELS")
	AxisTicks   = consistency.Register("axis", consistency.Family(2), "AXIS_TICKS")
	AxisOverlap = consistency.Register("axis", consistency.Family(3), "AXIS_OVERLAP")

	// AxisVisualStates is everything a layout change makes stale.
	AxisVisualStates = consistency.Appearance | AxisTitle | AxisLabels | AxisTicks | consistency.Bounds | AxisOverlap
)

const (
	axisRelayoutSignals = signal.NeedsRedraw | signal.BoundsChanged
	labelsPadding       = 2
)

// AxisScale is what an axis reads its ticks from.
type AxisScale interface {
	core.Signaller
	Transform(v float64) float64
	Ticks() []float64
}

// OverlapMode decides what happens to labels that collide.
type OverlapMode string

const (
	AllowOverlap OverlapMode = "allowOverlap"
	NoOverlap    OverlapMode = "noOverlap"
)

// Axis draws a scale along one side of its parent bounds: a line, major and
// minor ticks, major and minor labels and a title.
type Axis struct {
	visual.Base

	scale         AxisScale
	scaleListener signal.Listener

	orientation    Orientation
	stroke         graphics.Stroke
	overlapMode    OverlapMode
	drawFirstLabel bool
	drawLastLabel  bool

	title       core.Slot[*Title]
	labels      core.Slot[*Labels]
	minorLabels core.Slot[*Labels]
	ticks       core.Slot[*Ticks]
	minorTicks  core.Slot[*Ticks]

	layer graphics.Layer
	line  graphics.Path
}

func NewAxis() *Axis {
	a := &Axis{
		orientation:    Bottom,
		stroke:         graphics.Stroke{Color: color.NRGBA{R: 0xca, G: 0xd7, B: 0xdc, A: 0xff}, Thickness: 1},
		overlapMode:    NoOverlap,
		drawFirstLabel: true,
		drawLastLabel:  true,
	}
	a.Base = visual.NewBase(a, "axis", AxisVisualStates, 0)

	childRemap := func(redraw consistency.State) core.Remap {
		return core.Remap{
			{When: signal.BoundsChanged, State: AxisVisualStates, Signal: axisRelayoutSignals},
			{When: signal.NeedsRedraw, State: redraw, Signal: signal.NeedsRedraw},
		}
	}
	a.title = core.NewSlot[*Title](core.Forward(a, childRemap(AxisTitle)))
	a.labels = core.NewSlot[*Labels](core.Forward(a, childRemap(AxisLabels|AxisTicks)))
	a.minorLabels = core.NewSlot[*Labels](core.Forward(a, childRemap(AxisLabels)))
	a.ticks = core.NewSlot[*Ticks](core.Forward(a, childRemap(AxisTicks)))
	a.minorTicks = core.NewSlot[*Ticks](core.Forward(a, childRemap(AxisTicks)))
	a.scaleListener = signal.Func(a.scaleInvalidated)
	return a
}

func (a *Axis) scaleInvalidated(ev signal.Event) {
	if !ev.HasSignal(signal.NeedsReapplication | signal.NeedsRecalculation) {
		return
	}
	a.Labels().Clear()
	a.MinorLabels().Clear()
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) Title() *Title {
	return a.title.Get(func() *Title {
		t := NewTitle()
		t.SetFontSize(12)
		t.SetEnabled(false)
		return t
	})
}

func (a *Axis) Labels() *Labels {
	return a.labels.Get(NewLabels)
}

func (a *Axis) MinorLabels() *Labels {
	return a.minorLabels.Get(func() *Labels {
		l := NewLabels()
		l.SetFontSize(9)
		l.SetEnabled(false)
		return l
	})
}

func (a *Axis) Ticks() *Ticks {
	return a.ticks.Get(NewTicks)
}

func (a *Axis) MinorTicks() *Ticks {
	return a.minorTicks.Get(func() *Ticks {
		t := NewTicks()
		t.SetLength(3)
		t.SetEnabled(false)
		return t
	})
}

func (a *Axis) Scale() AxisScale { return a.scale }

// SetScale replaces the scale. The previous one is no longer listened.
func (a *Axis) SetScale(s AxisScale) {
	if a.scale == s {
		return
	}
	if a.scale != nil {
		a.scale.UnlistenSignals(a.scaleListener)
	}
	a.scale = s
	if s != nil {
		s.ListenSignals(a.scaleListener)
	}
	a.Labels().Clear()
	a.MinorLabels().Clear()
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) Orientation() Orientation { return a.orientation }
func (a *Axis) Stroke() graphics.Stroke  { return a.stroke }
func (a *Axis) OverlapMode() OverlapMode { return a.overlapMode }
func (a *Axis) DrawFirstLabel() bool     { return a.drawFirstLabel }
func (a *Axis) DrawLastLabel() bool      { return a.drawLastLabel }

func (a *Axis) SetOrientation(o Orientation) {
	if !o.Valid() || a.orientation == o {
		return
	}
	a.orientation = o
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) SetStroke(s graphics.Stroke) {
	if sameStroke(a.stroke, s) {
		return
	}
	a.stroke = s
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) SetOverlapMode(m OverlapMode) {
	if (m != AllowOverlap && m != NoOverlap) || a.overlapMode == m {
		return
	}
	a.overlapMode = m
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) SetDrawFirstLabel(v bool) {
	if a.drawFirstLabel == v {
		return
	}
	a.drawFirstLabel = v
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) SetDrawLastLabel(v bool) {
	if a.drawLastLabel == v {
		return
	}
	a.drawLastLabel = v
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) InvalidateParentBounds() {
	a.Invalidate(AxisVisualStates, axisRelayoutSignals)
}

func (a *Axis) majorValues() []float64 {
	if a.scale == nil {
		return nil
	}
	return a.scale.Ticks()
}

// minorValues are the midpoints between major ticks.
func (a *Axis) minorValues() []float64 {
	major := a.majorValues()
	if len(major) < 2 {
		return nil
	}
	out := make([]float64, 0, len(major)-1)
	for i := 1; i < len(major); i++ {
		out = append(out, (major[i-1]+major[i])/2)
	}
	return out
}

func labelsExtent(l *Labels, values []float64, horizontal bool) float64 {
	if !l.Enabled() || len(values) == 0 {
		return 0
	}
	size := 0.0
	for _, v := range values {
		w, h := l.Measure(l.Format(v))
		if horizontal {
			size = max(size, h)
		} else {
			size = max(size, w)
		}
	}
	return size + labelsPadding
}

func (a *Axis) titleExtent() float64 {
	t := a.Title()
	if a.orientation.IsHorizontal() {
		return t.Height()
	}
	if t.Height() == 0 {
		return 0
	}
	w, _ := graphics.MeasureText(t.Text(), t.FontSize())
	return w + defaultTitleMargin
}

func (a *Axis) ticksExtent() float64 {
	return max(a.Ticks().Extent(), a.MinorTicks().Extent())
}

// Size is how much of the parent bounds the axis takes across its line.
func (a *Axis) Size() float64 {
	if !a.Enabled() || a.scale == nil {
		return 0
	}
	horizontal := a.orientation.IsHorizontal()
	major := labelsExtent(a.Labels(), a.majorValues(), horizontal)
	minor := labelsExtent(a.MinorLabels(), a.minorValues(), horizontal)
	return a.ticksExtent() + max(major, minor) + a.titleExtent()
}

// RemainingBounds is the parent bounds without the axis strip.
func (a *Axis) RemainingBounds() graphics.Rect {
	pb, _ := a.ParentBounds()
	return cut(pb, a.orientation, a.Size())
}

// PixelBounds is the strip the axis draws in.
func (a *Axis) PixelBounds() graphics.Rect {
	pb, _ := a.ParentBounds()
	return strip(pb, a.orientation, a.Size())
}

// lineCoord is the coordinate of the axis line across its strip.
func (a *Axis) lineCoord(r graphics.Rect) float64 {
	switch a.orientation {
	case Top:
		return r.Bottom()
	case Left:
		return r.Right()
	case Right:
		return r.Left
	}
	return r.Top
}

// pixel maps v along the axis line.
func (a *Axis) pixel(r graphics.Rect, v float64) float64 {
	ratio := a.scale.Transform(v)
	if a.orientation.IsHorizontal() {
		return r.Left + ratio*r.Width
	}
	return r.Bottom() - ratio*r.Height
}

func (a *Axis) pixels(r graphics.Rect, values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = a.pixel(r, v)
	}
	return out
}

func (a *Axis) Draw() {
	if a.scale == nil {
		reporting.Error(reporting.ErrScaleNotSet, nil)
		return
	}
	if !a.CheckDrawingNeeded() {
		return
	}

	title, labels, minorLabels := a.Title(), a.Labels(), a.MinorLabels()
	ticks, minorTicks := a.Ticks(), a.MinorTicks()
	children := []signal.Suspender{title, labels, minorLabels, ticks, minorTicks}
	signal.SuspendAll(children...)
	defer signal.ResumeAll(false, children...)

	if a.layer == nil {
		a.layer = a.Container().Stage().Layer()
		a.layer.SetTag(a)
		a.line = a.Container().Stage().Path()
		a.line.SetParent(a.layer)
	}
	a.Attach(a.layer)

	r := a.PixelBounds()
	line := a.lineCoord(r)

	if a.HasInvalidationState(consistency.Appearance) {
		a.line.Clear()
		if a.orientation.IsHorizontal() {
			a.line.MoveTo(r.Left, line)
			a.line.LineTo(r.Right(), line)
		} else {
			a.line.MoveTo(line, r.Top)
			a.line.LineTo(line, r.Bottom())
		}
		a.line.SetStroke(a.stroke)
		a.MarkConsistent(consistency.Appearance)
	}

	if a.HasInvalidationState(AxisTitle) {
		o := Top
		if a.orientation == Bottom {
			o = Bottom
		}
		title.SetOrientation(o)
		visual.Place(title, a.layer, strip(r, a.orientation, a.titleExtent()))
		a.MarkConsistent(AxisTitle)
	}

	if a.HasInvalidationState(AxisTicks) {
		ticks.Layout(a.orientation, line, a.pixels(r, a.majorValues()))
		visual.Place(ticks, a.layer, r)
		minorTicks.Layout(a.orientation, line, a.pixels(r, a.minorValues()))
		visual.Place(minorTicks, a.layer, r)
		a.MarkConsistent(AxisTicks)
	}

	if a.HasInvalidationState(AxisLabels | AxisOverlap) {
		a.layoutLabels(labels, r, line, a.majorValues(), true)
		visual.Place(labels, a.layer, r)
		a.layoutLabels(minorLabels, r, line, a.minorValues(), false)
		visual.Place(minorLabels, a.layer, r)
		a.MarkConsistent(AxisLabels | AxisOverlap)
	}

	a.MarkConsistent(consistency.Bounds)
}

func (a *Axis) layoutLabels(l *Labels, r graphics.Rect, line float64, values []float64, major bool) {
	l.Clear()
	if !l.Enabled() {
		return
	}
	offset := a.ticksExtent() + labelsPadding
	for i, v := range values {
		text := l.Format(v)
		p := a.pixel(r, v)
		switch a.orientation {
		case Bottom:
			l.Add(i, text, p, line+offset, AnchorCenterTop)
		case Top:
			_, h := l.Measure(text)
			l.Add(i, text, p, line-offset-h, AnchorCenterTop)
		case Left:
			l.Add(i, text, line-offset, p, AnchorRightCenter)
		case Right:
			l.Add(i, text, line+offset, p, AnchorLeftCenter)
		}
	}
	if major {
		a.applyOverlap(l)
	}
}

// applyOverlap hides labels per the first/last flags and, in NoOverlap
// mode, every label colliding with the previous shown one.
func (a *Axis) applyOverlap(l *Labels) {
	all := l.Labels()
	if len(all) == 0 {
		return
	}
	all[0].Hidden = !a.drawFirstLabel
	all[len(all)-1].Hidden = !a.drawLastLabel
	if a.overlapMode != NoOverlap {
		return
	}
	var last *Label
	for _, lbl := range all {
		if lbl.Hidden {
			continue
		}
		if last != nil && l.Bounds(last).Intersects(l.Bounds(lbl)) {
			lbl.Hidden = true
			continue
		}
		last = lbl
	}
}

func (a *Axis) Remove() {
	if a.layer != nil {
		a.layer.SetParent(nil)
	}
}

// Dispose disposes the owned children and stops listening to the scale.
func (a *Axis) Dispose() {
	if a.IsDisposed() {
		return
	}
	if a.scale != nil {
		a.scale.UnlistenSignals(a.scaleListener)
		a.scale = nil
	}
	a.title.Dispose()
	a.labels.Dispose()
	a.minorLabels.Dispose()
	a.ticks.Dispose()
	a.minorTicks.Dispose()
	a.Base.Dispose()
}

type AxisConfig struct {
	visual.Config  `yaml:",inline"`
	Orientation    *string       `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Stroke         *StrokeConfig `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	OverlapMode    *string       `json:"overlapMode,omitempty" yaml:"overlapMode,omitempty"`
	DrawFirstLabel *bool         `json:"drawFirstLabel,omitempty" yaml:"drawFirstLabel,omitempty"`
	DrawLastLabel  *bool         `json:"drawLastLabel,omitempty" yaml:"drawLastLabel,omitempty"`
	Title          *TitleConfig  `json:"title,omitempty" yaml:"title,omitempty"`
	Labels         *LabelsConfig `json:"labels,omitempty" yaml:"labels,omitempty"`
	MinorLabels    *LabelsConfig `json:"minorLabels,omitempty" yaml:"minorLabels,omitempty"`
	Ticks          *TicksConfig  `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	MinorTicks     *TicksConfig  `json:"minorTicks,omitempty" yaml:"minorTicks,omitempty"`
}

func (a *Axis) Setup(cfg AxisConfig) {
	signal.Batch(func() {
		a.Base.Setup(cfg.Config)
		if cfg.Orientation != nil {
			a.SetOrientation(Orientation(*cfg.Orientation))
		}
		if cfg.Stroke != nil {
			a.SetStroke(cfg.Stroke.Stroke())
		}
		if cfg.OverlapMode != nil {
			a.SetOverlapMode(OverlapMode(*cfg.OverlapMode))
		}
		if cfg.DrawFirstLabel != nil {
			a.SetDrawFirstLabel(*cfg.DrawFirstLabel)
		}
		if cfg.DrawLastLabel != nil {
			a.SetDrawLastLabel(*cfg.DrawLastLabel)
		}
		if cfg.Title != nil {
			a.Title().Setup(*cfg.Title)
		}
		if cfg.Labels != nil {
			a.Labels().Setup(*cfg.Labels)
		}
		if cfg.MinorLabels != nil {
			a.MinorLabels().Setup(*cfg.MinorLabels)
		}
		if cfg.Ticks != nil {
			a.Ticks().Setup(*cfg.Ticks)
		}
		if cfg.MinorTicks != nil {
			a.MinorTicks().Setup(*cfg.MinorTicks)
		}
	}, a)
}

func (a *Axis) Serialize() AxisConfig {
	title := a.Title().Serialize()
	labels := a.Labels().Serialize()
	minorLabels := a.MinorLabels().Serialize()
	ticks := a.Ticks().Serialize()
	minorTicks := a.MinorTicks().Serialize()
	return AxisConfig{
		Config:         a.Base.Serialize(),
		Orientation:    ptr(string(a.orientation)),
		Stroke:         strokeConfig(a.stroke),
		OverlapMode:    ptr(string(a.overlapMode)),
		DrawFirstLabel: ptr(a.drawFirstLabel),
		DrawLastLabel:  ptr(a.drawLastLabel),
		Title:          &title,
		Labels:         &labels,
		MinorLabels:    &minorLabels,
		Ticks:          &ticks,
		MinorTicks:     &minorTicks,
	}
}
