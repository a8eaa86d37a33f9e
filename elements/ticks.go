package elements

import (
	"image/color"
	"slices"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

// TicksPosition is where ticks sit relative to the axis line.
type TicksPosition string

const (
	TicksOutside TicksPosition = "outside"
	TicksInside  TicksPosition = "inside"
	TicksCenter  TicksPosition = "center"
)

// Ticks draws short strokes across an axis line. The owning axis lays them
// out with Layout before drawing.
type Ticks struct {
	visual.Base

	length   float64
	stroke   graphics.Stroke
	position TicksPosition

	orientation Orientation
	line        float64
	positions   []float64
	path        graphics.Path
}

func NewTicks() *Ticks {
	t := &Ticks{
		length:      6,
		stroke:      graphics.Stroke{Color: color.NRGBA{R: 0xca, G: 0xd7, B: 0xdc, A: 0xff}, Thickness: 1},
		position:    TicksOutside,
		orientation: Bottom,
	}
	t.Base = visual.NewBase(t, "ticks", consistency.Appearance, 0)
	return t
}

func (t *Ticks) Length() float64         { return t.length }
func (t *Ticks) Stroke() graphics.Stroke { return t.stroke }
func (t *Ticks) Position() TicksPosition { return t.position }

func (t *Ticks) SetLength(l float64) {
	if l < 0 || t.length == l {
		return
	}
	t.length = l
	t.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

func (t *Ticks) SetStroke(s graphics.Stroke) {
	if sameStroke(t.stroke, s) {
		return
	}
	t.stroke = s
	t.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

func (t *Ticks) SetPosition(p TicksPosition) {
	if t.position == p {
		return
	}
	t.position = p
	t.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

// Extent is how far the ticks reach out of the axis line.
func (t *Ticks) Extent() float64 {
	if !t.Enabled() {
		return 0
	}
	switch t.position {
	case TicksInside:
		return 0
	case TicksCenter:
		return t.length / 2
	}
	return t.length
}

// Layout places the ticks across the line coordinate at the given pixel
// positions along it. It does not dispatch: owners call it from Draw.
func (t *Ticks) Layout(o Orientation, line float64, positions []float64) {
	if t.orientation == o && t.line == line && slices.Equal(t.positions, positions) {
		return
	}
	t.orientation = o
	t.line = line
	t.positions = slices.Clone(positions)
	t.Invalidate(consistency.Bounds, 0)
}

// span returns the tick start and end coordinates across the line.
func (t *Ticks) span() (float64, float64) {
	dir := 1.0
	if t.orientation == Top || t.orientation == Left {
		dir = -1
	}
	switch t.position {
	case TicksInside:
		return t.line, t.line - dir*t.length
	case TicksCenter:
		return t.line - dir*t.length/2, t.line + dir*t.length/2
	}
	return t.line, t.line + dir*t.length
}

func (t *Ticks) Draw() {
	if !t.CheckDrawingNeeded() {
		return
	}
	if t.path == nil {
		t.path = t.Container().Stage().Path()
		t.path.SetTag(t)
	}
	t.Attach(t.path)

	if t.HasInvalidationState(consistency.Bounds) {
		t.path.Clear()
		from, to := t.span()
		for _, p := range t.positions {
			if t.orientation.IsHorizontal() {
				t.path.MoveTo(p, from)
				t.path.LineTo(p, to)
			} else {
				t.path.MoveTo(from, p)
				t.path.LineTo(to, p)
			}
		}
		t.MarkConsistent(consistency.Bounds)
	}

	if t.HasInvalidationState(consistency.Appearance) {
		t.path.SetStroke(t.stroke)
		t.MarkConsistent(consistency.Appearance)
	}
}

func (t *Ticks) Remove() {
	if t.path != nil {
		t.path.SetParent(nil)
	}
}

type TicksConfig struct {
	visual.Config `yaml:",inline"`
	Length        *float64      `json:"length,omitempty" yaml:"length,omitempty"`
	Position      *string       `json:"position,omitempty" yaml:"position,omitempty"`
	Stroke        *StrokeConfig `json:"stroke,omitempty" yaml:"stroke,omitempty"`
}

func (t *Ticks) Setup(cfg TicksConfig) {
	signal.Batch(func() {
		t.Base.Setup(cfg.Config)
		if cfg.Length != nil {
			t.SetLength(*cfg.Length)
		}
		if cfg.Position != nil {
			t.SetPosition(TicksPosition(*cfg.Position))
		}
		if cfg.Stroke != nil {
			t.SetStroke(cfg.Stroke.Stroke())
		}
	}, t)
}

func (t *Ticks) Serialize() TicksConfig {
	return TicksConfig{
		Config:   t.Base.Serialize(),
		Length:   ptr(t.length),
		Position: ptr(string(t.position)),
		Stroke:   strokeConfig(t.stroke),
	}
}
