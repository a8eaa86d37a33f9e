package elements

import (
	"image/color"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

// Background fills its parent bounds.
type Background struct {
	visual.Base

	fill   color.Color
	stroke graphics.Stroke
	path   graphics.Path
}

func NewBackground() *Background {
	b := &Background{fill: color.White}
	b.Base = visual.NewBase(b, "background", consistency.Appearance, 0)
	return b
}

func (b *Background) Fill() color.Color       { return b.fill }
func (b *Background) Stroke() graphics.Stroke { return b.stroke }

// SetFill sets the fill color, nil for none.
func (b *Background) SetFill(c color.Color) {
	if sameColor(b.fill, c) {
		return
	}
	b.fill = c
	b.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

func (b *Background) SetStroke(s graphics.Stroke) {
	if sameStroke(b.stroke, s) {
		return
	}
	b.stroke = s
	b.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

// Draw renders the background.
func (b *Background) Draw() {
	if !b.CheckDrawingNeeded() {
		return
	}
	if b.path == nil {
		b.path = b.Container().Stage().Path()
		b.path.SetTag(b)
	}
	b.Attach(b.path)

	if b.HasInvalidationState(consistency.Bounds) {
		r, _ := b.ParentBounds()
		b.path.Clear()
		b.path.Rect(r)
		b.MarkConsistent(consistency.Bounds)
	}

	if b.HasInvalidationState(consistency.Appearance) {
		b.path.SetFill(b.fill)
		b.path.SetStroke(b.stroke)
		b.MarkConsistent(consistency.Appearance)
	}
}

func (b *Background) Remove() {
	if b.path != nil {
		b.path.SetParent(nil)
	}
}

type BackgroundConfig struct {
	visual.Config `yaml:",inline"`
	Fill          *string       `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke        *StrokeConfig `json:"stroke,omitempty" yaml:"stroke,omitempty"`
}

func (b *Background) Setup(cfg BackgroundConfig) {
	signal.Batch(func() {
		b.Base.Setup(cfg.Config)
		if cfg.Fill != nil {
			b.SetFill(graphics.ParseColor(*cfg.Fill))
		}
		if cfg.Stroke != nil {
			b.SetStroke(cfg.Stroke.Stroke())
		}
	}, b)
}

func (b *Background) Serialize() BackgroundConfig {
	return BackgroundConfig{
		Config: b.Base.Serialize(),
		Fill:   ptr(graphics.FormatColor(b.fill)),
		Stroke: strokeConfig(b.stroke),
	}
}
