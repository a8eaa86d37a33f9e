package elements

import (
	"image/color"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

const defaultTitleMargin = 4

// Title is a single line of text centered on one side of its parent
// bounds. Owners lay out the rest of their content in RemainingBounds.
type Title struct {
	visual.Base

	text        string
	fontSize    float64
	color       color.Color
	margin      float64
	orientation Orientation
	elem        graphics.Text
}

func NewTitle() *Title {
	t := &Title{
		fontSize:    16,
		color:       color.NRGBA{R: 0x7c, G: 0x86, B: 0x8e, A: 0xff},
		margin:      defaultTitleMargin,
		orientation: Top,
	}
	t.Base = visual.NewBase(t, "title", consistency.Appearance, 0)
	return t
}

func (t *Title) Text() string             { return t.text }
func (t *Title) FontSize() float64        { return t.fontSize }
func (t *Title) Color() color.Color       { return t.color }
func (t *Title) Orientation() Orientation { return t.orientation }

func (t *Title) SetText(s string) {
	if t.text == s {
		return
	}
	t.text = s
	t.Invalidate(consistency.Appearance|consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

func (t *Title) SetFontSize(size float64) {
	if size <= 0 || t.fontSize == size {
		return
	}
	t.fontSize = size
	t.Invalidate(consistency.Appearance|consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

func (t *Title) SetColor(c color.Color) {
	if sameColor(t.color, c) {
		return
	}
	t.color = c
	t.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

// SetOrientation accepts Top or Bottom.
func (t *Title) SetOrientation(o Orientation) {
	if (o != Top && o != Bottom) || t.orientation == o {
		return
	}
	t.orientation = o
	t.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

func (t *Title) SetMargin(m float64) {
	if m < 0 || t.margin == m {
		return
	}
	t.margin = m
	t.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

// Height is the space the title takes, zero when it shows nothing.
func (t *Title) Height() float64 {
	if !t.Enabled() || t.text == "" {
		return 0
	}
	_, h := graphics.MeasureText(t.text, t.fontSize)
	return h + t.margin
}

// RemainingBounds is the parent bounds without the title strip.
func (t *Title) RemainingBounds() graphics.Rect {
	pb, _ := t.ParentBounds()
	return cut(pb, t.orientation, t.Height())
}

func (t *Title) Draw() {
	if !t.CheckDrawingNeeded() {
		return
	}
	if t.elem == nil {
		t.elem = t.Container().Stage().Text()
		t.elem.SetTag(t)
	}
	t.Attach(t.elem)

	if t.HasInvalidationState(consistency.Appearance) {
		t.elem.SetText(t.text)
		t.elem.SetFontSize(t.fontSize)
		t.elem.SetColor(t.color)
		t.MarkConsistent(consistency.Appearance)
	}

	if t.HasInvalidationState(consistency.Bounds) {
		pb, _ := t.ParentBounds()
		w, h := t.elem.Measure()
		x := pb.Left + (pb.Width-w)/2
		y := pb.Top
		if t.orientation == Bottom {
			y = pb.Bottom() - h
		}
		t.elem.SetPosition(x, y)
		t.MarkConsistent(consistency.Bounds)
	}
}

func (t *Title) Remove() {
	if t.elem != nil {
		t.elem.SetParent(nil)
	}
}

type TitleConfig struct {
	visual.Config `yaml:",inline"`
	Text          *string  `json:"text,omitempty" yaml:"text,omitempty"`
	FontSize      *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontColor     *string  `json:"fontColor,omitempty" yaml:"fontColor,omitempty"`
	Orientation   *string  `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Margin        *float64 `json:"margin,omitempty" yaml:"margin,omitempty"`
}

func (t *Title) Setup(cfg TitleConfig) {
	signal.Batch(func() {
		t.Base.Setup(cfg.Config)
		if cfg.Text != nil {
			t.SetText(*cfg.Text)
		}
		if cfg.FontSize != nil {
			t.SetFontSize(*cfg.FontSize)
		}
		if cfg.FontColor != nil {
			t.SetColor(graphics.ParseColor(*cfg.FontColor))
		}
		if cfg.Orientation != nil {
			t.SetOrientation(Orientation(*cfg.Orientation))
		}
		if cfg.Margin != nil {
			t.SetMargin(*cfg.Margin)
		}
	}, t)
}

func (t *Title) Serialize() TitleConfig {
	return TitleConfig{
		Config:      t.Base.Serialize(),
		Text:        ptr(t.text),
		FontSize:    ptr(t.fontSize),
		FontColor:   ptr(graphics.FormatColor(t.color)),
		Orientation: ptr(string(t.orientation)),
		Margin:      ptr(t.margin),
	}
}
