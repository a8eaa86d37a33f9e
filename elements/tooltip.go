package elements

import (
	"image/color"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

var (
	TooltipTitle      = consistency.Register("tooltip", consistency.Family(0), "TOOLTIP_TITLE")
	TooltipSeparator  = consistency.Register("tooltip", consistency.Family(1), "TOOLTIP_SEPARATOR")
	TooltipContent    = consistency.Register("tooltip", consistency.Family(2), "TOOLTIP_CONTENT")
	TooltipBackground = consistency.Register("tooltip", consistency.Family(3), "TOOLTIP_BACKGROUND")
	TooltipPosition   = consistency.Register("tooltip", consistency.Family(4), "TOOLTIP_POSITION")
	TooltipVisibility = consistency.Register("tooltip", consistency.Family(5), "TOOLTIP_VISIBILITY")

	tooltipLayout = TooltipTitle | TooltipSeparator | TooltipContent | TooltipBackground | TooltipPosition
)

const (
	tooltipPadding = 6
	tooltipOffset  = 10
)

// Tooltip is a floating box with a title, a separator line and one line
// of content. It is positioned next to the point passed to Show and kept
// inside the parent bounds.
type Tooltip struct {
	visual.Base

	titleText string
	content   string
	fontSize  float64
	color     color.Color
	separator graphics.Stroke
	x, y      float64
	visible   bool

	background core.Slot[*Background]
	title      core.Slot[*Title]

	layer   graphics.Layer
	sepPath graphics.Path
	text    graphics.Text
	box     graphics.Rect
}

func NewTooltip() *Tooltip {
	t := &Tooltip{
		fontSize:  12,
		color:     color.White,
		separator: graphics.Stroke{Color: color.NRGBA{R: 0xce, G: 0xce, B: 0xce, A: 0xff}, Thickness: 1},
	}
	t.Base = visual.NewBase(t, "tooltip", consistency.Appearance|tooltipLayout|TooltipVisibility, 0)
	t.background = core.NewSlot[*Background](core.Forward(t, core.Remap{
		{When: signal.NeedsRedraw, State: TooltipBackground, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: tooltipLayout, Signal: signal.NeedsRedraw},
	}))
	t.title = core.NewSlot[*Title](core.Forward(t, core.Remap{
		{When: signal.NeedsRedraw, State: TooltipTitle, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: tooltipLayout, Signal: signal.NeedsRedraw},
	}))
	return t
}

func (t *Tooltip) Background() *Background {
	return t.background.Get(func() *Background {
		b := NewBackground()
		b.SetFill(color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xd9})
		return b
	})
}

func (t *Tooltip) Title() *Title {
	return t.title.Get(func() *Title {
		tt := NewTitle()
		tt.SetFontSize(14)
		tt.SetColor(color.White)
		tt.SetMargin(0)
		return tt
	})
}

func (t *Tooltip) Content() string    { return t.content }
func (t *Tooltip) Visible() bool      { return t.visible }
func (t *Tooltip) Box() graphics.Rect { return t.box }

func (t *Tooltip) SetFontSize(size float64) {
	if size <= 0 || t.fontSize == size {
		return
	}
	t.fontSize = size
	t.Invalidate(tooltipLayout, signal.NeedsRedraw)
}

func (t *Tooltip) SetColor(c color.Color) {
	if sameColor(t.color, c) {
		return
	}
	t.color = c
	t.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

func (t *Tooltip) SetSeparator(s graphics.Stroke) {
	if sameStroke(t.separator, s) {
		return
	}
	t.separator = s
	t.Invalidate(TooltipSeparator, signal.NeedsRedraw)
}

// Show displays title and content next to x, y.
func (t *Tooltip) Show(title, content string, x, y float64) {
	signal.Batch(func() {
		state := consistency.State(0)
		if title != t.titleText || content != t.content {
			t.titleText, t.content = title, content
			state |= tooltipLayout
		}
		if x != t.x || y != t.y {
			t.x, t.y = x, y
			state |= TooltipPosition | TooltipBackground | TooltipTitle | TooltipSeparator | TooltipContent
		}
		if !t.visible {
			t.visible = true
			state |= TooltipVisibility
		}
		if state != 0 {
			t.Invalidate(state, signal.NeedsRedraw)
		}
	}, t)
}

func (t *Tooltip) Hide() {
	if !t.visible {
		return
	}
	t.visible = false
	t.Invalidate(TooltipVisibility, signal.NeedsRedraw)
}

func (t *Tooltip) InvalidateParentBounds() {
	t.Invalidate(consistency.Bounds|TooltipPosition, signal.NeedsRedraw)
}

func (t *Tooltip) measure() (float64, float64) {
	title := t.Title()
	tw, th := graphics.MeasureText(t.titleText, title.FontSize())
	cw, ch := graphics.MeasureText(t.content, t.fontSize)
	w := max(tw, cw) + 2*tooltipPadding
	h := th + ch + 2*tooltipPadding
	if t.titleText != "" && t.content != "" {
		h += tooltipPadding
	}
	return w, h
}

// place puts the box below right of the point, flipping to stay inside
// the parent bounds.
func (t *Tooltip) place() graphics.Rect {
	w, h := t.measure()
	pb, _ := t.ParentBounds()
	x, y := t.x+tooltipOffset, t.y+tooltipOffset
	if x+w > pb.Right() {
		x = t.x - tooltipOffset - w
	}
	if y+h > pb.Bottom() {
		y = t.y - tooltipOffset - h
	}
	x = max(pb.Left, x)
	y = max(pb.Top, y)
	return graphics.R(x, y, w, h)
}

func (t *Tooltip) Draw() {
	if !t.CheckDrawingNeeded() {
		return
	}

	background, title := t.Background(), t.Title()
	signal.SuspendAll(background, title)
	defer signal.ResumeAll(false, background, title)

	stage := t.Container().Stage()
	if t.layer == nil {
		t.layer = stage.Layer()
		t.layer.SetTag(t)
		t.sepPath = stage.Path()
		t.sepPath.SetParent(t.layer)
		t.sepPath.SetZIndex(1)
		t.text = stage.Text()
		t.text.SetParent(t.layer)
		t.text.SetZIndex(1)
	}
	t.Attach(t.layer)

	if t.HasInvalidationState(TooltipVisibility) {
		if t.layer.Visible() != t.visible {
			t.layer.SetVisible(t.visible)
		}
		t.MarkConsistent(TooltipVisibility)
	}
	if !t.visible {
		return
	}

	if t.HasInvalidationState(consistency.Bounds | TooltipPosition) {
		t.box = t.place()
		t.MarkConsistent(consistency.Bounds | TooltipPosition)
	}

	if t.HasInvalidationState(TooltipBackground) {
		visual.Place(background, t.layer, t.box)
		t.MarkConsistent(TooltipBackground)
	}

	inner := t.box.Inset(tooltipPadding, tooltipPadding, tooltipPadding, tooltipPadding)
	if t.HasInvalidationState(TooltipTitle) {
		title.SetText(t.titleText)
		title.SetZIndex(1)
		visual.Place(title, t.layer, inner)
		t.MarkConsistent(TooltipTitle)
	}

	_, th := graphics.MeasureText(t.titleText, title.FontSize())
	sepY := inner.Top + th + tooltipPadding/2
	if t.HasInvalidationState(TooltipSeparator) {
		t.sepPath.Clear()
		if t.titleText != "" && t.content != "" {
			t.sepPath.MoveTo(inner.Left, sepY)
			t.sepPath.LineTo(inner.Right(), sepY)
		}
		t.sepPath.SetStroke(t.separator)
		t.MarkConsistent(TooltipSeparator)
	}

	if t.HasInvalidationState(TooltipContent | consistency.Appearance) {
		t.text.SetText(t.content)
		t.text.SetFontSize(t.fontSize)
		t.text.SetColor(t.color)
		y := inner.Top
		if t.titleText != "" {
			y = sepY + tooltipPadding/2
		}
		t.text.SetPosition(inner.Left, y)
		t.MarkConsistent(TooltipContent | consistency.Appearance)
	}
}

func (t *Tooltip) Remove() {
	if t.layer != nil {
		t.layer.SetParent(nil)
	}
}

func (t *Tooltip) Dispose() {
	if t.IsDisposed() {
		return
	}
	t.background.Dispose()
	t.title.Dispose()
	t.Base.Dispose()
}

type TooltipConfig struct {
	visual.Config `yaml:",inline"`
	FontSize      *float64          `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontColor     *string           `json:"fontColor,omitempty" yaml:"fontColor,omitempty"`
	Separator     *StrokeConfig     `json:"separator,omitempty" yaml:"separator,omitempty"`
	Background    *BackgroundConfig `json:"background,omitempty" yaml:"background,omitempty"`
	Title         *TitleConfig      `json:"title,omitempty" yaml:"title,omitempty"`
}

func (t *Tooltip) Setup(cfg TooltipConfig) {
	signal.Batch(func() {
		t.Base.Setup(cfg.Config)
		if cfg.FontSize != nil {
			t.SetFontSize(*cfg.FontSize)
		}
		if cfg.FontColor != nil {
			t.SetColor(graphics.ParseColor(*cfg.FontColor))
		}
		if cfg.Separator != nil {
			t.SetSeparator(cfg.Separator.Stroke())
		}
		if cfg.Background != nil {
			t.Background().Setup(*cfg.Background)
		}
		if cfg.Title != nil {
			t.Title().Setup(*cfg.Title)
		}
	}, t)
}

func (t *Tooltip) Serialize() TooltipConfig {
	background := t.Background().Serialize()
	title := t.Title().Serialize()
	return TooltipConfig{
		Config:     t.Base.Serialize(),
		FontSize:   ptr(t.fontSize),
		FontColor:  ptr(graphics.FormatColor(t.color)),
		Separator:  strokeConfig(t.separator),
		Background: &background,
		Title:      &title,
	}
}
