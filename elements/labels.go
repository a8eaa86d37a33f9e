package elements

import (
	"image/color"
	"strconv"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/pool"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

// LabelsPosition marks the label set or positions as stale.
var LabelsPosition = consistency.Register("labels", consistency.Family(0), "LABELS_FACTORY_POSITION")

// Anchor is the point of a label its position refers to.
type Anchor int

const (
	AnchorLeftTop Anchor = iota
	AnchorCenterTop
	AnchorRightCenter
	AnchorLeftCenter
	AnchorCenter
)

// Label is one text the factory draws. Its graphics element is pooled.
type Label struct {
	Index  int
	Text   string
	X, Y   float64
	Anchor Anchor
	Hidden bool

	elem graphics.Text
}

// Labels draws any number of labels sharing the same style. Elements are
// checked out of a pool and released on Clear.
type Labels struct {
	visual.Base

	fontSize  float64
	color     color.Color
	formatter func(float64) string

	labels []*Label
	layer  graphics.Layer
	pool   *pool.Pool[graphics.Text]
}

func NewLabels() *Labels {
	l := &Labels{fontSize: 11, color: color.NRGBA{R: 0x7c, G: 0x86, B: 0x8e, A: 0xff}}
	l.Base = visual.NewBase(l, "labels", consistency.Appearance|LabelsPosition, 0)
	return l
}

func (l *Labels) FontSize() float64  { return l.fontSize }
func (l *Labels) Color() color.Color { return l.color }
func (l *Labels) Len() int           { return len(l.labels) }

func (l *Labels) SetFontSize(size float64) {
	if size <= 0 || l.fontSize == size {
		return
	}
	l.fontSize = size
	l.Invalidate(consistency.Appearance, signal.NeedsRedraw|signal.BoundsChanged)
}

func (l *Labels) SetColor(c color.Color) {
	if sameColor(l.color, c) {
		return
	}
	l.color = c
	l.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

// SetFormatter sets how values become label text. nil restores the
// default.
func (l *Labels) SetFormatter(fn func(float64) string) {
	l.formatter = fn
	l.Invalidate(consistency.Appearance, signal.NeedsRedraw|signal.BoundsChanged)
}

// Format renders v with the formatter.
func (l *Labels) Format(v float64) string {
	if l.formatter != nil {
		return l.formatter(v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Measure returns the size text takes with the factory font.
func (l *Labels) Measure(text string) (float64, float64) {
	return graphics.MeasureText(text, l.fontSize)
}

// Bounds returns the box label occupies, honoring its anchor.
func (l *Labels) Bounds(lbl *Label) graphics.Rect {
	w, h := l.Measure(lbl.Text)
	x, y := lbl.X, lbl.Y
	switch lbl.Anchor {
	case AnchorCenterTop:
		x -= w / 2
	case AnchorRightCenter:
		x -= w
		y -= h / 2
	case AnchorLeftCenter:
		y -= h / 2
	case AnchorCenter:
		x -= w / 2
		y -= h / 2
	}
	return graphics.R(x, y, w, h)
}

// Add registers a label. It is drawn on the next Draw.
func (l *Labels) Add(index int, text string, x, y float64, anchor Anchor) *Label {
	lbl := &Label{Index: index, Text: text, X: x, Y: y, Anchor: anchor}
	l.labels = append(l.labels, lbl)
	l.Invalidate(LabelsPosition, 0)
	return lbl
}

// Labels returns the registered labels.
func (l *Labels) Labels() []*Label { return l.labels }

// Clear drops every label and returns its element to the pool.
func (l *Labels) Clear() {
	if len(l.labels) == 0 {
		return
	}
	for _, lbl := range l.labels {
		if lbl.elem != nil {
			l.pool.Release(lbl.elem)
			lbl.elem = nil
		}
	}
	l.labels = nil
	l.Invalidate(LabelsPosition, 0)
}

// Pooled is the number of released elements waiting for reuse.
func (l *Labels) Pooled() int {
	if l.pool == nil {
		return 0
	}
	return l.pool.Free()
}

func (l *Labels) Draw() {
	if !l.CheckDrawingNeeded() {
		return
	}
	stage := l.Container().Stage()
	if l.layer == nil {
		l.layer = stage.Layer()
		l.pool = pool.New(stage.Text, pool.ResetElement[graphics.Text])
	}
	l.Attach(l.layer)

	if l.HasInvalidationState(LabelsPosition | consistency.Bounds | consistency.Appearance) {
		for _, lbl := range l.labels {
			if lbl.elem == nil {
				lbl.elem = l.pool.Checkout()
				lbl.elem.SetParent(l.layer)
				lbl.elem.SetTag(lbl)
			}
			lbl.elem.SetText(lbl.Text)
			lbl.elem.SetFontSize(l.fontSize)
			lbl.elem.SetColor(l.color)
			r := l.Bounds(lbl)
			lbl.elem.SetPosition(r.Left, r.Top)
			if lbl.elem.Visible() == lbl.Hidden {
				lbl.elem.SetVisible(!lbl.Hidden)
			}
		}
		l.MarkConsistent(LabelsPosition | consistency.Bounds | consistency.Appearance)
	}
}

func (l *Labels) Remove() {
	if l.layer != nil {
		l.layer.SetParent(nil)
	}
}

// Dispose releases the labels and the graphics.
func (l *Labels) Dispose() {
	if l.IsDisposed() {
		return
	}
	if l.pool != nil {
		l.Clear()
	}
	l.Base.Dispose()
}

type LabelsConfig struct {
	visual.Config `yaml:",inline"`
	FontSize      *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontColor     *string  `json:"fontColor,omitempty" yaml:"fontColor,omitempty"`
}

func (l *Labels) Setup(cfg LabelsConfig) {
	signal.Batch(func() {
		l.Base.Setup(cfg.Config)
		if cfg.FontSize != nil {
			l.SetFontSize(*cfg.FontSize)
		}
		if cfg.FontColor != nil {
			l.SetColor(graphics.ParseColor(*cfg.FontColor))
		}
	}, l)
}

// Serialize returns the settings. A custom formatter can't be serialized
// and is reported.
func (l *Labels) Serialize() LabelsConfig {
	if l.formatter != nil {
		reporting.Warning(reporting.WarnCantSerializeFunction, nil, "formatter")
	}
	return LabelsConfig{
		Config:    l.Base.Serialize(),
		FontSize:  ptr(l.fontSize),
		FontColor: ptr(graphics.FormatColor(l.color)),
	}
}
