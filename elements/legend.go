package elements

import (
	"image/color"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

var (
	LegendBackground    = consistency.Register("legend", consistency.Family(0), "LEGEND_BACKGROUND")
	LegendTitle         = consistency.Register("legend", consistency.Family(1), "LEGEND_TITLE")
	LegendRecreateItems = consistency.Register("legend", consistency.Family(2), "LEGEND_RECREATE_ITEMS")
)

const (
	legendPadding     = 5
	legendItemSpacing = 10
	legendIconSpacing = 5
)

var legendDisabledColor = color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}

// LegendItem is one entry of a legend.
type LegendItem struct {
	Text     string      `json:"text" yaml:"text"`
	Color    color.Color `json:"-" yaml:"-"`
	Disabled bool        `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

func fingerprint(items []LegendItem) uint64 {
	d := xxhash.New()
	for _, it := range items {
		d.WriteString(it.Text)
		c := color.NRGBAModel.Convert(color.Transparent)
		if it.Color != nil {
			c = color.NRGBAModel.Convert(it.Color)
		}
		n := c.(color.NRGBA)
		disabled := byte(0)
		if it.Disabled {
			disabled = 1
		}
		d.Write([]byte{0, n.R, n.G, n.B, n.A, disabled})
	}
	return d.Sum64()
}

// Legend lists items, each drawn as a marker and a label, on one side of
// its parent bounds.
type Legend struct {
	visual.Base

	position    Orientation
	items       []LegendItem
	itemsHash   uint64
	onItemClick func(index int)

	background core.Slot[*Background]
	title      core.Slot[*Title]
	markers    core.Slot[*Markers]
	labels     core.Slot[*Labels]

	layer graphics.Layer
}

func NewLegend() *Legend {
	l := &Legend{position: Bottom}
	l.itemsHash = fingerprint(nil)
	l.Base = visual.NewBase(l, "legend", LegendBackground|LegendTitle|LegendRecreateItems, 0)

	l.background = core.NewSlot[*Background](core.Forward(l, core.Remap{
		{When: signal.NeedsRedraw, State: LegendBackground, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: consistency.Bounds, Signal: signal.BoundsChanged},
	}))
	l.title = core.NewSlot[*Title](core.Forward(l, core.Remap{
		{When: signal.NeedsRedraw, State: LegendTitle, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: consistency.Bounds, Signal: signal.BoundsChanged},
	}))
	itemsRemap := core.Remap{
		{When: signal.NeedsRedraw, State: LegendRecreateItems, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: consistency.Bounds, Signal: signal.BoundsChanged},
	}
	l.markers = core.NewSlot[*Markers](core.Forward(l, itemsRemap))
	l.labels = core.NewSlot[*Labels](core.Forward(l, itemsRemap))
	return l
}

func (l *Legend) Background() *Background {
	return l.background.Get(func() *Background {
		b := NewBackground()
		b.SetEnabled(false)
		return b
	})
}

func (l *Legend) Title() *Title {
	return l.title.Get(func() *Title {
		t := NewTitle()
		t.SetFontSize(13)
		t.SetEnabled(false)
		return t
	})
}

func (l *Legend) Markers() *Markers {
	return l.markers.Get(NewMarkers)
}

func (l *Legend) Labels() *Labels {
	return l.labels.Get(NewLabels)
}

func (l *Legend) Position() Orientation { return l.position }

func (l *Legend) SetPosition(o Orientation) {
	if !o.Valid() || l.position == o {
		return
	}
	l.position = o
	l.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

func (l *Legend) Items() []LegendItem { return slices.Clone(l.items) }

// SetItems replaces the items. Items equal to the current ones, by text,
// color and disabled flag, change nothing.
func (l *Legend) SetItems(items []LegendItem) {
	h := fingerprint(items)
	if h == l.itemsHash {
		return
	}
	l.itemsHash = h
	l.items = slices.Clone(items)
	l.Invalidate(LegendRecreateItems|consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

// OnItemClick sets the handler called with the index of a clicked item.
func (l *Legend) OnItemClick(fn func(index int)) {
	l.onItemClick = fn
	if fn == nil {
		l.Markers().SetHandler("click", nil)
	} else {
		l.Markers().SetHandler("click", func(m *Marker, _ graphics.PointerEvent) {
			if l.onItemClick != nil {
				l.onItemClick(m.Index)
			}
		})
	}
	l.Invalidate(LegendRecreateItems, signal.NeedsRedraw)
}

func (l *Legend) iconSize() float64 { return l.Markers().Size() }

func (l *Legend) itemSize(it LegendItem) (float64, float64) {
	w, h := l.Labels().Measure(it.Text)
	icon := 2 * l.iconSize()
	return icon + legendIconSpacing + w, max(icon, h)
}

func (l *Legend) contentSize() (float64, float64) {
	var w, h float64
	horizontal := l.position.IsHorizontal()
	for i, it := range l.items {
		iw, ih := l.itemSize(it)
		if horizontal {
			if i > 0 {
				w += legendItemSpacing
			}
			w += iw
			h = max(h, ih)
		} else {
			if i > 0 {
				h += legendItemSpacing
			}
			h += ih
			w = max(w, iw)
		}
	}
	if t := l.Title(); t.Height() > 0 {
		tw, _ := graphics.MeasureText(t.Text(), t.FontSize())
		w = max(w, tw)
		h += t.Height()
	}
	return w + 2*legendPadding, h + 2*legendPadding
}

// Size is how much of the parent bounds the legend takes across its
// position side.
func (l *Legend) Size() float64 {
	if !l.Enabled() || len(l.items) == 0 {
		return 0
	}
	w, h := l.contentSize()
	if l.position.IsHorizontal() {
		return h
	}
	return w
}

// PixelBounds is the box the legend draws in.
func (l *Legend) PixelBounds() graphics.Rect {
	pb, _ := l.ParentBounds()
	return strip(pb, l.position, l.Size())
}

// RemainingBounds is the parent bounds without the legend strip.
func (l *Legend) RemainingBounds() graphics.Rect {
	pb, _ := l.ParentBounds()
	return cut(pb, l.position, l.Size())
}

func (l *Legend) Draw() {
	if !l.CheckDrawingNeeded() {
		return
	}

	background, title, markers, labels := l.Background(), l.Title(), l.Markers(), l.Labels()
	children := []signal.Suspender{background, title, markers, labels}
	signal.SuspendAll(children...)
	defer signal.ResumeAll(false, children...)

	if l.layer == nil {
		l.layer = l.Container().Stage().Layer()
		l.layer.SetTag(l)
	}
	l.Attach(l.layer)

	bounds := l.PixelBounds()
	if l.HasInvalidationState(consistency.Bounds) {
		l.Invalidate(LegendBackground|LegendTitle|LegendRecreateItems, 0)
		l.MarkConsistent(consistency.Bounds)
	}

	if l.HasInvalidationState(LegendBackground) {
		visual.Place(background, l.layer, bounds)
		l.MarkConsistent(LegendBackground)
	}

	inner := bounds.Inset(legendPadding, legendPadding, legendPadding, legendPadding)
	if l.HasInvalidationState(LegendTitle) {
		visual.Place(title, l.layer, inner)
		l.MarkConsistent(LegendTitle)
	}

	if l.HasInvalidationState(LegendRecreateItems) {
		l.layoutItems(title.RemainingBounds())
		visual.Place(markers, l.layer, inner)
		visual.Place(labels, l.layer, inner)
		l.MarkConsistent(LegendRecreateItems)
	}
}

func (l *Legend) layoutItems(r graphics.Rect) {
	markers, labels := l.Markers(), l.Labels()
	markers.Clear()
	labels.Clear()
	if len(l.items) == 0 {
		return
	}

	cw, _ := l.contentSize()
	x, y := r.Left, r.Top
	if l.position.IsHorizontal() {
		x = r.Left + (r.Width-(cw-2*legendPadding))/2
	}
	icon := l.iconSize()
	for i, it := range l.items {
		iw, ih := l.itemSize(it)
		m := markers.Add(i, x+icon, y+ih/2)
		m.Fill = it.Color
		if it.Disabled {
			m.Fill = legendDisabledColor
		}
		labels.Add(i, it.Text, x+2*icon+legendIconSpacing, y+ih/2, AnchorLeftCenter)
		if l.position.IsHorizontal() {
			x += iw + legendItemSpacing
		} else {
			y += ih + legendItemSpacing
		}
	}
}

func (l *Legend) Remove() {
	if l.layer != nil {
		l.layer.SetParent(nil)
	}
}

func (l *Legend) Dispose() {
	if l.IsDisposed() {
		return
	}
	l.background.Dispose()
	l.title.Dispose()
	l.markers.Dispose()
	l.labels.Dispose()
	l.Base.Dispose()
}

type LegendConfig struct {
	visual.Config `yaml:",inline"`
	Position      *string           `json:"position,omitempty" yaml:"position,omitempty"`
	Background    *BackgroundConfig `json:"background,omitempty" yaml:"background,omitempty"`
	Title         *TitleConfig      `json:"title,omitempty" yaml:"title,omitempty"`
	Markers       *MarkersConfig    `json:"markers,omitempty" yaml:"markers,omitempty"`
	Labels        *LabelsConfig     `json:"labels,omitempty" yaml:"labels,omitempty"`
}

func (l *Legend) Setup(cfg LegendConfig) {
	signal.Batch(func() {
		l.Base.Setup(cfg.Config)
		if cfg.Position != nil {
			l.SetPosition(Orientation(*cfg.Position))
		}
		if cfg.Background != nil {
			l.Background().Setup(*cfg.Background)
		}
		if cfg.Title != nil {
			l.Title().Setup(*cfg.Title)
		}
		if cfg.Markers != nil {
			l.Markers().Setup(*cfg.Markers)
		}
		if cfg.Labels != nil {
			l.Labels().Setup(*cfg.Labels)
		}
	}, l)
}

func (l *Legend) Serialize() LegendConfig {
	background := l.Background().Serialize()
	title := l.Title().Serialize()
	markers := l.Markers().Serialize()
	labels := l.Labels().Serialize()
	return LegendConfig{
		Config:     l.Base.Serialize(),
		Position:   ptr(string(l.position)),
		Background: &background,
		Title:      &title,
		Markers:    &markers,
		Labels:     &labels,
	}
}
