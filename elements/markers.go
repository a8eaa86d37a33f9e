package elements

import (
	"image/color"
	"math"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/pool"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

// MarkersPosition marks the marker set or positions as stale.
var MarkersPosition = consistency.Register("markers", consistency.Family(0), "MARKERS_FACTORY_POSITION")

// MarkerType is the shape of a marker.
type MarkerType string

const (
	Circle  MarkerType = "circle"
	Square  MarkerType = "square"
	Diamond MarkerType = "diamond"
)

// Marker is one point the factory draws. Fill overrides the factory fill
// when set.
type Marker struct {
	Index int
	X, Y  float64
	Fill  color.Color

	path graphics.Path
}

// MarkerHandler receives pointer events on a marker.
type MarkerHandler func(m *Marker, ev graphics.PointerEvent)

// Markers draws any number of same shaped markers from a pool of paths.
type Markers struct {
	visual.Base

	size       float64
	markerType MarkerType
	fill       color.Color
	stroke     graphics.Stroke
	handlers   map[string]MarkerHandler

	markers []*Marker
	layer   graphics.Layer
	pool    *pool.Pool[graphics.Path]
}

func NewMarkers() *Markers {
	m := &Markers{size: 5, markerType: Circle, fill: color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff}}
	m.Base = visual.NewBase(m, "markers", consistency.Appearance|MarkersPosition, 0)
	return m
}

func (m *Markers) Size() float64           { return m.size }
func (m *Markers) Type() MarkerType        { return m.markerType }
func (m *Markers) Fill() color.Color       { return m.fill }
func (m *Markers) Stroke() graphics.Stroke { return m.stroke }
func (m *Markers) Len() int                { return len(m.markers) }
func (m *Markers) Markers() []*Marker      { return m.markers }

// SetSize sets the marker radius.
func (m *Markers) SetSize(size float64) {
	if size <= 0 || m.size == size {
		return
	}
	m.size = size
	m.Invalidate(MarkersPosition, signal.NeedsRedraw|signal.BoundsChanged)
}

func (m *Markers) SetType(t MarkerType) {
	if m.markerType == t {
		return
	}
	m.markerType = t
	m.Invalidate(MarkersPosition, signal.NeedsRedraw)
}

func (m *Markers) SetFill(c color.Color) {
	if sameColor(m.fill, c) {
		return
	}
	m.fill = c
	m.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

func (m *Markers) SetStroke(s graphics.Stroke) {
	if sameStroke(m.stroke, s) {
		return
	}
	m.stroke = s
	m.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

// SetHandler binds fn to eventType on every marker, nil unbinds it.
// Handlers are rebound on the next draw.
func (m *Markers) SetHandler(eventType string, fn MarkerHandler) {
	if fn == nil {
		delete(m.handlers, eventType)
	} else {
		if m.handlers == nil {
			m.handlers = map[string]MarkerHandler{}
		}
		m.handlers[eventType] = fn
	}
	m.Invalidate(MarkersPosition, 0)
}

// Add registers a marker drawn on the next Draw.
func (m *Markers) Add(index int, x, y float64) *Marker {
	mk := &Marker{Index: index, X: x, Y: y}
	m.markers = append(m.markers, mk)
	m.Invalidate(MarkersPosition, 0)
	return mk
}

// Clear drops every marker and returns its path to the pool.
func (m *Markers) Clear() {
	if len(m.markers) == 0 {
		return
	}
	for _, mk := range m.markers {
		if mk.path != nil {
			m.pool.Release(mk.path)
			mk.path = nil
		}
	}
	m.markers = nil
	m.Invalidate(MarkersPosition, 0)
}

// Pooled is the number of released paths waiting for reuse.
func (m *Markers) Pooled() int {
	if m.pool == nil {
		return 0
	}
	return m.pool.Free()
}

// Bounds is the box covering every marker.
func (m *Markers) Bounds() graphics.Rect {
	var r graphics.Rect
	for _, mk := range m.markers {
		r = r.Union(graphics.R(mk.X-m.size, mk.Y-m.size, 2*m.size, 2*m.size))
	}
	return r
}

func (m *Markers) Draw() {
	if !m.CheckDrawingNeeded() {
		return
	}
	stage := m.Container().Stage()
	if m.layer == nil {
		m.layer = stage.Layer()
		m.pool = pool.New(stage.Path, pool.ResetElement[graphics.Path])
	}
	m.Attach(m.layer)

	shapes := m.HasInvalidationState(MarkersPosition | consistency.Bounds)
	style := m.HasInvalidationState(consistency.Appearance)
	for _, mk := range m.markers {
		fresh := mk.path == nil
		if fresh {
			mk.path = m.pool.Checkout()
			mk.path.SetParent(m.layer)
			mk.path.SetTag(mk)
		}
		if fresh || shapes {
			mk.path.Clear()
			m.trace(mk.path, mk.X, mk.Y)
			mk.path.RemoveAllHandlers()
			for eventType, fn := range m.handlers {
				mk.path.On(eventType, func(ev graphics.PointerEvent) { fn(mk, ev) })
			}
		}
		if fresh || style {
			fill := m.fill
			if mk.Fill != nil {
				fill = mk.Fill
			}
			mk.path.SetFill(fill)
			mk.path.SetStroke(m.stroke)
		}
	}
	m.MarkConsistent(MarkersPosition | consistency.Bounds | consistency.Appearance)
}

// circleSegments is how many edges approximate a circle marker.
const circleSegments = 12

func (m *Markers) trace(p graphics.Path, x, y float64) {
	r := m.size
	switch m.markerType {
	case Square:
		p.Rect(graphics.R(x-r, y-r, 2*r, 2*r))
	case Diamond:
		p.MoveTo(x, y-r)
		p.LineTo(x+r, y)
		p.LineTo(x, y+r)
		p.LineTo(x-r, y)
		p.Close()
	default:
		for i := 0; i < circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			px, py := x+r*math.Cos(a), y+r*math.Sin(a)
			if i == 0 {
				p.MoveTo(px, py)
			} else {
				p.LineTo(px, py)
			}
		}
		p.Close()
	}
}

func (m *Markers) Remove() {
	if m.layer != nil {
		m.layer.SetParent(nil)
	}
}

func (m *Markers) Dispose() {
	if m.IsDisposed() {
		return
	}
	if m.pool != nil {
		m.Clear()
	}
	m.Base.Dispose()
}

type MarkersConfig struct {
	visual.Config `yaml:",inline"`
	Size          *float64      `json:"size,omitempty" yaml:"size,omitempty"`
	Type          *string       `json:"type,omitempty" yaml:"type,omitempty"`
	Fill          *string       `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke        *StrokeConfig `json:"stroke,omitempty" yaml:"stroke,omitempty"`
}

func (m *Markers) Setup(cfg MarkersConfig) {
	signal.Batch(func() {
		m.Base.Setup(cfg.Config)
		if cfg.Size != nil {
			m.SetSize(*cfg.Size)
		}
		if cfg.Type != nil {
			m.SetType(MarkerType(*cfg.Type))
		}
		if cfg.Fill != nil {
			m.SetFill(graphics.ParseColor(*cfg.Fill))
		}
		if cfg.Stroke != nil {
			m.SetStroke(cfg.Stroke.Stroke())
		}
	}, m)
}

func (m *Markers) Serialize() MarkersConfig {
	return MarkersConfig{
		Config: m.Base.Serialize(),
		Size:   ptr(m.size),
		Type:   ptr(string(m.markerType)),
		Fill:   ptr(graphics.FormatColor(m.fill)),
		Stroke: strokeConfig(m.stroke),
	}
}
