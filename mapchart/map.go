// Package mapchart draws choropleth maps: GeoJSON regions projected through
// a geo scale and colored from series values through a color scale.
package mapchart

import (
	"fmt"
	"image/color"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	geojson "github.com/paulmach/go.geojson"

	"github.com/delaneyj/chartparty/chart"
	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/scales"
	"github.com/delaneyj/chartparty/signal"
)

const family = "map"

var (
	StateSeries       = chart.Register(family, 0, "MAP_SERIES")
	StateScale        = chart.Register(family, 1, "MAP_SCALE")
	StateGeoData      = chart.Register(family, 2, "MAP_GEO_DATA")
	StateGeoDataIndex = chart.Register(family, 3, "MAP_GEO_DATA_INDEX")
	StateColorRange   = chart.Register(family, 4, "MAP_COLOR_RANGE")

	States = StateSeries | StateScale | StateGeoData | StateGeoDataIndex | StateColorRange
)

var (
	noDataFill     = color.NRGBA{R: 0xdf, G: 0xe5, B: 0xe8, A: 0xff}
	regionStroke   = graphics.Stroke{Color: color.White, Thickness: 0.5}
	selectedStroke = graphics.Stroke{Color: color.NRGBA{R: 0x45, G: 0x5a, B: 0x64, A: 0xff}, Thickness: 2}
)

type region struct {
	id    string
	rings [][][]float64
	path  graphics.Path
}

// Map is a choropleth chart.
type Map struct {
	chart.Base

	features []*geojson.Feature
	idField  string
	regions  []*region
	index    map[string]*region

	geo        core.Slot[*scales.Geo]
	colorScale core.Slot[*scales.LinearColor]
	palette    core.Slot[*elements.Palette]

	series         []*Series
	seriesListener signal.Listener

	selected      mapset.Set[string]
	onRegionClick func(id string)

	layer graphics.Layer
	// stale is set while regions hold no valid projection.
	stale bool
}

func NewMap() *Map {
	m := &Map{
		index:    map[string]*region{},
		selected: mapset.NewThreadUnsafeSet[string](),
	}
	m.Base = chart.NewBase(m, family, States, signal.DataChanged)
	m.Init()

	m.seriesListener = signal.Func(m.seriesInvalidated)
	m.geo = core.NewSlot[*scales.Geo](signal.Func(m.geoScaleInvalidated))
	m.colorScale = core.NewSlot[*scales.LinearColor](signal.Func(m.colorScaleInvalidated))
	m.palette = core.NewSlot[*elements.Palette](core.Forward(m, core.Remap{
		{When: signal.NeedsReapplication, State: chart.Legend, Signal: signal.NeedsRedraw},
	}))
	m.Legend().OnItemClick(func(i int) {
		if i >= 0 && i < len(m.series) {
			s := m.series[i]
			s.SetEnabled(!s.Enabled())
		}
	})
	return m
}

func (m *Map) geoScaleInvalidated(ev signal.Event) {
	var state consistency.State
	if ev.TargetNeedsRecalculation() {
		state |= StateScale | consistency.Bounds
	}
	if ev.TargetNeedsReapplication() {
		state |= consistency.Bounds
	}
	m.Invalidate(state, signal.NeedsRedraw)
}

func (m *Map) colorScaleInvalidated(ev signal.Event) {
	if ev.HasSignal(scales.Signals) {
		m.Invalidate(StateSeries, signal.NeedsRedraw)
	}
}

func (m *Map) seriesInvalidated(ev signal.Event) {
	var (
		state consistency.State
		sig   signal.Mask
	)
	if ev.HasSignal(signal.NeedsRedraw | signal.DataChanged) {
		state |= StateSeries
		sig |= signal.NeedsRedraw
	}
	if ev.TargetDataChanged() {
		sig |= signal.DataChanged
	}
	if ev.HasSignal(signal.NeedUpdateLegend) {
		state |= chart.Legend
		sig |= signal.NeedsRedraw
	}
	if ev.HasSignal(signal.NeedUpdateColorRange) {
		state |= StateColorRange | StateSeries
		sig |= signal.NeedsRedraw
	}
	m.Invalidate(state, sig)
}

// GeoScale returns the projection, creating a default one on first use.
func (m *Map) GeoScale() *scales.Geo {
	return m.geo.Get(scales.NewGeo)
}

func (m *Map) SetGeoScale(s *scales.Geo) {
	if s == nil {
		return
	}
	if m.geo.Set(s) {
		m.Invalidate(StateScale|consistency.Bounds, signal.NeedsRedraw)
	}
}

// ColorScale returns the scale regions are colored through.
func (m *Map) ColorScale() *scales.LinearColor {
	return m.colorScale.Get(func() *scales.LinearColor { return scales.NewLinearColor() })
}

func (m *Map) SetColorScale(s *scales.LinearColor) {
	if s == nil {
		return
	}
	if m.colorScale.Set(s) {
		m.Invalidate(StateColorRange|StateSeries, signal.NeedsRedraw)
	}
}

// Palette colors the legend items of series without a flat color.
func (m *Map) Palette() *elements.Palette {
	return m.palette.Get(func() *elements.Palette { return elements.NewPalette() })
}

// SetGeoData replaces the regions.
func (m *Map) SetGeoData(fc *geojson.FeatureCollection) {
	var features []*geojson.Feature
	if fc != nil {
		features = fc.Features
	}
	if len(features) == 0 && len(m.features) == 0 {
		return
	}
	m.features = slices.Clone(features)
	m.Invalidate(StateGeoData|StateGeoDataIndex|StateScale|StateSeries|consistency.Bounds, signal.NeedsRedraw)
}

// SetGeoJSON parses data as a feature collection. Invalid input is reported
// and leaves the current regions alone.
func (m *Map) SetGeoJSON(data []byte) bool {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		reporting.Error(reporting.ErrInvalidGeoJSON, err, err.Error())
		return false
	}
	m.SetGeoData(fc)
	return true
}

func (m *Map) GeoIDField() string { return m.idField }

// SetGeoIDField names the feature property holding the region id. Empty
// uses the feature id.
func (m *Map) SetGeoIDField(field string) {
	if m.idField == field {
		return
	}
	m.idField = field
	m.Invalidate(StateGeoDataIndex|StateSeries, signal.NeedsRedraw)
}

func (m *Map) AddSeries(name string) *Series {
	s := NewSeries(name)
	s.ListenSignals(m.seriesListener)
	m.series = append(m.series, s)
	m.Invalidate(StateSeries|StateColorRange|chart.Legend, signal.NeedsRedraw|signal.DataChanged)
	return s
}

func (m *Map) Series(i int) *Series {
	if i < 0 || i >= len(m.series) {
		return nil
	}
	return m.series[i]
}

func (m *Map) SeriesCount() int { return len(m.series) }

// RemoveSeries disposes the series at i.
func (m *Map) RemoveSeries(i int) {
	if i < 0 || i >= len(m.series) {
		return
	}
	s := m.series[i]
	s.UnlistenSignals(m.seriesListener)
	s.Dispose()
	m.series = slices.Delete(m.series, i, i+1)
	m.Invalidate(StateSeries|StateColorRange|chart.Legend, signal.NeedsRedraw|signal.DataChanged)
}

// OnRegionClick is called after a click toggled the region selection.
func (m *Map) OnRegionClick(fn func(id string)) {
	m.onRegionClick = fn
}

func (m *Map) SelectRegions(ids ...string) {
	changed := false
	for _, id := range ids {
		if m.selected.Add(id) {
			changed = true
		}
	}
	if changed {
		m.Invalidate(StateSeries, signal.NeedsRedraw)
	}
}

func (m *Map) UnselectRegions(ids ...string) {
	changed := false
	for _, id := range ids {
		if m.selected.Contains(id) {
			m.selected.Remove(id)
			changed = true
		}
	}
	if changed {
		m.Invalidate(StateSeries, signal.NeedsRedraw)
	}
}

func (m *Map) ClearSelection() {
	if m.selected.Cardinality() == 0 {
		return
	}
	m.selected.Clear()
	m.Invalidate(StateSeries, signal.NeedsRedraw)
}

// SelectedRegions returns the selected ids sorted.
func (m *Map) SelectedRegions() []string {
	ids := m.selected.ToSlice()
	slices.Sort(ids)
	return ids
}

func (m *Map) toggle(id string) {
	if id == "" {
		return
	}
	if m.selected.Contains(id) {
		m.UnselectRegions(id)
	} else {
		m.SelectRegions(id)
	}
	if m.onRegionClick != nil {
		m.onRegionClick(id)
	}
}

// Regions returns the ids of the drawn regions in feature order.
func (m *Map) Regions() []string {
	ids := make([]string, len(m.regions))
	for i, r := range m.regions {
		ids[i] = r.id
	}
	return ids
}

// RegionPath returns the path drawn for id.
func (m *Map) RegionPath(id string) (graphics.Path, bool) {
	r, ok := m.index[id]
	if !ok || r.path == nil {
		return nil, false
	}
	return r.path, true
}

// LegendItems lists one item per series.
func (m *Map) LegendItems() []elements.LegendItem {
	items := make([]elements.LegendItem, len(m.series))
	for i, s := range m.series {
		c := s.Color()
		if c == nil {
			c = m.Palette().ItemAt(i)
		}
		items[i] = elements.LegendItem{Text: s.Name(), Color: c, Disabled: !s.Enabled()}
	}
	return items
}

func featureRings(g *geojson.Geometry) ([][][]float64, bool) {
	if g == nil {
		return nil, true
	}
	switch g.Type {
	case geojson.GeometryPolygon:
		return g.Polygon, true
	case geojson.GeometryMultiPolygon:
		var rings [][][]float64
		for _, p := range g.MultiPolygon {
			rings = append(rings, p...)
		}
		return rings, true
	}
	return nil, false
}

func (m *Map) featureID(f *geojson.Feature) string {
	if m.idField != "" {
		id, err := f.PropertyString(m.idField)
		if err != nil {
			return ""
		}
		return id
	}
	if f.ID == nil {
		return ""
	}
	return fmt.Sprint(f.ID)
}

// DrawContent renders the regions into bounds.
func (m *Map) DrawContent(bounds graphics.Rect) {
	if m.layer == nil {
		m.layer = m.Root().Stage().Layer()
		m.layer.SetTag(m)
		m.layer.SetParent(m.Root())
	}

	reproject := false
	if m.HasInvalidationState(StateGeoData) {
		m.rebuildRegions()
		reproject = true
		m.MarkConsistent(StateGeoData)
	}

	if m.HasInvalidationState(StateGeoDataIndex) {
		clear(m.index)
		for i, r := range m.regions {
			r.id = m.featureID(m.features[i])
			if r.id != "" {
				m.index[r.id] = r
			}
		}
		m.MarkConsistent(StateGeoDataIndex)
	}

	geo := m.GeoScale()
	if m.HasInvalidationState(StateScale) {
		geo.SuspendSignalsDispatching()
		geo.ResetDataRange()
		for _, r := range m.regions {
			for _, ring := range r.rings {
				for _, pt := range ring {
					if len(pt) >= 2 {
						geo.ExtendDataRange(pt[0], pt[1])
					}
				}
			}
		}
		geo.ResumeSignalsDispatching(false)
		reproject = true
		m.MarkConsistent(StateScale)
	}

	if bounds.IsEmpty() {
		// Nothing fits. Keep the last projection hidden and redo it once
		// the bounds open up again.
		m.stale = m.stale || reproject || len(m.regions) > 0
		setVisible(m.layer, false)
	} else if geo.SetBounds(bounds) || reproject || m.stale || m.HasInvalidationState(consistency.Bounds) {
		for _, r := range m.regions {
			project(r, geo)
		}
		m.stale = false
		setVisible(m.layer, true)
	}

	if m.HasInvalidationState(StateColorRange) {
		cs := m.ColorScale()
		cs.SuspendSignalsDispatching()
		cs.ResetDataRange()
		for _, s := range m.series {
			if !s.Enabled() || s.Color() != nil {
				continue
			}
			for _, v := range s.data {
				cs.ExtendDataRange(v)
			}
		}
		cs.ResumeSignalsDispatching(false)
		m.Invalidate(StateSeries, 0)
		m.MarkConsistent(StateColorRange)
	}

	if m.HasInvalidationState(StateSeries) {
		for _, r := range m.regions {
			r.path.SetFill(m.regionFill(r.id))
			if r.id != "" && m.selected.Contains(r.id) {
				r.path.SetStroke(selectedStroke)
			} else {
				r.path.SetStroke(regionStroke)
			}
		}
		m.MarkConsistent(StateSeries)
	}
}

func setVisible(e graphics.Element, v bool) {
	if e.Visible() != v {
		e.SetVisible(v)
	}
}

func (m *Map) rebuildRegions() {
	for _, r := range m.regions {
		r.path.RemoveAllHandlers()
		r.path.SetParent(nil)
	}
	m.regions = m.regions[:0]
	stage := m.Root().Stage()
	for _, f := range m.features {
		rings, ok := featureRings(f.Geometry)
		if !ok {
			reporting.Error(reporting.ErrFeatureNotSupported, nil, string(f.Geometry.Type))
		}
		r := &region{rings: rings, path: stage.Path()}
		r.path.SetTag(m)
		r.path.SetParent(m.layer)
		r.path.On("click", func(graphics.PointerEvent) { m.toggle(r.id) })
		m.regions = append(m.regions, r)
	}
}

func project(r *region, geo *scales.Geo) {
	r.path.Clear()
	for _, ring := range r.rings {
		started := false
		for _, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			x, y := geo.Transform(pt[0], pt[1])
			if !started {
				r.path.MoveTo(x, y)
				started = true
				continue
			}
			r.path.LineTo(x, y)
		}
		if started {
			r.path.Close()
		}
	}
}

// regionFill takes the value of the first enabled series holding id.
func (m *Map) regionFill(id string) color.Color {
	if id == "" {
		return noDataFill
	}
	for _, s := range m.series {
		if !s.Enabled() {
			continue
		}
		v, ok := s.Value(id)
		if !ok {
			continue
		}
		if c := s.Color(); c != nil {
			return c
		}
		if c := m.ColorScale().ValueToColor(v); c != nil {
			return c
		}
	}
	return noDataFill
}

func (m *Map) Dispose() {
	if m.IsDisposed() {
		return
	}
	for _, s := range m.series {
		s.UnlistenSignals(m.seriesListener)
		s.Dispose()
	}
	m.series = nil
	m.geo.Clear()
	m.colorScale.Clear()
	m.palette.Dispose()
	m.Base.Dispose()
}
