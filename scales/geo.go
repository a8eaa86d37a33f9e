package scales

import (
	"math"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
)

// Geo projects longitude/latitude onto pixel bounds with an equirectangular
// projection that keeps the aspect ratio and centers the data.
type Geo struct {
	core.Base

	bounds                         graphics.Rect
	minLon, maxLon, minLat, maxLat float64
	hasData                        bool
	gap                            float64
}

func NewGeo() *Geo {
	s := &Geo{}
	s.Base = core.NewBase(s, "geo", consistency.OnlyDispatching, Signals)
	return s
}

// SetBounds sets the pixel area. Owners call it while drawing, so it does
// not dispatch; it reports whether the bounds changed.
func (s *Geo) SetBounds(r graphics.Rect) bool {
	if s.bounds == r {
		return false
	}
	s.bounds = r
	return true
}

func (s *Geo) Bounds() graphics.Rect { return s.bounds }

func (s *Geo) Gap() float64 { return s.gap }

// SetGap sets the share of the data span left empty around the data.
func (s *Geo) SetGap(g float64) {
	g = math.Max(0, g)
	if s.gap == g {
		return
	}
	s.gap = g
	s.DispatchSignal(signal.NeedsReapplication)
}

// ExtendDataRange widens the data extent to include the point.
func (s *Geo) ExtendDataRange(lon, lat float64) {
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return
	}
	if !s.hasData {
		s.minLon, s.maxLon, s.minLat, s.maxLat = lon, lon, lat, lat
		s.hasData = true
		s.DispatchSignal(signal.NeedsRecalculation)
		return
	}
	changed := false
	if lon < s.minLon {
		s.minLon, changed = lon, true
	}
	if lon > s.maxLon {
		s.maxLon, changed = lon, true
	}
	if lat < s.minLat {
		s.minLat, changed = lat, true
	}
	if lat > s.maxLat {
		s.maxLat, changed = lat, true
	}
	if changed {
		s.DispatchSignal(signal.NeedsRecalculation)
	}
}

func (s *Geo) ResetDataRange() {
	if !s.hasData {
		return
	}
	s.hasData = false
	s.DispatchSignal(signal.NeedsRecalculation)
}

// Extent returns the data extent as lon/lat minimums and maximums.
func (s *Geo) Extent() (minLon, minLat, maxLon, maxLat float64, ok bool) {
	return s.minLon, s.minLat, s.maxLon, s.maxLat, s.hasData
}

// Transform projects a point into the bounds. North is up.
func (s *Geo) Transform(lon, lat float64) (float64, float64) {
	if !s.hasData || s.bounds.IsEmpty() {
		return math.NaN(), math.NaN()
	}
	spanLon := s.maxLon - s.minLon
	spanLat := s.maxLat - s.minLat
	minLon := s.minLon - spanLon*s.gap
	maxLat := s.maxLat + spanLat*s.gap
	spanLon *= 1 + 2*s.gap
	spanLat *= 1 + 2*s.gap

	k := math.Inf(1)
	if spanLon > 0 {
		k = s.bounds.Width / spanLon
	}
	if spanLat > 0 {
		k = math.Min(k, s.bounds.Height/spanLat)
	}
	if math.IsInf(k, 1) {
		cx, cy := s.bounds.Center()
		return cx, cy
	}
	offX := s.bounds.Left + (s.bounds.Width-spanLon*k)/2
	offY := s.bounds.Top + (s.bounds.Height-spanLat*k)/2
	return offX + (lon-minLon)*k, offY + (maxLat-lat)*k
}
