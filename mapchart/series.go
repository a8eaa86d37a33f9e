package mapchart

import (
	"image/color"
	"maps"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
)

// SeriesSignals is what a series may dispatch to its chart.
const SeriesSignals = signal.NeedsRedraw | signal.DataChanged | signal.NeedUpdateLegend | signal.NeedUpdateColorRange

// Series binds values to regions by id. It draws nothing itself, the map
// colors its regions from the enabled series.
type Series struct {
	core.Base

	name    string
	enabled bool
	color   color.Color
	data    map[string]float64
}

func NewSeries(name string) *Series {
	s := &Series{name: name, enabled: true, data: map[string]float64{}}
	s.Base = core.NewBase(s, "mapseries", consistency.OnlyDispatching, SeriesSignals)
	return s
}

func (s *Series) Name() string       { return s.name }
func (s *Series) Enabled() bool      { return s.enabled }
func (s *Series) Color() color.Color { return s.color }
func (s *Series) Len() int           { return len(s.data) }

func (s *Series) SetName(name string) {
	if s.name == name {
		return
	}
	s.name = name
	s.DispatchSignal(signal.NeedUpdateLegend)
}

func (s *Series) SetEnabled(enabled bool) {
	if s.enabled == enabled {
		return
	}
	s.enabled = enabled
	s.DispatchSignal(signal.NeedsRedraw | signal.NeedUpdateLegend | signal.NeedUpdateColorRange)
}

// SetColor sets a flat fill for the series regions. nil colors them
// through the chart color scale.
func (s *Series) SetColor(c color.Color) {
	if s.color == nil && c == nil {
		return
	}
	if s.color != nil && c != nil && color.NRGBAModel.Convert(s.color) == color.NRGBAModel.Convert(c) {
		return
	}
	s.color = c
	s.DispatchSignal(signal.NeedsRedraw | signal.NeedUpdateLegend)
}

func (s *Series) Value(id string) (float64, bool) {
	v, ok := s.data[id]
	return v, ok
}

func (s *Series) Data() map[string]float64 { return maps.Clone(s.data) }

// SetData replaces every value.
func (s *Series) SetData(data map[string]float64) {
	if maps.Equal(s.data, data) {
		return
	}
	s.data = maps.Clone(data)
	if s.data == nil {
		s.data = map[string]float64{}
	}
	s.DispatchSignal(signal.DataChanged | signal.NeedUpdateColorRange)
}

func (s *Series) SetValue(id string, v float64) {
	if old, ok := s.data[id]; ok && old == v {
		return
	}
	s.data[id] = v
	s.DispatchSignal(signal.DataChanged | signal.NeedUpdateColorRange)
}

type SeriesConfig struct {
	Name    *string            `json:"name,omitempty" yaml:"name,omitempty"`
	Enabled *bool              `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Color   *string            `json:"color,omitempty" yaml:"color,omitempty"`
	Data    map[string]float64 `json:"data,omitempty" yaml:"data,omitempty"`
}

func (s *Series) Setup(cfg SeriesConfig) {
	signal.Batch(func() {
		if cfg.Name != nil {
			s.SetName(*cfg.Name)
		}
		if cfg.Enabled != nil {
			s.SetEnabled(*cfg.Enabled)
		}
		if cfg.Color != nil {
			s.SetColor(graphics.ParseColor(*cfg.Color))
		}
		if cfg.Data != nil {
			s.SetData(cfg.Data)
		}
	}, s)
}

func (s *Series) Serialize() SeriesConfig {
	name, enabled := s.name, s.enabled
	cfg := SeriesConfig{Name: &name, Enabled: &enabled, Data: maps.Clone(s.data)}
	if s.color != nil {
		c := graphics.FormatColor(s.color)
		cfg.Color = &c
	}
	return cfg
}
