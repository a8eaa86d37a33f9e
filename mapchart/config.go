package mapchart

import (
	"github.com/delaneyj/chartparty/chart"
	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/scales"
	"github.com/delaneyj/chartparty/signal"
)

type Config struct {
	chart.Config `yaml:",inline"`
	GeoIDField   *string                   `json:"geoIdField,omitempty" yaml:"geoIdField,omitempty"`
	ColorScale   *scales.LinearColorConfig `json:"colorScale,omitempty" yaml:"colorScale,omitempty"`
	Palette      *elements.PaletteConfig   `json:"palette,omitempty" yaml:"palette,omitempty"`
	Series       []SeriesConfig            `json:"series,omitempty" yaml:"series,omitempty"`
	Selected     []string                  `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Setup applies cfg in one batch. Series in cfg replace the current ones.
func (m *Map) Setup(cfg Config) {
	signal.Batch(func() {
		m.Base.Setup(cfg.Config)
		if cfg.GeoIDField != nil {
			m.SetGeoIDField(*cfg.GeoIDField)
		}
		if cfg.ColorScale != nil {
			m.ColorScale().Setup(*cfg.ColorScale)
		}
		if cfg.Palette != nil {
			m.Palette().Setup(*cfg.Palette)
		}
		if cfg.Series != nil {
			for len(m.series) > 0 {
				m.RemoveSeries(len(m.series) - 1)
			}
			for _, sc := range cfg.Series {
				m.AddSeries("").Setup(sc)
			}
		}
		if cfg.Selected != nil {
			m.ClearSelection()
			m.SelectRegions(cfg.Selected...)
		}
	}, m)
}

func (m *Map) Serialize() Config {
	colorScale := m.ColorScale().Serialize()
	palette := m.Palette().Serialize()
	idField := m.idField
	cfg := Config{
		Config:     m.Base.Serialize(),
		GeoIDField: &idField,
		ColorScale: &colorScale,
		Palette:    &palette,
		Selected:   m.SelectedRegions(),
	}
	for _, s := range m.series {
		cfg.Series = append(cfg.Series, s.Serialize())
	}
	return cfg
}
