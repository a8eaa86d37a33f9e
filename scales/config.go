package scales

import (
	"image/color"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
)

// LinearConfig configures a Linear scale. Nil fields keep their value.
type LinearConfig struct {
	Minimum    *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum    *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Inverted   *bool    `json:"inverted,omitempty" yaml:"inverted,omitempty"`
	TicksCount *int     `json:"ticksCount,omitempty" yaml:"ticksCount,omitempty"`
}

// Setup applies cfg, dispatching at most once.
func (s *Linear) Setup(cfg LinearConfig) {
	signal.Batch(func() {
		if cfg.Minimum != nil {
			s.SetMinimum(*cfg.Minimum)
		}
		if cfg.Maximum != nil {
			s.SetMaximum(*cfg.Maximum)
		}
		if cfg.Inverted != nil {
			s.SetInverted(*cfg.Inverted)
		}
		if cfg.TicksCount != nil {
			s.SetTicksCount(*cfg.TicksCount)
		}
	}, s)
}

func (s *Linear) Serialize() LinearConfig {
	inverted, ticks := s.inverted, s.ticksCount
	cfg := LinearConfig{Inverted: &inverted, TicksCount: &ticks}
	if !s.minAuto {
		v := s.min
		cfg.Minimum = &v
	}
	if !s.maxAuto {
		v := s.max
		cfg.Maximum = &v
	}
	return cfg
}

// LinearColorConfig adds the gradient colors to LinearConfig.
type LinearColorConfig struct {
	LinearConfig `yaml:",inline"`
	Colors       []string `json:"colors,omitempty" yaml:"colors,omitempty"`
}

func (s *LinearColor) Setup(cfg LinearColorConfig) {
	signal.Batch(func() {
		s.Linear.Setup(cfg.LinearConfig)
		if len(cfg.Colors) > 0 {
			colors := make([]color.Color, 0, len(cfg.Colors))
			for _, c := range cfg.Colors {
				colors = append(colors, graphics.ParseColor(c))
			}
			s.SetColors(colors...)
		}
	}, s)
}

func (s *LinearColor) Serialize() LinearColorConfig {
	cfg := LinearColorConfig{LinearConfig: s.Linear.Serialize()}
	for _, c := range s.colors {
		cfg.Colors = append(cfg.Colors, graphics.FormatColor(c))
	}
	return cfg
}
