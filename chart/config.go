package chart

import (
	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

// Config holds the settings every chart shares.
type Config struct {
	visual.Config `yaml:",inline"`
	Margin        *float64                   `json:"margin,omitempty" yaml:"margin,omitempty"`
	Background    *elements.BackgroundConfig `json:"background,omitempty" yaml:"background,omitempty"`
	Title         *elements.TitleConfig      `json:"title,omitempty" yaml:"title,omitempty"`
	Legend        *elements.LegendConfig     `json:"legend,omitempty" yaml:"legend,omitempty"`
}

// Setup applies cfg in one batch. Children are set up inside the same
// batch so the chart dispatches at most once.
func (c *Base) Setup(cfg Config) {
	signal.Batch(func() {
		c.Base.Setup(cfg.Config)
		if cfg.Margin != nil {
			c.SetMargin(*cfg.Margin)
		}
		if cfg.Background != nil {
			c.Background().Setup(*cfg.Background)
		}
		if cfg.Title != nil {
			c.Title().Setup(*cfg.Title)
		}
		if cfg.Legend != nil {
			c.Legend().Setup(*cfg.Legend)
		}
	}, c)
}

func (c *Base) Serialize() Config {
	background := c.Background().Serialize()
	title := c.Title().Serialize()
	legend := c.Legend().Serialize()
	margin := c.margin
	return Config{
		Config:     c.Base.Serialize(),
		Margin:     &margin,
		Background: &background,
		Title:      &title,
		Legend:     &legend,
	}
}
