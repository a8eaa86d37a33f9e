package heatmap

import (
	"github.com/delaneyj/chartparty/chart"
	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/scales"
	"github.com/delaneyj/chartparty/signal"
)

type Config struct {
	chart.Config `yaml:",inline"`
	XScale       *scales.LinearConfig      `json:"xScale,omitempty" yaml:"xScale,omitempty"`
	YScale       *scales.LinearConfig      `json:"yScale,omitempty" yaml:"yScale,omitempty"`
	ColorScale   *scales.LinearColorConfig `json:"colorScale,omitempty" yaml:"colorScale,omitempty"`
	XAxis        *elements.AxisConfig      `json:"xAxis,omitempty" yaml:"xAxis,omitempty"`
	YAxis        *elements.AxisConfig      `json:"yAxis,omitempty" yaml:"yAxis,omitempty"`
	Cells        []Cell                    `json:"cells,omitempty" yaml:"cells,omitempty"`
}

func (h *HeatMap) Setup(cfg Config) {
	signal.Batch(func() {
		h.Base.Setup(cfg.Config)
		if cfg.XScale != nil {
			h.XScale().Setup(*cfg.XScale)
		}
		if cfg.YScale != nil {
			h.YScale().Setup(*cfg.YScale)
		}
		if cfg.ColorScale != nil {
			h.ColorScale().Setup(*cfg.ColorScale)
		}
		if cfg.XAxis != nil {
			h.XAxis().Setup(*cfg.XAxis)
		}
		if cfg.YAxis != nil {
			h.YAxis().Setup(*cfg.YAxis)
		}
		if cfg.Cells != nil {
			h.series.SetCells(cfg.Cells)
		}
	}, h)
}

func (h *HeatMap) Serialize() Config {
	xScale, yScale := h.XScale().Serialize(), h.YScale().Serialize()
	colorScale := h.ColorScale().Serialize()
	xAxis, yAxis := h.XAxis().Serialize(), h.YAxis().Serialize()
	return Config{
		Config:     h.Base.Serialize(),
		XScale:     &xScale,
		YScale:     &yScale,
		ColorScale: &colorScale,
		XAxis:      &xAxis,
		YAxis:      &yAxis,
		Cells:      h.series.Cells(),
	}
}
