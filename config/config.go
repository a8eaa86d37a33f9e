// Package config loads chart documents: a chart type, an output size and
// the component settings, fed to the charts through their Setup.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/heatmap"
	"github.com/delaneyj/chartparty/mapchart"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/visual"
)

const (
	TypeMap     = "map"
	TypeHeatMap = "heatmap"

	FormatSVG = "svg"
	FormatPNG = "png"

	defaultWidth  = 640
	defaultHeight = 480
)

var (
	ErrEmptyConfig     = errors.New("config: empty document")
	ErrUnknownType     = errors.New("config: unknown chart type")
	ErrUnknownFormat   = errors.New("config: unknown output format")
	ErrMissingSettings = errors.New("config: chart settings missing")
)

// Document describes one chart. JSON documents load as well, YAML being a
// superset.
type Document struct {
	Type    string           `json:"type" yaml:"type"`
	Width   float64          `json:"width,omitempty" yaml:"width,omitempty"`
	Height  float64          `json:"height,omitempty" yaml:"height,omitempty"`
	Format  string           `json:"format,omitempty" yaml:"format,omitempty"`
	GeoData string           `json:"geoData,omitempty" yaml:"geoData,omitempty"`
	Map     *mapchart.Config `json:"map,omitempty" yaml:"map,omitempty"`
	HeatMap *heatmap.Config  `json:"heatmap,omitempty" yaml:"heatmap,omitempty"`

	dir string
}

// Chart is what Build returns.
type Chart interface {
	visual.Drawable
	ExportSVG(w io.Writer) error
	ExportPNG(w io.Writer) error
	ConsistencyString() string
	Dispose()
}

// Load reads the document at path. Relative paths inside it resolve
// against its directory.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	doc.dir = filepath.Dir(path)
	return doc, nil
}

func Parse(data []byte) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		reporting.Error(reporting.ErrEmptyConfig, nil)
		return nil, ErrEmptyConfig
	}
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	doc.Type = strings.ToLower(doc.Type)
	doc.Format = strings.ToLower(doc.Format)
	if doc.Width <= 0 {
		doc.Width = defaultWidth
	}
	if doc.Height <= 0 {
		doc.Height = defaultHeight
	}
	if doc.Format == "" {
		doc.Format = FormatSVG
	}
	return doc, nil
}

// Apply overrides the document with the set environment values.
func (d *Document) Apply(env *Env) {
	if env == nil {
		return
	}
	if env.Width > 0 {
		d.Width = env.Width
	}
	if env.Height > 0 {
		d.Height = env.Height
	}
	if env.Format != "" {
		d.Format = strings.ToLower(env.Format)
	}
	reporting.SetStrict(env.Strict)
}

func (d *Document) Validate() error {
	switch d.Format {
	case FormatSVG, FormatPNG:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, d.Format)
	}
	switch d.Type {
	case TypeMap:
		if d.Map == nil && d.GeoData == "" {
			return fmt.Errorf("%w: map", ErrMissingSettings)
		}
	case TypeHeatMap:
		if d.HeatMap == nil {
			return fmt.Errorf("%w: heatmap", ErrMissingSettings)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, d.Type)
	}
	return nil
}

// Build creates the chart on a fresh stage of the document size. The chart
// is set up but not drawn.
func (d *Document) Build() (Chart, *graphics.Stage, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	stage := graphics.NewStage(d.Width, d.Height)

	var c Chart
	switch d.Type {
	case TypeMap:
		m := mapchart.NewMap()
		if d.GeoData != "" {
			path := d.GeoData
			if !filepath.IsAbs(path) {
				path = filepath.Join(d.dir, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("config: geo data: %w", err)
			}
			if !m.SetGeoJSON(data) {
				return nil, nil, fmt.Errorf("config: geo data %s is not a feature collection", d.GeoData)
			}
		}
		if d.Map != nil {
			m.Setup(*d.Map)
		}
		c = m
	case TypeHeatMap:
		h := heatmap.New()
		h.Setup(*d.HeatMap)
		c = h
	}
	c.SetContainer(stage.Root())
	return c, stage, nil
}
