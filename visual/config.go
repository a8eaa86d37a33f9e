package visual

import "github.com/delaneyj/chartparty/signal"

// Config holds the settings shared by every drawable.
type Config struct {
	Enabled *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ZIndex  *float64 `json:"zIndex,omitempty" yaml:"zIndex,omitempty"`
}

// Setup applies cfg through the regular setters. A missing Enabled means
// enabled.
func (b *Base) Setup(cfg Config) {
	signal.Batch(func() {
		b.SetEnabled(cfg.Enabled == nil || *cfg.Enabled)
		if cfg.ZIndex != nil {
			b.SetZIndex(*cfg.ZIndex)
		}
	}, b)
}

// Serialize returns the current settings. ZIndex is only present when it
// was set explicitly.
func (b *Base) Serialize() Config {
	enabled := b.enabled
	cfg := Config{Enabled: &enabled}
	if b.zIndexSet {
		z := b.zIndex
		cfg.ZIndex = &z
	}
	return cfg
}
