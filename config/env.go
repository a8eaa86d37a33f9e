package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Env holds the environment overrides. Zero values leave the document
// alone.
type Env struct {
	Width  float64 `envconfig:"CHARTPARTY_WIDTH"`
	Height float64 `envconfig:"CHARTPARTY_HEIGHT"`
	Format string  `envconfig:"CHARTPARTY_FORMAT"`
	Strict bool    `envconfig:"CHARTPARTY_STRICT"`
}

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}
	return &env, nil
}
