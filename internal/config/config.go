package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Width    int     `envconfig:"WIDTH" default:"800"`
	Height   int     `envconfig:"HEIGHT" default:"600"`
	FontPath string  `envconfig:"FONT_PATH" default:""`
	FontSize float64 `envconfig:"FONT_SIZE" default:"12"`
	LogLevel string  `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MOLSKETCH", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
