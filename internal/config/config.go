// Package config loads toolkit configuration from the environment.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the configuration for the quicklook tooling.
type Config struct {
	// Output configuration
	OutputDir   string `env:"ACT_OUTPUT_DIR,default=./quicklooks"`
	StorageMode string `env:"ACT_STORAGE_MODE,default=local"`
	GCSBucket   string `env:"ACT_GCS_BUCKET"`

	// Figure geometry (per subplot cell, pixels)
	FigureWidth  int `env:"ACT_FIGURE_WIDTH,default=800"`
	FigureHeight int `env:"ACT_FIGURE_HEIGHT,default=300"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
