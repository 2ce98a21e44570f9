package storage

import (
	"context"
	"fmt"

	"github.com/atkingtornado/ACT/internal/config"
)

// Mode selects the storage backend.
type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCS   Mode = "gcs"
)

// NewClient creates a storage client for the configured mode.
func NewClient(ctx context.Context, mode Mode, cfg *config.Config) (Client, error) {
	switch mode {
	case ModeLocal:
		dir := cfg.OutputDir
		if dir == "" {
			dir = "quicklooks"
		}
		client, err := NewLocalClient(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return client, nil

	case ModeGCS:
		client, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", mode)
	}
}
