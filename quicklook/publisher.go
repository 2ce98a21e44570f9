package quicklook

import (
	"context"
	"fmt"

	"github.com/atkingtornado/ACT/internal/logger"
	"github.com/atkingtornado/ACT/internal/storage"
)

// Publisher stores generated bundles through a storage client.
type Publisher struct {
	store storage.Client
}

// NewPublisher creates a publisher backed by the given storage client.
func NewPublisher(store storage.Client) *Publisher {
	return &Publisher{store: store}
}

// Publish stores every file of the bundle under its folder path.
func (p *Publisher) Publish(ctx context.Context, bundle *Bundle) error {
	for name, data := range bundle.Files {
		path := bundle.FolderPath + "/" + name
		if err := p.store.StoreFile(ctx, path, data); err != nil {
			return fmt.Errorf("failed to store %s: %w", path, err)
		}
		logger.Debug("Stored quicklook file", map[string]interface{}{
			"path":  path,
			"bytes": len(data),
		})
	}
	logger.Info("Published quicklook bundle", map[string]interface{}{
		"folder": bundle.FolderPath,
		"files":  len(bundle.Files),
	})
	return nil
}
