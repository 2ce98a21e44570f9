// Package storage persists generated quicklook bundles, either on the local
// filesystem or in a Google Cloud Storage bucket.
package storage

import (
	"context"
)

// Client is the storage backend for quicklook output.
type Client interface {
	// Close releases the client.
	Close() error

	// StoreFile stores a file at the given slash-separated path.
	StoreFile(ctx context.Context, path string, data []byte) error

	// GetFile retrieves a stored file.
	GetFile(ctx context.Context, path string) ([]byte, error)

	// FileExists reports whether a file exists at the given path.
	FileExists(ctx context.Context, path string) (bool, error)

	// ListQuicklooks lists stored quicklook index pages, newest first,
	// limited to limit entries when limit > 0.
	ListQuicklooks(ctx context.Context, limit int) ([]string, error)
}
