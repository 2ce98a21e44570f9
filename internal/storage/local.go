package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalClient stores quicklook bundles on the local filesystem.
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a local storage client rooted at baseDir, creating
// the directory if needed.
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage.
func (l *LocalClient) Close() error { return nil }

// StoreFile writes a file under the base directory, creating parents.
func (l *LocalClient) StoreFile(ctx context.Context, path string, data []byte) error {
	full := filepath.Join(l.baseDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// GetFile reads a stored file.
func (l *LocalClient) GetFile(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// FileExists reports whether a stored file exists.
func (l *LocalClient) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.baseDir, filepath.FromSlash(path)))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ListQuicklooks lists stored quicklook index pages, newest first.
func (l *LocalClient) ListQuicklooks(ctx context.Context, limit int) ([]string, error) {
	var pages []string
	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.Name() == "index.html" {
			rel, _ := filepath.Rel(l.baseDir, path)
			pages = append(pages, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk quicklook directory: %w", err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(pages)))
	if limit > 0 && limit < len(pages) {
		pages = pages[:limit]
	}
	return pages, nil
}
