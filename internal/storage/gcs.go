package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/atkingtornado/ACT/internal/logger"
)

// GCSClient stores quicklook bundles in a Google Cloud Storage bucket.
type GCSClient struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a GCS storage client for the given bucket.
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{client: client, bucket: bucketName}, nil
}

// Close closes the GCS client.
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile uploads a file to the bucket.
func (g *GCSClient) StoreFile(ctx context.Context, path string, data []byte) error {
	logger.Debugf("Storing file to GCS: gs://%s/%s", g.bucket, path)

	w := g.client.Bucket(g.bucket).Object(path).NewWriter(ctx)
	w.ContentType = ContentType(path)
	w.CacheControl = "public, max-age=3600"
	w.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS upload: %w", err)
	}
	return nil
}

// GetFile downloads a file from the bucket.
func (g *GCSClient) GetFile(ctx context.Context, path string) ([]byte, error) {
	r, err := g.client.Bucket(g.bucket).Object(path).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %s: %w", path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// FileExists reports whether an object exists in the bucket.
func (g *GCSClient) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(path).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", path, err)
	}
	return true, nil
}

// ListQuicklooks lists stored quicklook index pages, newest first.
func (g *GCSClient) ListQuicklooks(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var pages []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/index.html") {
			pages = append(pages, attrs.Name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(pages)))
	if limit > 0 && limit < len(pages) {
		pages = pages[:limit]
	}
	return pages, nil
}
