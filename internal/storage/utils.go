package storage

import (
	"fmt"
	"strings"
	"time"
)

// QuicklookFolderPath generates a consistent folder path for a quicklook
// bundle: YYYY/MM/DD/<datastream>.
func QuicklookFolderPath(datastream string, timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/%s",
		timestamp.Year(), timestamp.Month(), timestamp.Day(), datastream)
}

// ContentType determines the MIME content type from a file extension.
func ContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".md"):
		return "text/markdown"
	case strings.HasSuffix(filename, ".css"):
		return "text/css"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
