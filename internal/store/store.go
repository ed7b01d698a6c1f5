// Package store manages the event photo media files: originals,
// generated thumbnails and their public URLs.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/eventlens/eventlens/internal/config"
)

// Store provides access to photo media by its stored path.
type Store interface {
	// Fetch returns the raw bytes of a stored photo.
	Fetch(ctx context.Context, path string) ([]byte, error)
	// Save stores photo bytes under the given path and generates a thumbnail.
	Save(ctx context.Context, path string, data []byte) error
	// PhotoURL returns the public URL for a stored photo.
	PhotoURL(path string) string
	// ThumbURL returns the public URL for a photo's thumbnail.
	ThumbURL(path string) string
}

// NewFromConfig builds a store from the media configuration. A media path
// pointing at an http(s) URL selects the remote read-only store.
func NewFromConfig(cfg *config.MediaConfig) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("media path is required")
	}
	if strings.HasPrefix(cfg.Path, "http://") || strings.HasPrefix(cfg.Path, "https://") {
		return NewHTTPStore(cfg.Path, cfg.BaseURL), nil
	}
	return NewFilesystemStore(cfg.Path, cfg.BaseURL)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
