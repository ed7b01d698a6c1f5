package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPStore reads photos from a remote media server. It is read-only;
// uploads go through the filesystem store.
type HTTPStore struct {
	baseFetchURL string
	baseURL      string
	client       *http.Client
}

// NewHTTPStore creates a remote store fetching from baseFetchURL and
// building public URLs from baseURL. An empty baseURL falls back to the
// fetch URL.
func NewHTTPStore(baseFetchURL, baseURL string) *HTTPStore {
	if baseURL == "" {
		baseURL = baseFetchURL
	}
	return &HTTPStore{
		baseFetchURL: baseFetchURL,
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads a photo from the remote media server.
func (s *HTTPStore) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := joinURL(s.baseFetchURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s failed with status %d", path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	return data, nil
}

// Save is not supported on the remote store.
func (s *HTTPStore) Save(ctx context.Context, path string, data []byte) error {
	return fmt.Errorf("remote media store is read-only")
}

// PhotoURL returns the public URL for a stored photo.
func (s *HTTPStore) PhotoURL(path string) string {
	return joinURL(s.baseURL, path)
}

// ThumbURL returns the public URL for a photo's thumbnail.
func (s *HTTPStore) ThumbURL(path string) string {
	return joinURL(s.baseURL, thumbPath(path))
}

var _ Store = (*HTTPStore)(nil)
