package store

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ThumbMaxDim is the maximum dimension of generated thumbnails.
const ThumbMaxDim = 400

const thumbDir = "thumbs"

// FilesystemStore keeps originals and thumbnails under a root directory.
// Thumbnails live in a parallel tree under thumbs/ with a .jpg extension.
type FilesystemStore struct {
	root    string
	baseURL string
}

// NewFilesystemStore creates a filesystem store rooted at the given directory.
func NewFilesystemStore(root, baseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &FilesystemStore{root: root, baseURL: baseURL}, nil
}

// Fetch returns the raw bytes of a stored photo.
func (s *FilesystemStore) Fetch(ctx context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full) //nolint:gosec // path validated by resolve
	if err != nil {
		return nil, fmt.Errorf("read photo %s: %w", path, err)
	}
	return data, nil
}

// Save stores photo bytes and generates a thumbnail. A photo that cannot
// be decoded is still saved; it just gets no thumbnail.
func (s *FilesystemStore) Save(ctx context.Context, path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return fmt.Errorf("create photo directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0600); err != nil {
		return fmt.Errorf("write photo %s: %w", path, err)
	}

	if err := s.writeThumbnail(path, data); err != nil {
		log.Printf("warning: thumbnail for %s: %v", path, err)
	}
	return nil
}

// PhotoURL returns the public URL for a stored photo.
func (s *FilesystemStore) PhotoURL(path string) string {
	return joinURL(s.baseURL, path)
}

// ThumbURL returns the public URL for a photo's thumbnail.
func (s *FilesystemStore) ThumbURL(path string) string {
	return joinURL(s.baseURL, thumbPath(path))
}

// ThumbFilePath returns the on-disk path of a photo's thumbnail.
func (s *FilesystemStore) ThumbFilePath(path string) (string, error) {
	return s.resolve(thumbPath(path))
}

func (s *FilesystemStore) writeThumbnail(path string, data []byte) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	thumb := scaleDown(img, ThumbMaxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	full, err := s.resolve(thumbPath(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return fmt.Errorf("create thumb directory: %w", err)
	}
	if err := os.WriteFile(full, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// resolve joins a stored path to the root and rejects path traversal.
func (s *FilesystemStore) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid media path: %s", path)
	}
	return filepath.Join(s.root, clean), nil
}

func thumbPath(path string) string {
	ext := filepath.Ext(path)
	return thumbDir + "/" + strings.TrimSuffix(path, ext) + ".jpg"
}

// scaleDown resizes an image so its longer side is at most maxDim,
// preserving aspect ratio. Images already within the limit are returned
// as a plain copy.
func scaleDown(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	var newW, newH int
	if w >= h {
		newW = maxDim
		newH = h * maxDim / w
	} else {
		newH = maxDim
		newW = w * maxDim / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

var _ Store = (*FilesystemStore)(nil)
