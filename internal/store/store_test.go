package store

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/eventlens/eventlens/internal/config"
)

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestFilesystemStore_SaveAndFetch(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystemStore(root, "https://media.example.com")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	data := testJPEG(t, 800, 600)
	ctx := context.Background()

	if err := s.Save(ctx, "event1/photo1.jpg", data); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Fetch(ctx, "event1/photo1.jpg")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("fetched bytes differ from saved bytes")
	}
}

func TestFilesystemStore_Thumbnail(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystemStore(root, "https://media.example.com")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	data := testJPEG(t, 1600, 800)
	if err := s.Save(context.Background(), "event1/photo1.jpg", data); err != nil {
		t.Fatalf("save: %v", err)
	}

	thumbFile, err := s.ThumbFilePath("event1/photo1.jpg")
	if err != nil {
		t.Fatalf("thumb path: %v", err)
	}
	raw, err := os.ReadFile(thumbFile)
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != ThumbMaxDim {
		t.Errorf("expected thumbnail width %d, got %d", ThumbMaxDim, cfg.Width)
	}
	if cfg.Height != ThumbMaxDim/2 {
		t.Errorf("expected aspect ratio preserved (height %d), got %d", ThumbMaxDim/2, cfg.Height)
	}
}

func TestFilesystemStore_CorruptPhotoStillSaved(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystemStore(root, "")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	data := []byte("not an image")
	if err := s.Save(context.Background(), "event1/broken.jpg", data); err != nil {
		t.Fatalf("save should not fail on undecodable image: %v", err)
	}

	got, err := s.Fetch(context.Background(), "event1/broken.jpg")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("fetched bytes differ from saved bytes")
	}
}

func TestFilesystemStore_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystemStore(root, "")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	if _, err := s.Fetch(context.Background(), "../etc/passwd"); err == nil {
		t.Error("expected error for path traversal")
	}
	if err := s.Save(context.Background(), "a/../../b.jpg", []byte("x")); err == nil {
		t.Error("expected error for path traversal on save")
	}
}

func TestFilesystemStore_URLs(t *testing.T) {
	s, err := NewFilesystemStore(t.TempDir(), "https://media.example.com/")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	if got := s.PhotoURL("event1/p.jpg"); got != "https://media.example.com/event1/p.jpg" {
		t.Errorf("unexpected photo URL: %s", got)
	}
	if got := s.ThumbURL("event1/p.png"); got != "https://media.example.com/thumbs/event1/p.jpg" {
		t.Errorf("unexpected thumb URL: %s", got)
	}
}

func TestHTTPStore_Fetch(t *testing.T) {
	data := testJPEG(t, 100, 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/event1/p.jpg" {
			w.Write(data)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewHTTPStore(srv.URL, "https://cdn.example.com")

	got, err := s.Fetch(context.Background(), "event1/p.jpg")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("fetched bytes differ")
	}

	if _, err := s.Fetch(context.Background(), "missing.jpg"); err == nil {
		t.Error("expected error for missing photo")
	}

	if err := s.Save(context.Background(), "x.jpg", data); err == nil {
		t.Error("remote store should be read-only")
	}

	if got := s.PhotoURL("event1/p.jpg"); got != "https://cdn.example.com/event1/p.jpg" {
		t.Errorf("unexpected photo URL: %s", got)
	}
}

func TestNewFromConfig(t *testing.T) {
	fs, err := NewFromConfig(&config.MediaConfig{Path: t.TempDir(), BaseURL: "https://m.example.com"})
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	if _, ok := fs.(*FilesystemStore); !ok {
		t.Errorf("expected FilesystemStore, got %T", fs)
	}

	remote, err := NewFromConfig(&config.MediaConfig{Path: "https://media.example.com"})
	if err != nil {
		t.Fatalf("http store: %v", err)
	}
	if _, ok := remote.(*HTTPStore); !ok {
		t.Errorf("expected HTTPStore, got %T", remote)
	}

	if _, err := NewFromConfig(&config.MediaConfig{}); err == nil {
		t.Error("expected error for empty media path")
	}
}
