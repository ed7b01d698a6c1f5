package face

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// createTestImage creates a gradient RGBA image so JPEG encoding has
// something non-trivial to work with.
func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / max(width, 1)),
				G: uint8(y * 255 / max(height, 1)),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func encodeTestJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// failingProvider simulates a provider outage.
type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }

func (failingProvider) EmbedFace(ctx context.Context, faceCrop []byte) ([]float32, error) {
	return nil, ErrProviderUnavailable
}

// invalidProvider returns embeddings that fail validation.
type invalidProvider struct{}

func (invalidProvider) Name() string { return "invalid" }

func (invalidProvider) EmbedFace(ctx context.Context, faceCrop []byte) ([]float32, error) {
	return make([]float32, EmbeddingDim), nil // zero vector
}

func newStubExtractor() *Extractor {
	return NewExtractor([]Detector{StubDetector{}}, StubProvider{})
}

func TestExtract_SingleFace(t *testing.T) {
	data := encodeTestJPEG(t, createTestImage(400, 300))

	result, err := newStubExtractor().Extract(context.Background(), data, ExtractOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(result.Faces))
	}
	if result.Detector != "stub" {
		t.Errorf("expected detector 'stub', got '%s'", result.Detector)
	}

	f := result.Faces[0]
	if len(f.Embedding) != EmbeddingDim {
		t.Errorf("expected %d-dim embedding, got %d", EmbeddingDim, len(f.Embedding))
	}
	if !IsValidEmbedding(f.Embedding) {
		t.Error("expected a valid normalized embedding")
	}
}

func TestExtract_CorruptImage(t *testing.T) {
	result, err := newStubExtractor().Extract(context.Background(), []byte("definitely not a jpeg"), ExtractOptions{})
	if err != nil {
		t.Fatalf("corrupt image must not be an error, got %v", err)
	}
	if len(result.Faces) != 0 {
		t.Errorf("expected no faces for corrupt image, got %d", len(result.Faces))
	}
}

func TestExtract_RegionInSourceCoordinates(t *testing.T) {
	// 2048px wide: the working image is downscaled, but the returned region
	// must be expressed in source pixels.
	data := encodeTestJPEG(t, createTestImage(2048, 1024))

	result, err := newStubExtractor().Extract(context.Background(), data, ExtractOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(result.Faces))
	}

	r := result.Faces[0].Region
	// Stub detector returns the middle half of the working image, which maps
	// back to the middle half of the source.
	if r.Left < 500 || r.Left > 524 {
		t.Errorf("expected left near 512, got %d", r.Left)
	}
	if r.Right < 1512 || r.Right > 1548 {
		t.Errorf("expected right near 1536, got %d", r.Right)
	}
	if r.Top < 0 || r.Bottom > 1024 {
		t.Errorf("region out of source bounds: %+v", r)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	data := encodeTestJPEG(t, createTestImage(300, 300))
	ex := newStubExtractor()

	first, err := ex.Extract(context.Background(), data, ExtractOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ex.Extract(context.Background(), data, ExtractOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Faces) != 1 || len(second.Faces) != 1 {
		t.Fatalf("expected 1 face in both runs")
	}
	if d := EuclideanDistance(first.Faces[0].Embedding, second.Faces[0].Embedding); d != 0 {
		t.Errorf("same image should produce identical embeddings, distance was %f", d)
	}
}

func TestExtract_SelfieModeChangesPreprocessing(t *testing.T) {
	data := encodeTestJPEG(t, createTestImage(300, 300))
	ex := newStubExtractor()

	plain, err := ex.Extract(context.Background(), data, ExtractOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	selfie, err := ex.Extract(context.Background(), data, ExtractOptions{Selfie: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plain.Faces) != 1 || len(selfie.Faces) != 1 {
		t.Fatal("expected 1 face in both modes")
	}
	// Equalization alters the crop bytes, so the stub embedding differs.
	if d := EuclideanDistance(plain.Faces[0].Embedding, selfie.Faces[0].Embedding); d == 0 {
		t.Error("selfie preprocessing should change the face crop")
	}
}

func TestExtract_ProviderUnavailable(t *testing.T) {
	data := encodeTestJPEG(t, createTestImage(200, 200))
	ex := NewExtractor([]Detector{StubDetector{}}, failingProvider{})

	_, err := ex.Extract(context.Background(), data, ExtractOptions{})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable error, got %v", err)
	}
}

func TestExtract_InvalidEmbeddingSkipped(t *testing.T) {
	data := encodeTestJPEG(t, createTestImage(200, 200))
	ex := NewExtractor([]Detector{StubDetector{}}, invalidProvider{})

	result, err := ex.Extract(context.Background(), data, ExtractOptions{})
	if err != nil {
		t.Fatalf("invalid embedding should be skipped, not an error: %v", err)
	}
	if len(result.Faces) != 0 {
		t.Errorf("expected zero faces after validation, got %d", len(result.Faces))
	}
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantWidth  int
		wantHeight int
		wantScale  float64
	}{
		{"small image untouched", 640, 480, 640, 480, 1},
		{"exactly at limit", 1024, 768, 1024, 768, 1},
		{"wide image scaled", 2048, 1024, 1024, 512, 2},
		{"tall image scaled", 1000, 4096, 250, 1024, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, scale := downscale(createTestImage(tt.width, tt.height), MaxImageDim)
			if dst.Bounds().Dx() != tt.wantWidth || dst.Bounds().Dy() != tt.wantHeight {
				t.Errorf("expected %dx%d, got %dx%d",
					tt.wantWidth, tt.wantHeight, dst.Bounds().Dx(), dst.Bounds().Dy())
			}
			if scale != tt.wantScale {
				t.Errorf("expected scale %f, got %f", tt.wantScale, scale)
			}
		})
	}
}

func TestCropWithPadding_ClampedAtEdges(t *testing.T) {
	img := createTestImage(100, 100)

	// Region touching the top-left corner: padding cannot go negative.
	crop := cropWithPadding(img, Region{Top: 5, Right: 50, Bottom: 50, Left: 5}, CropPadding)

	// 5px available on top/left, full 20px on bottom/right.
	wantW := (50 + CropPadding) - 0
	wantH := (50 + CropPadding) - 0
	if crop.Bounds().Dx() != wantW || crop.Bounds().Dy() != wantH {
		t.Errorf("expected %dx%d crop, got %dx%d", wantW, wantH, crop.Bounds().Dx(), crop.Bounds().Dy())
	}
}

func TestEqualizeContrast_PreservesDimensions(t *testing.T) {
	img := createTestImage(64, 32)

	out := equalizeContrast(img)

	if out.Bounds() != img.Bounds() {
		t.Errorf("expected bounds %v, got %v", img.Bounds(), out.Bounds())
	}
}
