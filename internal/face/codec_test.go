package face

import (
	"math"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []float32{0.123456, -0.654321, 1.0, 0.0, -0.000001, 0.999999}

	encoded := EncodeEmbedding(original)
	decoded := DecodeEmbedding(encoded)

	if len(decoded) != len(original) {
		t.Fatalf("expected %d components, got %d", len(original), len(decoded))
	}
	for i := range original {
		diff := math.Abs(float64(original[i]) - float64(decoded[i]))
		if diff > 1e-6 {
			t.Errorf("component %d: expected %f, got %f (diff %g)", i, original[i], decoded[i], diff)
		}
	}
}

func TestEncodeEmbedding_Empty(t *testing.T) {
	if got := EncodeEmbedding(nil); got != "" {
		t.Errorf("expected empty string for nil embedding, got %q", got)
	}
	if got := EncodeEmbedding([]float32{}); got != "" {
		t.Errorf("expected empty string for empty embedding, got %q", got)
	}
}

func TestDecodeEmbedding(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{"empty string", "", 0},
		{"whitespace only", "   \t ", 0},
		{"single value", "0.5", 1},
		{"multiple values", "0.1,0.2,0.3", 3},
		{"spaces around values", " 0.1 , 0.2 ", 2},
		{"malformed component", "0.1,banana,0.3", 0},
		{"trailing comma", "0.1,0.2,", 0},
		{"not numbers at all", "hello world", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeEmbedding(tt.input)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != tt.wantLen {
				t.Errorf("expected %d components, got %d", tt.wantLen, len(got))
			}
		})
	}
}

func TestDecodeEmbedding_Values(t *testing.T) {
	got := DecodeEmbedding("-0.25,0.5,1")

	want := []float32{-0.25, 0.5, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestEncodeDecodeFullDimension(t *testing.T) {
	original := make([]float32, EmbeddingDim)
	for i := range original {
		original[i] = float32(i)/float32(EmbeddingDim) - 0.5
	}
	original = Normalize(original)

	decoded := DecodeEmbedding(EncodeEmbedding(original))

	if len(decoded) != EmbeddingDim {
		t.Fatalf("expected %d components, got %d", EmbeddingDim, len(decoded))
	}
	if d := EuclideanDistance(original, decoded); d > 1e-6 {
		t.Errorf("round trip drifted by %g", d)
	}
}
