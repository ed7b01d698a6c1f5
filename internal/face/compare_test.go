package face

import (
	"math"
	"testing"
)

func TestCompareFaces(t *testing.T) {
	query := []float32{1, 0, 0}
	known := [][]float32{
		{1, 0, 0},       // identical, distance 0
		{0.9, 0.1, 0},   // close
		{0, 1, 0},       // far, distance sqrt(2)
		{},              // empty, +Inf sentinel
		{1, 0, 0, 0, 0}, // wrong dimension, +Inf sentinel
	}

	matches, distances := CompareFaces(known, query, 0.6)

	if len(matches) != len(known) || len(distances) != len(known) {
		t.Fatalf("expected %d results, got %d matches / %d distances", len(known), len(matches), len(distances))
	}

	if !matches[0] || distances[0] != 0 {
		t.Errorf("identical face should match with distance 0, got match=%v dist=%f", matches[0], distances[0])
	}
	if !matches[1] {
		t.Errorf("close face should match, distance was %f", distances[1])
	}
	if matches[2] {
		t.Errorf("far face should not match at tolerance 0.6, distance was %f", distances[2])
	}
	if matches[3] || !math.IsInf(distances[3], 1) {
		t.Errorf("empty face should get +Inf and never match, got match=%v dist=%f", matches[3], distances[3])
	}
	if matches[4] || !math.IsInf(distances[4], 1) {
		t.Errorf("mismatched dimension should get +Inf and never match, got match=%v dist=%f", matches[4], distances[4])
	}
}

func TestCompareFaces_Empty(t *testing.T) {
	matches, distances := CompareFaces(nil, []float32{1, 0}, 0.6)

	if len(matches) != 0 || len(distances) != 0 {
		t.Errorf("expected empty result slices, got %d / %d", len(matches), len(distances))
	}
}

func TestCompareFaces_BoundaryDistance(t *testing.T) {
	// Distance exactly at tolerance counts as a match.
	query := []float32{0, 0}
	known := [][]float32{{0.6, 0}}

	matches, distances := CompareFaces(known, query, 0.6)

	if math.Abs(distances[0]-0.6) > 1e-9 {
		t.Fatalf("expected distance 0.6, got %f", distances[0])
	}
	if !matches[0] {
		t.Error("distance equal to tolerance should match")
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 100},
		{0.25, 75},
		{0.5, 50},
		{1, 0},
		{1.2, 0},   // clamped at 0
		{-0.5, 100}, // clamped at 100
	}

	for _, tt := range tests {
		if got := Confidence(tt.distance); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Confidence(%f) = %f, want %f", tt.distance, got, tt.want)
		}
	}
}

func TestQuality(t *testing.T) {
	tests := []struct {
		distance float64
		want     string
	}{
		{0, "excellent"},
		{0.59, "excellent"},
		{0.60, "good"},
		{0.84, "good"},
		{0.85, "similar"},
		{1.2, "similar"},
	}

	for _, tt := range tests {
		if got := Quality(tt.distance); got != tt.want {
			t.Errorf("Quality(%f) = %q, want %q", tt.distance, got, tt.want)
		}
	}
}
