package match

import (
	"math"
	"testing"

	"github.com/eventlens/eventlens/internal/face"
)

func encode(v []float32) string {
	return face.EncodeEmbedding(v)
}

func TestFindMatches_Basic(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{PhotoUID: "far", Encoding: encode([]float32{0, 1, 0})},             // sqrt(2), no match
		{PhotoUID: "exact", Encoding: encode([]float32{1, 0, 0})},           // 0
		{PhotoUID: "close", Encoding: encode([]float32{0.9, 0.1, 0})},       // ~0.14
	}

	results := FindMatches(query, candidates, 0.6)

	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	// Sorted ascending by distance.
	if results[0].PhotoUID != "exact" || results[1].PhotoUID != "close" {
		t.Errorf("unexpected order: %s, %s", results[0].PhotoUID, results[1].PhotoUID)
	}
	if results[0].Distance != 0 {
		t.Errorf("expected zero distance for exact match, got %f", results[0].Distance)
	}
	if results[0].Confidence != 100 {
		t.Errorf("expected confidence 100, got %f", results[0].Confidence)
	}
	if results[0].Quality != "excellent" {
		t.Errorf("expected quality 'excellent', got '%s'", results[0].Quality)
	}
}

func TestFindMatches_NoMatches(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{PhotoUID: "p1", Encoding: encode([]float32{0, 1, 0})},
	}

	results := FindMatches(query, candidates, 0.6)

	if results == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %d", len(results))
	}
}

func TestFindMatches_PhotoDedup(t *testing.T) {
	query := []float32{1, 0, 0}
	// Two faces on the same photo: the first matching face wins, even though
	// the second is closer.
	candidates := []Candidate{
		{FaceID: 1, PhotoUID: "group-shot", Encoding: encode([]float32{0.8, 0.2, 0})},
		{FaceID: 2, PhotoUID: "group-shot", Encoding: encode([]float32{1, 0, 0})},
	}

	results := FindMatches(query, candidates, 0.6)

	if len(results) != 1 {
		t.Fatalf("expected 1 result for deduplicated photo, got %d", len(results))
	}
	if results[0].Distance == 0 {
		t.Error("expected the first face's distance to be kept, not the closer second face")
	}
}

func TestFindMatches_SkipsBadEncodings(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{PhotoUID: "empty", Encoding: ""},
		{PhotoUID: "garbage", Encoding: "not,numbers,at,all"},
		{PhotoUID: "good", Encoding: encode([]float32{1, 0, 0})},
	}

	results := FindMatches(query, candidates, 0.6)

	if len(results) != 1 || results[0].PhotoUID != "good" {
		t.Fatalf("expected only the decodable candidate to match, got %v", results)
	}
}

func TestFindMatches_BadEncodingDoesNotBlockPhoto(t *testing.T) {
	query := []float32{1, 0, 0}
	// A photo's first face has a corrupt encoding; a later face on the same
	// photo should still be able to match.
	candidates := []Candidate{
		{FaceID: 1, PhotoUID: "p1", Encoding: "corrupt"},
		{FaceID: 2, PhotoUID: "p1", Encoding: encode([]float32{1, 0, 0})},
	}

	results := FindMatches(query, candidates, 0.6)

	if len(results) != 1 {
		t.Fatalf("expected the second face to match, got %d results", len(results))
	}
}

func TestFindMatches_SelfieTolerance(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{PhotoUID: "p1", Encoding: encode([]float32{0, 1, 0})}, // sqrt(2) ~ 1.414
		{PhotoUID: "p2", Encoding: encode([]float32{0.3, 0.7, 0})}, // ~0.99
	}

	strict := FindMatches(query, candidates, face.DefaultTolerance)
	relaxed := FindMatches(query, candidates, face.SelfieTolerance)

	if len(strict) != 0 {
		t.Errorf("expected no matches at strict tolerance, got %d", len(strict))
	}
	if len(relaxed) != 1 || relaxed[0].PhotoUID != "p2" {
		t.Errorf("expected p2 to match at selfie tolerance, got %v", relaxed)
	}
	if relaxed[0].Quality != "similar" {
		t.Errorf("expected quality 'similar' for distant match, got '%s'", relaxed[0].Quality)
	}
}

func TestFindMatches_ConfidenceClamped(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{PhotoUID: "p1", Encoding: encode([]float32{0, 1, 0})},
	}

	results := FindMatches(query, candidates, 2.0)

	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Confidence != 0 {
		t.Errorf("distance above 1 should clamp confidence to 0, got %f", results[0].Confidence)
	}
	if math.IsNaN(results[0].Confidence) {
		t.Error("confidence must never be NaN")
	}
}

func TestFindMatches_EmptyCandidates(t *testing.T) {
	results := FindMatches([]float32{1, 0, 0}, nil, 0.6)

	if results == nil || len(results) != 0 {
		t.Errorf("expected empty slice for no candidates, got %v", results)
	}
}
