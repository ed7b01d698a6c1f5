package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/database/mock"
)

func statsFixture() (*StatsHandler, *mock.PhotoStore) {
	events := mock.NewEventStore()
	seedEvent(events, "ev-1", "Summer Wedding", "summer-wedding")

	photos := mock.NewPhotoStore()
	photos.AddPhoto(database.Photo{UID: "ph-1", EventUID: "ev-1", Path: "ev-1/ph-1.jpg"})
	photos.AddPhoto(database.Photo{UID: "ph-2", EventUID: "ev-1", Path: "ev-1/ph-2.jpg"})
	photos.MarkProcessed("ph-1", 2)

	faces := mock.NewFaceStore()
	faces.AddFace(database.StoredFace{PhotoUID: "ph-1", FaceIndex: 0})
	faces.AddFace(database.StoredFace{PhotoUID: "ph-1", FaceIndex: 1})

	searches := &mock.SearchLog{}
	searches.RecordSearch(context.Background(), &database.SearchRecord{MatchCount: 1})

	return NewStatsHandler(events, photos, faces, searches), photos
}

func TestStatsGet(t *testing.T) {
	handler, _ := statsFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	recorder := httptest.NewRecorder()
	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	var result StatsResponse
	parseJSONResponse(t, recorder, &result)
	if result.TotalEvents != 1 {
		t.Errorf("expected 1 event, got %d", result.TotalEvents)
	}
	if result.TotalPhotos != 2 {
		t.Errorf("expected 2 photos, got %d", result.TotalPhotos)
	}
	if result.PhotosProcessed != 1 {
		t.Errorf("expected 1 processed photo, got %d", result.PhotosProcessed)
	}
	if result.TotalFaces != 2 {
		t.Errorf("expected 2 faces, got %d", result.TotalFaces)
	}
	if result.PhotosWithFaces != 1 {
		t.Errorf("expected 1 photo with faces, got %d", result.PhotosWithFaces)
	}
	if result.TotalSearches != 1 {
		t.Errorf("expected 1 search, got %d", result.TotalSearches)
	}
}

func TestStatsGet_Cached(t *testing.T) {
	handler, photos := statsFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	recorder := httptest.NewRecorder()
	handler.Get(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	// Changes after the first request are invisible until the cache expires.
	photos.AddPhoto(database.Photo{UID: "ph-3", EventUID: "ev-1", Path: "ev-1/ph-3.jpg"})

	recorder = httptest.NewRecorder()
	handler.Get(recorder, req)
	var result StatsResponse
	parseJSONResponse(t, recorder, &result)
	if result.TotalPhotos != 2 {
		t.Errorf("expected cached count 2, got %d", result.TotalPhotos)
	}

	handler.InvalidateCache()

	recorder = httptest.NewRecorder()
	handler.Get(recorder, req)
	parseJSONResponse(t, recorder, &result)
	if result.TotalPhotos != 3 {
		t.Errorf("expected fresh count 3 after invalidation, got %d", result.TotalPhotos)
	}
}
