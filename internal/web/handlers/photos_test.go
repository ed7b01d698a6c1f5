package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/database/mock"
)

func TestPhotosListByEvent(t *testing.T) {
	events := mock.NewEventStore()
	seedEvent(events, "ev-1", "Summer Wedding", "summer-wedding")

	photos := mock.NewPhotoStore()
	photos.AddPhoto(database.Photo{
		UID:          "ph-1",
		EventUID:     "ev-1",
		OriginalName: "IMG_0001.jpg",
		Path:         "ev-1/ph-1.jpg",
		Caption:      "Cutting the cake",
	})
	photos.AddPhoto(database.Photo{UID: "ph-2", EventUID: "ev-1", Path: "ev-1/ph-2.jpg"})
	photos.AddPhoto(database.Photo{UID: "ph-3", EventUID: "ev-other", Path: "ev-other/ph-3.jpg"})

	handler := NewPhotosHandler(photos, events, newFakeMedia())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/summer-wedding/photos", nil)
	req = requestWithChiParams(req, map[string]string{"uid": "summer-wedding"})
	recorder := httptest.NewRecorder()
	handler.ListByEvent(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	var result struct {
		Event  EventResponse   `json:"event"`
		Photos []PhotoResponse `json:"photos"`
		Count  int             `json:"count"`
	}
	parseJSONResponse(t, recorder, &result)
	if result.Count != 2 {
		t.Fatalf("expected 2 photos, got %d", result.Count)
	}
	if result.Event.UID != "ev-1" {
		t.Errorf("expected event ev-1, got %s", result.Event.UID)
	}
	if result.Photos[0].PhotoURL != "/media/ev-1/ph-1.jpg" {
		t.Errorf("unexpected photo URL %s", result.Photos[0].PhotoURL)
	}
	if result.Photos[0].ThumbURL != "/media/thumbs/ev-1/ph-1.jpg" {
		t.Errorf("unexpected thumb URL %s", result.Photos[0].ThumbURL)
	}
	if result.Photos[0].Caption != "Cutting the cake" {
		t.Errorf("unexpected caption %s", result.Photos[0].Caption)
	}
}

func TestPhotosListByEvent_EventNotFound(t *testing.T) {
	handler := NewPhotosHandler(mock.NewPhotoStore(), mock.NewEventStore(), newFakeMedia())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/missing/photos", nil)
	req = requestWithChiParams(req, map[string]string{"uid": "missing"})
	recorder := httptest.NewRecorder()
	handler.ListByEvent(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
}

func TestPhotosGet(t *testing.T) {
	photos := mock.NewPhotoStore()
	photos.AddPhoto(database.Photo{UID: "ph-1", EventUID: "ev-1", Path: "ev-1/ph-1.jpg"})
	photos.MarkProcessed("ph-1", 3)
	handler := NewPhotosHandler(photos, mock.NewEventStore(), newFakeMedia())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/ph-1", nil)
	req = requestWithChiParams(req, map[string]string{"uid": "ph-1"})
	recorder := httptest.NewRecorder()
	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	var result PhotoResponse
	parseJSONResponse(t, recorder, &result)
	if !result.FacesProcessed || result.FaceCount != 3 {
		t.Errorf("expected processed photo with 3 faces, got %+v", result)
	}
}

func TestPhotosGet_NotFound(t *testing.T) {
	handler := NewPhotosHandler(mock.NewPhotoStore(), mock.NewEventStore(), newFakeMedia())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/missing", nil)
	req = requestWithChiParams(req, map[string]string{"uid": "missing"})
	recorder := httptest.NewRecorder()
	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "photo not found")
}
