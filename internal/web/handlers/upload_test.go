package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eventlens/eventlens/internal/database/mock"
)

func TestUpload(t *testing.T) {
	events := mock.NewEventStore()
	seedEvent(events, "ev-1", "Summer Wedding", "summer-wedding")
	photos := mock.NewPhotoStore()
	media := newFakeMedia()
	handler := NewUploadHandler(photos, events, media, nil)

	req := multipartRequest(t, "/api/v1/upload", "files", "IMG_0001.JPG", testJPEG(t, 100, 100), map[string]string{"event_uid": "ev-1"})
	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	var result struct {
		Uploaded int      `json:"uploaded"`
		Event    string   `json:"event"`
		Photos   []string `json:"photos"`
	}
	parseJSONResponse(t, recorder, &result)
	if result.Uploaded != 1 {
		t.Fatalf("expected 1 uploaded, got %d", result.Uploaded)
	}
	if len(result.Photos) != 1 {
		t.Fatalf("expected 1 photo UID, got %d", len(result.Photos))
	}

	photoUID := result.Photos[0]
	photo, err := photos.GetPhoto(req.Context(), photoUID)
	if err != nil {
		t.Fatalf("created photo not found: %v", err)
	}
	if photo.EventUID != "ev-1" {
		t.Errorf("expected event ev-1, got %s", photo.EventUID)
	}
	if photo.OriginalName != "IMG_0001.JPG" {
		t.Errorf("expected original name kept, got %s", photo.OriginalName)
	}
	if photo.FacesProcessed {
		t.Error("fresh upload must not be marked processed")
	}
	// Stored under the event with a lowercased extension.
	if photo.Path != "ev-1/"+photoUID+".jpg" {
		t.Errorf("unexpected storage path %s", photo.Path)
	}
	if _, ok := media.files[photo.Path]; !ok {
		t.Errorf("file not saved to media store at %s", photo.Path)
	}
}

func TestUpload_MissingEvent(t *testing.T) {
	handler := NewUploadHandler(mock.NewPhotoStore(), mock.NewEventStore(), newFakeMedia(), nil)

	req := multipartRequest(t, "/api/v1/upload", "files", "a.jpg", testJPEG(t, 10, 10), nil)
	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "event_uid is required")
}

func TestUpload_UnknownEvent(t *testing.T) {
	handler := NewUploadHandler(mock.NewPhotoStore(), mock.NewEventStore(), newFakeMedia(), nil)

	req := multipartRequest(t, "/api/v1/upload", "files", "a.jpg", testJPEG(t, 10, 10), map[string]string{"event_uid": "missing"})
	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "event not found")
}

func TestUpload_NoFiles(t *testing.T) {
	events := mock.NewEventStore()
	seedEvent(events, "ev-1", "Summer Wedding", "summer-wedding")
	handler := NewUploadHandler(mock.NewPhotoStore(), events, newFakeMedia(), nil)

	req := multipartRequest(t, "/api/v1/upload", "", "", nil, map[string]string{"event_uid": "ev-1"})
	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "no files provided")
}

func TestUpload_StoreFailure(t *testing.T) {
	events := mock.NewEventStore()
	seedEvent(events, "ev-1", "Summer Wedding", "summer-wedding")
	photos := mock.NewPhotoStore()
	media := newFakeMedia()
	media.saveError = errors.New("disk full")
	handler := NewUploadHandler(photos, events, media, nil)

	req := multipartRequest(t, "/api/v1/upload", "files", "a.jpg", testJPEG(t, 10, 10), map[string]string{"event_uid": "ev-1"})
	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	if len(photos.CreateCalls) != 0 {
		t.Error("photo record must not be created when storage fails")
	}
}

func TestUpload_RefreshesStats(t *testing.T) {
	events := mock.NewEventStore()
	seedEvent(events, "ev-1", "Summer Wedding", "summer-wedding")
	notified := 0
	handler := NewUploadHandler(mock.NewPhotoStore(), events, newFakeMedia(), func() { notified++ })

	req := multipartRequest(t, "/api/v1/upload", "files", "a.jpg", testJPEG(t, 10, 10), map[string]string{"event_uid": "ev-1"})
	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	if notified != 1 {
		t.Errorf("expected stats refresh after upload, got %d notifications", notified)
	}

	// Failed uploads change nothing, so the cache stays.
	media := newFakeMedia()
	media.saveError = errors.New("disk full")
	notified = 0
	handler = NewUploadHandler(mock.NewPhotoStore(), events, media, func() { notified++ })

	req = multipartRequest(t, "/api/v1/upload", "files", "a.jpg", testJPEG(t, 10, 10), map[string]string{"event_uid": "ev-1"})
	recorder = httptest.NewRecorder()
	handler.Upload(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	if notified != 0 {
		t.Errorf("expected no stats refresh on failure, got %d notifications", notified)
	}
}

func TestStoragePath(t *testing.T) {
	tests := []struct {
		original string
		expected string
	}{
		{"IMG_0001.JPG", "ev-1/ph-1.jpg"},
		{"photo.jpeg", "ev-1/ph-1.jpeg"},
		{"noextension", "ev-1/ph-1.jpg"},
	}
	for _, tc := range tests {
		got := storagePath("ev-1", "ph-1", tc.original)
		if got != tc.expected {
			t.Errorf("storagePath(%q) = %q, want %q", tc.original, got, tc.expected)
		}
	}
	if strings.Contains(storagePath("ev-1", "ph-1", "../../etc/passwd"), "..") {
		t.Error("storage path must not contain traversal segments")
	}
}
