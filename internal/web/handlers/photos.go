package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/store"
)

// PhotosHandler handles photo endpoints.
type PhotosHandler struct {
	photos database.PhotoReader
	events database.EventReader
	media  store.Store
}

// NewPhotosHandler creates a new photos handler.
func NewPhotosHandler(photos database.PhotoReader, events database.EventReader, media store.Store) *PhotosHandler {
	return &PhotosHandler{photos: photos, events: events, media: media}
}

// PhotoResponse is the JSON representation of a photo.
type PhotoResponse struct {
	UID            string `json:"uid"`
	EventUID       string `json:"event_uid"`
	OriginalName   string `json:"original_name"`
	Caption        string `json:"caption,omitempty"`
	PhotoURL       string `json:"photo_url"`
	ThumbURL       string `json:"thumb_url"`
	FacesProcessed bool   `json:"faces_processed"`
	FaceCount      int    `json:"face_count"`
}

func (h *PhotosHandler) toPhotoResponse(p *database.Photo) PhotoResponse {
	return PhotoResponse{
		UID:            p.UID,
		EventUID:       p.EventUID,
		OriginalName:   p.OriginalName,
		Caption:        p.Caption,
		PhotoURL:       h.media.PhotoURL(p.Path),
		ThumbURL:       h.media.ThumbURL(p.Path),
		FacesProcessed: p.FacesProcessed,
		FaceCount:      p.FaceCount,
	}
}

// ListByEvent returns all photos of an event. The event may be referenced
// by UID or slug.
func (h *PhotosHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "uid")

	event, err := h.events.GetEvent(r.Context(), ref)
	if err != nil {
		event, err = h.events.GetEventBySlug(r.Context(), ref)
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	photos, err := h.photos.ListPhotosByEvent(r.Context(), event.UID)
	if err != nil {
		log.Printf("listing photos for event %s: %v", sanitizeForLog(event.UID), err)
		respondError(w, http.StatusInternalServerError, "failed to list photos")
		return
	}

	resp := make([]PhotoResponse, len(photos))
	for i := range photos {
		resp[i] = h.toPhotoResponse(&photos[i])
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"event":  toEventResponse(event),
		"photos": resp,
		"count":  len(resp),
	})
}

// Get returns a single photo by UID.
func (h *PhotosHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	photo, err := h.photos.GetPhoto(r.Context(), uid)
	if err != nil {
		respondError(w, http.StatusNotFound, "photo not found")
		return
	}

	respondJSON(w, http.StatusOK, h.toPhotoResponse(photo))
}
