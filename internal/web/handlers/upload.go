package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/eventlens/eventlens/internal/constants"
	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/store"
)

// UploadHandler handles event photo uploads.
type UploadHandler struct {
	photos database.PhotoWriter
	events database.EventReader
	media  store.Store

	// statsChanged is notified after a successful upload so cached
	// statistics get refreshed. Optional.
	statsChanged func()
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(photos database.PhotoWriter, events database.EventReader, media store.Store, statsChanged func()) *UploadHandler {
	return &UploadHandler{photos: photos, events: events, media: media, statsChanged: statsChanged}
}

// storagePath builds the media store path for an uploaded photo. The original
// name only contributes its extension; the stored name is the photo UID.
func storagePath(eventUID, photoUID, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return path.Join(eventUID, photoUID+ext)
}

// saveUploadedPhoto stores one multipart file and creates its photo record.
func (h *UploadHandler) saveUploadedPhoto(r *http.Request, eventUID string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file %s", fileHeader.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s", fileHeader.Filename)
	}

	photoUID := uuid.NewString()
	originalName := filepath.Base(fileHeader.Filename)
	mediaPath := storagePath(eventUID, photoUID, originalName)

	if err := h.media.Save(r.Context(), mediaPath, data); err != nil {
		return "", fmt.Errorf("failed to store file %s: %w", fileHeader.Filename, err)
	}

	photo := &database.Photo{
		UID:          photoUID,
		EventUID:     eventUID,
		OriginalName: originalName,
		Path:         mediaPath,
	}
	if err := h.photos.CreatePhoto(r.Context(), photo); err != nil {
		return "", fmt.Errorf("failed to register file %s: %w", fileHeader.Filename, err)
	}
	return photoUID, nil
}

// Upload handles multipart photo uploads for an event. Face processing
// happens later, in the background processing run.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	eventUID := r.FormValue("event_uid")
	if eventUID == "" {
		respondError(w, http.StatusBadRequest, "event_uid is required")
		return
	}
	if _, err := h.events.GetEvent(r.Context(), eventUID); err != nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	uploaded := make([]string, 0, len(files))
	for _, fileHeader := range files {
		photoUID, err := h.saveUploadedPhoto(r, eventUID, fileHeader)
		if err != nil {
			log.Printf("upload to event %s: %v", sanitizeForLog(eventUID), err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		uploaded = append(uploaded, photoUID)
	}

	if h.statsChanged != nil {
		h.statsChanged()
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"uploaded": len(uploaded),
		"event":    eventUID,
		"photos":   uploaded,
	})
}
