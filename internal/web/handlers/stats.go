package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/eventlens/eventlens/internal/database"
)

const statsCacheTTL = 10 * time.Minute

// statsCache holds cached stats with expiry
type statsCache struct {
	mu        sync.RWMutex
	data      *StatsResponse
	expiresAt time.Time
}

func (c *statsCache) get() (*StatsResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.data, true
}

func (c *statsCache) set(data *StatsResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.expiresAt = time.Now().Add(statsCacheTTL)
}

func (c *statsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
}

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	events   database.EventReader
	photos   database.PhotoReader
	faces    database.FaceReader
	searches database.SearchLogWriter
	cache    statsCache
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(events database.EventReader, photos database.PhotoReader, faces database.FaceReader, searches database.SearchLogWriter) *StatsHandler {
	return &StatsHandler{
		events:   events,
		photos:   photos,
		faces:    faces,
		searches: searches,
	}
}

// InvalidateCache clears the cached stats so the next request fetches fresh data
func (h *StatsHandler) InvalidateCache() {
	h.cache.invalidate()
}

// StatsResponse represents the statistics response
type StatsResponse struct {
	TotalEvents     int  `json:"total_events"`
	TotalPhotos     int  `json:"total_photos"`
	PhotosProcessed int  `json:"photos_processed"`
	PhotosWithFaces int  `json:"photos_with_faces"`
	TotalFaces      int  `json:"total_faces"`
	TotalSearches   int  `json:"total_searches"`
	IndexEnabled    bool `json:"index_enabled"`
	IndexSize       int  `json:"index_size"`
}

// collectStats gathers counts from the database. Individual failures leave
// the corresponding counter at zero instead of failing the whole request.
func (h *StatsHandler) collectStats(ctx context.Context) *StatsResponse {
	stats := &StatsResponse{}

	if events, err := h.events.ListEvents(ctx); err == nil {
		stats.TotalEvents = len(events)
	}
	if count, err := h.photos.CountPhotos(ctx); err == nil {
		stats.TotalPhotos = count
	}
	if count, err := h.photos.CountProcessed(ctx); err == nil {
		stats.PhotosProcessed = count
	}
	if count, err := h.faces.CountPhotos(ctx); err == nil {
		stats.PhotosWithFaces = count
	}
	if count, err := h.faces.Count(ctx); err == nil {
		stats.TotalFaces = count
	}
	if count, err := h.searches.CountSearches(ctx); err == nil {
		stats.TotalSearches = count
	}

	if rebuilder := database.GetFaceHNSWRebuilder(); rebuilder != nil {
		stats.IndexEnabled = rebuilder.IsHNSWEnabled()
		stats.IndexSize = rebuilder.HNSWCount()
	}

	return stats
}

// Get returns statistics about events, photos, faces and searches
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.get(); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	stats := h.collectStats(r.Context())

	h.cache.set(stats)
	respondJSON(w, http.StatusOK, stats)
}
