package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/eventlens/eventlens/internal/constants"
	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/face"
	"github.com/eventlens/eventlens/internal/match"
	"github.com/eventlens/eventlens/internal/store"
)

// SearchHandler handles selfie search requests.
type SearchHandler struct {
	faces     database.FaceReader
	searches  database.SearchLogWriter
	media     store.Store
	extractor *face.Extractor
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(faces database.FaceReader, searches database.SearchLogWriter, media store.Store, extractor *face.Extractor) *SearchHandler {
	return &SearchHandler{
		faces:     faces,
		searches:  searches,
		media:     media,
		extractor: extractor,
	}
}

// SearchResponse is the result of one selfie search.
type SearchResponse struct {
	Matches   []match.Result `json:"matches"`
	Count     int            `json:"count"`
	Tolerance float64        `json:"tolerance"`
	Detector  string         `json:"detector"`
}

// parseTolerance reads the optional tolerance form value. Values outside
// (0, SelfieTolerance] fall back to the default rather than widening the search.
func parseTolerance(value string) (float64, error) {
	if value == "" {
		return face.SelfieTolerance, nil
	}
	tolerance, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New("tolerance must be a number")
	}
	if tolerance <= 0 || tolerance > face.SelfieTolerance {
		return 0, errors.New("tolerance must be between 0 and 1.2")
	}
	return tolerance, nil
}

// Search matches an uploaded selfie against stored event photo faces.
// The selfie must contain exactly one face. An optional "event" form value
// restricts the search to one event; "tolerance" tightens the match cutoff.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(constants.MaxSelfieSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, _, err := r.FormFile("selfie")
	if err != nil {
		respondError(w, http.StatusBadRequest, "selfie file is required")
		return
	}
	defer file.Close()

	selfieData, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read selfie")
		return
	}

	tolerance, err := parseTolerance(r.FormValue("tolerance"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	eventUID := r.FormValue("event")

	result, err := h.extractor.Extract(r.Context(), selfieData, face.ExtractOptions{Selfie: true})
	if err != nil {
		if errors.Is(err, face.ErrProviderUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "face service is unavailable, try again later")
			return
		}
		log.Printf("extracting selfie faces: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to analyze selfie")
		return
	}

	switch len(result.Faces) {
	case 0:
		respondError(w, http.StatusBadRequest, "no face detected in the selfie, try a clearer photo")
		return
	case 1:
		// exactly one face, proceed
	default:
		respondError(w, http.StatusBadRequest, "multiple faces detected, the selfie must contain exactly one face")
		return
	}
	query := result.Faces[0].Embedding

	candidates, err := h.faces.SearchCandidates(r.Context(), query, eventUID, 0, tolerance)
	if err != nil {
		log.Printf("searching candidates: %v", err)
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	// Candidates carry the stored media path; swap in public URLs before
	// matching so results are ready for presentation.
	for i := range candidates {
		path := candidates[i].PhotoURL
		candidates[i].PhotoURL = h.media.PhotoURL(path)
		candidates[i].ThumbURL = h.media.ThumbURL(path)
	}

	matches := match.FindMatches(query, candidates, tolerance)
	if len(matches) > constants.DefaultSearchLimit {
		matches = matches[:constants.DefaultSearchLimit]
	}

	h.recordSearch(r, eventUID, tolerance, len(result.Faces), len(matches), start)

	respondJSON(w, http.StatusOK, SearchResponse{
		Matches:   matches,
		Count:     len(matches),
		Tolerance: tolerance,
		Detector:  result.Detector,
	})
}

// recordSearch logs the search for usage statistics. Failures are logged
// and never surfaced to the client.
func (h *SearchHandler) recordSearch(r *http.Request, eventUID string, tolerance float64, facesFound, matchCount int, start time.Time) {
	rec := &database.SearchRecord{
		EventUID:   eventUID,
		Tolerance:  tolerance,
		FacesFound: facesFound,
		MatchCount: matchCount,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := h.searches.RecordSearch(r.Context(), rec); err != nil {
		log.Printf("recording search: %v", err)
	}
}
