package database

import (
	"context"

	"github.com/eventlens/eventlens/internal/match"
)

// FaceReader provides read-only access to stored faces.
type FaceReader interface {
	// GetFaces retrieves all faces for a photo
	GetFaces(ctx context.Context, photoUID string) ([]StoredFace, error)
	// HasFaces checks if faces have been computed for a photo
	HasFaces(ctx context.Context, photoUID string) (bool, error)
	// IsFacesProcessed checks if face detection has been run for a photo
	// (regardless of whether faces were found)
	IsFacesProcessed(ctx context.Context, photoUID string) (bool, error)
	// Count returns the total number of faces stored
	Count(ctx context.Context) (int, error)
	// CountPhotos returns the number of distinct photos with faces
	CountPhotos(ctx context.Context) (int, error)
	// SearchCandidates returns matcher candidates joined with their photo and
	// event data, pre-filtered by distance to the query embedding, nearest
	// first. Backed by the in-memory HNSW index when enabled, otherwise by a
	// pgvector scan. An empty eventUID means all events; limit 0 applies
	// DefaultCandidateLimit.
	SearchCandidates(ctx context.Context, embedding []float32, eventUID string, limit int, maxDistance float64) ([]match.Candidate, error)
	// FindSimilarWithDistance finds similar faces by Euclidean distance and
	// returns them with their distances
	FindSimilarWithDistance(ctx context.Context, embedding []float32, limit int, maxDistance float64) ([]StoredFace, []float64, error)
}

// FaceWriter provides write access to face data
type FaceWriter interface {
	FaceReader

	// SaveFaces stores multiple faces for a photo (replaces existing faces for
	// that photo) and marks the photo processed with the face count
	SaveFaces(ctx context.Context, photoUID string, faces []StoredFace) error

	// MarkFacesProcessed records the processing state on the photo row
	MarkFacesProcessed(ctx context.Context, photoUID string, faceCount int) error

	// DeleteFacesByPhoto removes all faces for a photo and clears its
	// processed flag. Returns the deleted face IDs for HNSW cleanup.
	DeleteFacesByPhoto(ctx context.Context, photoUID string) ([]int64, error)
}

// PhotoReader provides read-only access to photos.
type PhotoReader interface {
	GetPhoto(ctx context.Context, uid string) (*Photo, error)
	ListPhotosByEvent(ctx context.Context, eventUID string) ([]Photo, error)
	// ListUnprocessed returns photos whose faces have not been processed yet.
	// An empty eventUID means all events; limit 0 means no limit.
	ListUnprocessed(ctx context.Context, eventUID string, limit int) ([]Photo, error)
	CountPhotos(ctx context.Context) (int, error)
	CountProcessed(ctx context.Context) (int, error)
}

// PhotoWriter provides write access to photos.
type PhotoWriter interface {
	PhotoReader

	CreatePhoto(ctx context.Context, photo *Photo) error
	UpdateCaption(ctx context.Context, uid, caption string) error
}

// EventReader provides read-only access to events.
type EventReader interface {
	GetEvent(ctx context.Context, uid string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
}

// EventWriter provides write access to events.
type EventWriter interface {
	EventReader

	CreateEvent(ctx context.Context, event *Event) error
}

// SearchLogWriter records selfie searches.
type SearchLogWriter interface {
	RecordSearch(ctx context.Context, rec *SearchRecord) error
	CountSearches(ctx context.Context) (int, error)
}
