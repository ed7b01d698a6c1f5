package database

import (
	"time"

	"github.com/eventlens/eventlens/internal/face"
)

// Event is a photographed event (wedding, conference, party) whose photos
// are searchable by selfie.
type Event struct {
	UID       string
	Name      string
	Slug      string
	EventDate time.Time
	CreatedAt time.Time
}

// Photo is a single event photo together with its face processing state.
// FacesProcessed distinguishes "no faces found" from "never looked":
// a photo with FacesProcessed=true and FaceCount=0 was analyzed and is done.
type Photo struct {
	UID            string
	EventUID       string
	OriginalName   string
	Path           string // location within the media store
	Caption        string
	FacesProcessed bool
	FaceCount      int
	CreatedAt      time.Time
}

// StoredFace is one detected face persisted for matching.
// The embedding is stored twice: as comma-separated text (the interchange
// format shared with the legacy gallery) and as a pgvector column that backs
// indexed similarity search.
type StoredFace struct {
	ID        int64
	PhotoUID  string
	FaceIndex int
	Encoding  string
	Embedding []float32
	Region    face.Region
	Detector  string // detector backend that found this face
	Model     string // embedding model name
	Dim       int
	CreatedAt time.Time
}

// SearchRecord logs one selfie search for usage statistics.
type SearchRecord struct {
	ID         int64
	EventUID   string
	Tolerance  float64
	FacesFound int
	MatchCount int
	DurationMS int64
	CreatedAt  time.Time
}
