package database

import (
	"context"
	"fmt"
)

// HNSWRebuilder is an interface for repositories that support HNSW index rebuilding
type HNSWRebuilder interface {
	// RebuildHNSW rebuilds the in-memory HNSW index
	RebuildHNSW(ctx context.Context) error
	// HNSWCount returns the number of items in the HNSW index
	HNSWCount() int
	// IsHNSWEnabled returns whether HNSW is enabled
	IsHNSWEnabled() bool
	// SaveHNSWIndex saves the current index to disk (if path configured)
	SaveHNSWIndex() error
}

var (
	postgresFaceReader      func() FaceReader
	postgresFaceWriter      func() FaceWriter
	postgresPhotoWriter     func() PhotoWriter
	postgresEventWriter     func() EventWriter
	postgresSearchLogWriter func() SearchLogWriter
	postgresFaceHNSW        HNSWRebuilder
	postgresInitialized     bool
)

// RegisterPostgresBackend registers PostgreSQL repository constructors.
// This is called by the postgres package to avoid import cycles.
func RegisterPostgresBackend(
	faceReader func() FaceReader,
	faceWriter func() FaceWriter,
	photoWriter func() PhotoWriter,
	eventWriter func() EventWriter,
	searchLogWriter func() SearchLogWriter,
) {
	postgresFaceReader = faceReader
	postgresFaceWriter = faceWriter
	postgresPhotoWriter = photoWriter
	postgresEventWriter = eventWriter
	postgresSearchLogWriter = searchLogWriter
	postgresInitialized = true
}

// RegisterFaceHNSWRebuilder registers the HNSW rebuilder for the face repository.
// This allows rebuilding the in-memory HNSW index without knowing the concrete type.
func RegisterFaceHNSWRebuilder(rebuilder HNSWRebuilder) {
	postgresFaceHNSW = rebuilder
}

// GetFaceHNSWRebuilder returns the registered face HNSW rebuilder, or nil if not registered.
func GetFaceHNSWRebuilder() HNSWRebuilder {
	return postgresFaceHNSW
}

// IsInitialized returns whether the PostgreSQL backend has been initialized.
func IsInitialized() bool {
	return postgresInitialized
}

// GetFaceReader returns a FaceReader from the PostgreSQL backend
func GetFaceReader(ctx context.Context) (FaceReader, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresFaceReader == nil {
		return nil, fmt.Errorf("PostgreSQL face reader not registered")
	}
	return postgresFaceReader(), nil
}

// GetFaceWriter returns a FaceWriter from the PostgreSQL backend
func GetFaceWriter(ctx context.Context) (FaceWriter, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresFaceWriter == nil {
		return nil, fmt.Errorf("PostgreSQL face writer not registered")
	}
	return postgresFaceWriter(), nil
}

// GetPhotoWriter returns a PhotoWriter from the PostgreSQL backend
func GetPhotoWriter(ctx context.Context) (PhotoWriter, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresPhotoWriter == nil {
		return nil, fmt.Errorf("PostgreSQL photo writer not registered")
	}
	return postgresPhotoWriter(), nil
}

// GetPhotoReader returns a PhotoReader from the PostgreSQL backend
func GetPhotoReader(ctx context.Context) (PhotoReader, error) {
	return GetPhotoWriter(ctx)
}

// GetEventWriter returns an EventWriter from the PostgreSQL backend
func GetEventWriter(ctx context.Context) (EventWriter, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresEventWriter == nil {
		return nil, fmt.Errorf("PostgreSQL event writer not registered")
	}
	return postgresEventWriter(), nil
}

// GetEventReader returns an EventReader from the PostgreSQL backend
func GetEventReader(ctx context.Context) (EventReader, error) {
	return GetEventWriter(ctx)
}

// GetSearchLogWriter returns a SearchLogWriter from the PostgreSQL backend
func GetSearchLogWriter(ctx context.Context) (SearchLogWriter, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresSearchLogWriter == nil {
		return nil, fmt.Errorf("PostgreSQL search log writer not registered")
	}
	return postgresSearchLogWriter(), nil
}
