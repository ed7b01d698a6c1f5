// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Upload limits
const (
	// MaxUploadSize is the maximum size of a photo upload request (whole multipart form)
	MaxUploadSize = 200 << 20

	// MaxSelfieSize is the maximum size of a selfie search request
	MaxSelfieSize = 15 << 20
)

// Search constants
const (
	// DefaultSearchLimit is the default maximum number of matched photos returned
	// for a single selfie search
	DefaultSearchLimit = 100
)
