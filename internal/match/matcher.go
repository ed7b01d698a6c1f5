// Package match turns raw face comparisons into per-photo search results.
package match

import (
	"sort"

	"github.com/eventlens/eventlens/internal/face"
)

// Candidate is one stored face offered to the matcher. The embedding stays
// in its encoded text form and is decoded lazily, one candidate at a time.
type Candidate struct {
	FaceID    int64
	PhotoUID  string
	EventUID  string
	EventName string
	PhotoURL  string
	ThumbURL  string
	Encoding  string
}

// Result is a matched photo, ready for presentation.
type Result struct {
	PhotoUID   string  `json:"photo_uid"`
	EventUID   string  `json:"event_uid,omitempty"`
	EventName  string  `json:"event_name,omitempty"`
	PhotoURL   string  `json:"photo_url,omitempty"`
	ThumbURL   string  `json:"thumb_url,omitempty"`
	Distance   float64 `json:"distance"`
	Confidence float64 `json:"confidence"`
	Quality    string  `json:"quality"`
}

// FindMatches compares the query embedding against every candidate face and
// returns one result per matching photo, sorted by ascending distance.
//
// Candidates whose encoding is empty or malformed are skipped silently; the
// codec already logs malformed input. A photo with several matching faces is
// reported once, keyed by the first face that matched in candidate order --
// the distance shown is that face's, not necessarily the photo's best.
// No matches yields an empty slice, never an error.
func FindMatches(query []float32, candidates []Candidate, tolerance float64) []Result {
	results := make([]Result, 0)
	seen := make(map[string]struct{})

	for _, c := range candidates {
		if _, dup := seen[c.PhotoUID]; dup {
			continue
		}

		embedding := face.DecodeEmbedding(c.Encoding)
		if len(embedding) == 0 {
			continue
		}

		distance := face.EuclideanDistance(embedding, query)
		if distance > tolerance {
			continue
		}

		seen[c.PhotoUID] = struct{}{}
		results = append(results, Result{
			PhotoUID:   c.PhotoUID,
			EventUID:   c.EventUID,
			EventName:  c.EventName,
			PhotoURL:   c.PhotoURL,
			ThumbURL:   c.ThumbURL,
			Distance:   distance,
			Confidence: face.Confidence(distance),
			Quality:    face.Quality(distance),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	return results
}
