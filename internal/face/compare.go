package face

// CompareFaces compares each known embedding against the query and returns
// index-aligned slices: whether each known face matches within the tolerance,
// and its Euclidean distance. Empty known embeddings get +Inf and never match.
func CompareFaces(known [][]float32, query []float32, tolerance float64) ([]bool, []float64) {
	matches := make([]bool, len(known))
	distances := make([]float64, len(known))
	for i, k := range known {
		d := EuclideanDistance(k, query)
		distances[i] = d
		matches[i] = d <= tolerance
	}
	return matches, distances
}

// Confidence maps a distance to a 0-100 score, clamped at both ends.
func Confidence(distance float64) float64 {
	c := (1 - distance) * 100
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// Quality labels a matching distance for display. Callers only pass
// distances within SelfieTolerance, so every input lands in a band.
func Quality(distance float64) string {
	switch {
	case distance < ExcellentDistance:
		return "excellent"
	case distance < GoodDistance:
		return "good"
	default:
		return "similar"
	}
}
