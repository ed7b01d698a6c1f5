package face

import "math"

// L2Norm returns the Euclidean norm of the vector.
func L2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize returns an L2-normalized copy of the vector.
// Returns nil for an empty vector or one with zero norm.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return nil
	}
	norm := L2Norm(v)
	if norm == 0 || math.IsNaN(norm) {
		return nil
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// IsValidEmbedding reports whether the vector is usable as a face embedding:
// non-empty, free of NaN components and with a non-zero norm.
func IsValidEmbedding(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	var sum float64
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) {
			return false
		}
		sum += f * f
	}
	return sum > 0
}

// EuclideanDistance computes the Euclidean distance between two embeddings.
// Empty or mismatched vectors yield +Inf, which sorts last and never matches
// any finite tolerance.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
