package face

import (
	"log"
	"strconv"
	"strings"
)

// EncodeEmbedding serializes an embedding as comma-separated decimal text.
// This is the stable interchange format shared with the legacy gallery;
// values round-trip through DecodeEmbedding without visible precision loss.
func EncodeEmbedding(v []float32) string {
	if len(v) == 0 {
		return ""
	}
	var b strings.Builder
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 32))
	}
	return b.String()
}

// DecodeEmbedding parses comma-separated decimal text into an embedding.
// Empty or whitespace-only input yields an empty slice. Malformed input is
// logged and also yields an empty slice; a stored encoding must never take
// down a batch comparison.
func DecodeEmbedding(s string) []float32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float32{}
	}
	parts := strings.Split(s, ",")
	out := make([]float32, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			log.Printf("malformed face encoding component %q: %v", p, err)
			return []float32{}
		}
		out = append(out, float32(f))
	}
	return out
}
