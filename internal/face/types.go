// Package face implements face detection, embedding extraction and
// embedding comparison for event photo search.
package face

// EmbeddingDim is the dimensionality of ArcFace embeddings.
const EmbeddingDim = 512

// MaxImageDim is the maximum dimension (width or height) an image is
// scaled down to before detection. Images below this size are left alone.
const MaxImageDim = 1024

// CropPadding is the number of pixels added around a detected face box
// before the crop is sent to the embedding model. Clamped at image edges.
const CropPadding = 20

// Distance thresholds for match quality bands.
const (
	ExcellentDistance = 0.60
	GoodDistance      = 0.85

	// DefaultTolerance is the strict tolerance used for face-to-face comparison.
	DefaultTolerance = 0.6

	// SelfieTolerance is the relaxed tolerance used when matching a selfie
	// against event photos, where pose and lighting differ from the originals.
	SelfieTolerance = 1.2
)

// Region is a detected face bounding box in pixel coordinates of the
// source image, without crop padding.
type Region struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Width returns the region width in pixels.
func (r Region) Width() int {
	return r.Right - r.Left
}

// Height returns the region height in pixels.
func (r Region) Height() int {
	return r.Bottom - r.Top
}

// Face couples an L2-normalized embedding with the region it was extracted from.
type Face struct {
	Embedding []float32
	Region    Region
}
