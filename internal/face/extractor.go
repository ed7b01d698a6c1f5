package face

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/eventlens/eventlens/internal/config"
)

// ExtractOptions control preprocessing for a single extraction.
type ExtractOptions struct {
	// Selfie enables contrast equalization before detection. Front-camera
	// shots are often backlit or washed out, which starves the detectors.
	Selfie bool
}

// Result is the outcome of one extraction.
type Result struct {
	Faces    []Face
	Detector string // backend that found the faces, empty when none did
}

// Extractor turns raw image bytes into face embeddings.
type Extractor struct {
	detectors []Detector
	provider  Provider
}

// NewExtractor creates an extractor with an explicit detector chain and provider.
func NewExtractor(detectors []Detector, provider Provider) *Extractor {
	return &Extractor{detectors: detectors, provider: provider}
}

// NewExtractorFromConfig wires the extractor from configuration, sharing the
// lazily initialized process-wide provider.
func NewExtractorFromConfig(cfg *config.FaceConfig) *Extractor {
	return NewExtractor(DefaultDetectors(cfg), DefaultProvider(cfg))
}

// Extract decodes the image, runs the detector chain and embeds every found
// face. Corrupt images and images without faces yield an empty result, not an
// error; only a provider outage fails the call. Individual faces whose
// embedding comes back invalid (NaN or zero norm) are skipped.
func (e *Extractor) Extract(ctx context.Context, imageData []byte, opts ExtractOptions) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		log.Printf("skipping undecodable image: %v", err)
		return &Result{}, nil
	}

	working, scale := downscale(img, MaxImageDim)
	if opts.Selfie {
		working = equalizeContrast(working)
	}

	workBytes, err := encodeJPEG(working)
	if err != nil {
		return nil, fmt.Errorf("encoding working image: %w", err)
	}

	regions, detector, err := DetectWithFallback(ctx, e.detectors, workBytes)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return &Result{}, nil
	}

	result := &Result{Detector: detector}
	for _, region := range regions {
		emb, err := e.embedRegion(ctx, working, region)
		if err != nil {
			if errors.Is(err, ErrProviderUnavailable) {
				return nil, err
			}
			log.Printf("skipping face at %+v: %v", region, err)
			continue
		}
		if emb == nil {
			continue
		}
		result.Faces = append(result.Faces, Face{
			Embedding: emb,
			Region:    scaleRegion(region, scale, img.Bounds()),
		})
	}
	return result, nil
}

// embedRegion crops a detected region with padding, embeds it and normalizes
// the result. Returns (nil, nil) for embeddings that fail validation.
func (e *Extractor) embedRegion(ctx context.Context, working *image.RGBA, region Region) ([]float32, error) {
	crop := cropWithPadding(working, region, CropPadding)
	cropBytes, err := encodeJPEG(crop)
	if err != nil {
		return nil, fmt.Errorf("encoding face crop: %w", err)
	}

	emb, err := e.provider.EmbedFace(ctx, cropBytes)
	if err != nil {
		return nil, err
	}

	emb = Normalize(emb)
	if !IsValidEmbedding(emb) {
		log.Printf("discarding invalid embedding for face at %+v", region)
		return nil, nil
	}
	return emb, nil
}

// downscale fits the image within maxDim on its longest edge, preserving
// aspect ratio. Small images are copied without scaling. Returns the working
// image and the factor that maps working coordinates back to source pixels.
func downscale(img image.Image, maxDim int) (*image.RGBA, float64) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	longest := max(width, height)
	if longest <= maxDim {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst, 1
	}

	scale := float64(longest) / float64(maxDim)
	newWidth := int(float64(width) / scale)
	newHeight := int(float64(height) / scale)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, scale
}

// scaleRegion maps a working-image region back to source pixel coordinates,
// clamped to the source bounds.
func scaleRegion(r Region, scale float64, bounds image.Rectangle) Region {
	out := Region{
		Top:    int(float64(r.Top) * scale),
		Right:  int(float64(r.Right) * scale),
		Bottom: int(float64(r.Bottom) * scale),
		Left:   int(float64(r.Left) * scale),
	}
	out.Top = clamp(out.Top, 0, bounds.Dy())
	out.Bottom = clamp(out.Bottom, 0, bounds.Dy())
	out.Left = clamp(out.Left, 0, bounds.Dx())
	out.Right = clamp(out.Right, 0, bounds.Dx())
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cropWithPadding copies the region plus padding out of the working image.
// The padding is clamped at the image edges, so faces near a border get a
// smaller margin instead of an error.
func cropWithPadding(img *image.RGBA, r Region, padding int) *image.RGBA {
	bounds := img.Bounds()
	rect := image.Rect(
		clamp(r.Left-padding, 0, bounds.Dx()),
		clamp(r.Top-padding, 0, bounds.Dy()),
		clamp(r.Right+padding, 0, bounds.Dx()),
		clamp(r.Bottom+padding, 0, bounds.Dy()),
	)

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}

// equalizeContrast applies luminance histogram equalization. This is the
// contrast boost used for selfies, where uneven lighting hides facial detail
// from the detectors.
func equalizeContrast(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	total := width * height
	if total == 0 {
		return img
	}

	// Luma histogram (ITU-R BT.601).
	var hist [256]int
	lumas := make([]uint8, total)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			l := uint8(clamp(int(luma), 0, 255))
			lumas[i] = l
			hist[l]++
			i++
		}
	}

	// Cumulative distribution mapped to the full 0-255 range.
	var lut [256]uint8
	cum := 0
	for v := 0; v < 256; v++ {
		cum += hist[v]
		lut[v] = uint8(clamp(cum*255/total, 0, 255))
	}

	// Rescale each pixel's channels by the luma gain.
	dst := image.NewRGBA(bounds)
	i = 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			oldLuma := lumas[i]
			i++
			gain := 1.0
			if oldLuma > 0 {
				gain = float64(lut[oldLuma]) / float64(oldLuma)
			}
			dst.Set(x, y, color.RGBA{
				R: uint8(clamp(int(float64(r>>8)*gain), 0, 255)),
				G: uint8(clamp(int(float64(g>>8)*gain), 0, 255)),
				B: uint8(clamp(int(float64(b>>8)*gain), 0, 255)),
				A: uint8(a >> 8),
			})
		}
	}
	return dst
}

// encodeJPEG encodes the image as JPEG bytes.
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
