package face

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log"
)

// Detector locates faces in an encoded image.
type Detector interface {
	Name() string
	Detect(ctx context.Context, imageData []byte) ([]Region, error)
}

// ServiceDetector runs a single detector backend on the inference service.
type ServiceDetector struct {
	client  *Client
	backend string
}

// NewServiceDetector creates a detector for a named service backend
// (retinaface, mtcnn, opencv, ssd).
func NewServiceDetector(client *Client, backend string) *ServiceDetector {
	return &ServiceDetector{client: client, backend: backend}
}

func (d *ServiceDetector) Name() string {
	return d.backend
}

func (d *ServiceDetector) Detect(ctx context.Context, imageData []byte) ([]Region, error) {
	return d.client.Detect(ctx, d.backend, imageData)
}

// StubDetector finds a single centered region on any decodable image.
// Paired with the stub embedding provider for tests and local development.
type StubDetector struct{}

func (StubDetector) Name() string {
	return "stub"
}

func (StubDetector) Detect(ctx context.Context, imageData []byte) ([]Region, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, nil
	}
	// Middle half of the image.
	return []Region{{
		Top:    cfg.Height / 4,
		Right:  cfg.Width * 3 / 4,
		Bottom: cfg.Height * 3 / 4,
		Left:   cfg.Width / 4,
	}}, nil
}

// DetectWithFallback tries detectors in order until one finds at least one
// face. A backend error or an empty result both hand over to the next
// detector; an exhausted chain means no faces, which is not an error.
// Provider outages are the exception: they abort the chain so the caller can
// retry the photo later instead of recording a false zero.
func DetectWithFallback(ctx context.Context, detectors []Detector, imageData []byte) ([]Region, string, error) {
	for _, d := range detectors {
		regions, err := d.Detect(ctx, imageData)
		if err != nil {
			if errors.Is(err, ErrProviderUnavailable) {
				return nil, "", err
			}
			log.Printf("detector %s failed: %v", d.Name(), err)
			continue
		}
		if len(regions) > 0 {
			return regions, d.Name(), nil
		}
	}
	return nil, "", nil
}
