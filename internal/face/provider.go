package face

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/eventlens/eventlens/internal/config"
)

// Provider computes a face embedding for a cropped face image.
type Provider interface {
	Name() string
	EmbedFace(ctx context.Context, faceCrop []byte) ([]float32, error)
}

// ServiceProvider computes embeddings via the inference service.
type ServiceProvider struct {
	client *Client
}

// NewServiceProvider creates a provider backed by the inference service.
func NewServiceProvider(client *Client) *ServiceProvider {
	return &ServiceProvider{client: client}
}

func (p *ServiceProvider) Name() string {
	return "service"
}

func (p *ServiceProvider) EmbedFace(ctx context.Context, faceCrop []byte) ([]float32, error) {
	return p.client.EmbedFace(ctx, faceCrop)
}

// StubProvider derives a deterministic embedding from the crop bytes.
// The same crop always yields the same unit vector, so matching behaves
// consistently in tests and environments without the model service.
type StubProvider struct{}

func (StubProvider) Name() string {
	return "stub"
}

func (StubProvider) EmbedFace(ctx context.Context, faceCrop []byte) ([]float32, error) {
	sum := sha256.Sum256(faceCrop)
	seed := int64(binary.BigEndian.Uint64(sum[:8])) //nolint:gosec // not cryptographic, just a stable seed

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // not used for security
	v := make([]float32, EmbeddingDim)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}
	return Normalize(v), nil
}

var (
	defaultProvider     Provider
	defaultProviderOnce sync.Once
)

// DefaultProvider returns the process-wide embedding provider, creating it on
// first use. The model handle behind the service provider is expensive to
// warm up, so it is initialized exactly once and shared by all workers.
// Selection follows configuration: "stub" gives deterministic embeddings,
// anything else talks to the inference service.
func DefaultProvider(cfg *config.FaceConfig) Provider {
	defaultProviderOnce.Do(func() {
		defaultProvider = newProvider(cfg)
	})
	return defaultProvider
}

func newProvider(cfg *config.FaceConfig) Provider {
	if cfg != nil && cfg.Provider == "stub" {
		return StubProvider{}
	}
	var url string
	if cfg != nil {
		url = cfg.URL
	}
	return NewServiceProvider(NewClient(url))
}

// DefaultDetectors builds the detector fallback chain from configuration.
// The stub provider gets the stub detector so both halves of extraction
// stay service-free together.
func DefaultDetectors(cfg *config.FaceConfig) []Detector {
	if cfg != nil && cfg.Provider == "stub" {
		return []Detector{StubDetector{}}
	}
	var url string
	backends := []string{"retinaface", "mtcnn", "opencv", "ssd"}
	if cfg != nil {
		url = cfg.URL
		if len(cfg.Detectors.Backends) > 0 {
			backends = cfg.Detectors.Backends
		}
	}
	client := NewClient(url)
	detectors := make([]Detector, len(backends))
	for i, b := range backends {
		detectors[i] = NewServiceDetector(client, b)
	}
	return detectors
}
