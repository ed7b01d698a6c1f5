package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed detectors.yaml
var detectorsYAML []byte

type Config struct {
	Face     FaceConfig
	Media    MediaConfig
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
	Database DatabaseConfig
	Legacy   LegacyConfig
	Caption  CaptionConfig
	Web      WebConfig
}

type WebConfig struct {
	AdminToken string // bearer token required for photo upload and event creation
}

type FaceConfig struct {
	Provider  string  // "service" or "stub"
	URL       string  // face inference service base URL, defaults to http://localhost:8000
	Tolerance float64 // default selfie match tolerance (default 1.2, the widest quality band)
	Detectors DetectorsConfig
}

type MediaConfig struct {
	Path    string // root directory for stored originals and thumbnails
	BaseURL string // base URL when originals are hosted remotely (optional)
}

type OpenAIConfig struct {
	Token string
}

type GeminiConfig struct {
	APIKey string
}

type CaptionConfig struct {
	Provider string // "openai", "gemini" or empty to disable captioning
	Model    string
}

type DatabaseConfig struct {
	URL           string // PostgreSQL connection URL
	MaxOpenConns  int    // Maximum open connections (default 25)
	MaxIdleConns  int    // Maximum idle connections (default 5)
	HNSWIndexPath string // Path to persist face HNSW index (optional, if empty index is rebuilt on startup)
}

type LegacyConfig struct {
	DSN string // MySQL DSN of the legacy gallery to import from
}

// DetectorsConfig is the ordered face detector fallback chain.
// Backends are tried first to last until one finds at least one face.
type DetectorsConfig struct {
	Backends []string `yaml:"backends"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var detectors DetectorsConfig
	if err := yaml.Unmarshal(detectorsYAML, &detectors); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded detectors.yaml: " + err.Error())
	}
	if env := os.Getenv("FACE_DETECTORS"); env != "" {
		detectors.Backends = splitList(env)
	}

	return &Config{
		Face: FaceConfig{
			Provider:  envOr("FACE_PROVIDER", "service"),
			URL:       os.Getenv("FACE_SERVICE_URL"),
			Tolerance: envFloat("FACE_TOLERANCE", 1.2),
			Detectors: detectors,
		},
		Media: MediaConfig{
			Path:    os.Getenv("MEDIA_PATH"),
			BaseURL: os.Getenv("MEDIA_BASE_URL"),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Caption: CaptionConfig{
			Provider: os.Getenv("CAPTION_PROVIDER"),
			Model:    os.Getenv("CAPTION_MODEL"),
		},
		Database: DatabaseConfig{
			URL:           os.Getenv("DATABASE_URL"),
			MaxOpenConns:  envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  envInt("DATABASE_MAX_IDLE_CONNS", 5),
			HNSWIndexPath: os.Getenv("HNSW_INDEX_PATH"),
		},
		Legacy: LegacyConfig{
			DSN: os.Getenv("LEGACY_DATABASE_DSN"),
		},
		Web: WebConfig{
			AdminToken: os.Getenv("ADMIN_TOKEN"),
		},
	}
}

// envOr returns the env var value or a default when unset.
func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// splitList splits a comma-separated env value, trimming whitespace and empty items.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
