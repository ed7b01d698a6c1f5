// Package caption generates short photo descriptions with vision models.
// Captions are shown next to search results so attendees can recognize
// the moment without opening the full photo.
package caption

import (
	"context"
	"fmt"

	"github.com/eventlens/eventlens/internal/config"
)

const captionPrompt = `Describe this event photo in one short sentence for a photo gallery.
Focus on what is happening and the setting. Do not identify or name people.
Respond with the sentence only, no quotes.`

// Provider generates a caption for a photo.
type Provider interface {
	Name() string
	CaptionPhoto(ctx context.Context, imageData []byte) (string, error)
}

// NewFromConfig builds the configured caption provider. Returns an error
// when captioning is not configured.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Caption.Provider {
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, fmt.Errorf("OPENAI_TOKEN is required for the openai caption provider")
		}
		return NewOpenAIProvider(cfg.OpenAI.Token, cfg.Caption.Model), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini caption provider")
		}
		return NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Caption.Model)
	case "":
		return nil, fmt.Errorf("captioning is not configured (set CAPTION_PROVIDER)")
	default:
		return nil, fmt.Errorf("unknown caption provider: %s", cfg.Caption.Provider)
	}
}
