package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/caption"
	"github.com/eventlens/eventlens/internal/database"
)

var captionCmd = &cobra.Command{
	Use:   "caption",
	Short: "Generate captions for photos without one",
	Long: `Generate a short caption for every photo that does not have one yet,
using the configured vision model (CAPTION_PROVIDER: openai or gemini).

Examples:
  # Caption all uncaptioned photos
  eventlens caption

  # Caption one event only, 20 photos at a time
  eventlens caption --event ev-summer-wedding --limit 20`,
	RunE: runCaption,
}

func init() {
	rootCmd.AddCommand(captionCmd)

	captionCmd.Flags().String("event", "", "Only caption photos of this event UID")
	captionCmd.Flags().Int("limit", 0, "Maximum number of photos to caption (0 = no limit)")
}

// listUncaptioned collects photos without a caption, optionally filtered by event.
func listUncaptioned(ctx context.Context, events database.EventReader, photos database.PhotoReader, eventUID string, limit int) ([]database.Photo, error) {
	eventUIDs := []string{eventUID}
	if eventUID == "" {
		list, err := events.ListEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		eventUIDs = eventUIDs[:0]
		for i := range list {
			eventUIDs = append(eventUIDs, list[i].UID)
		}
	}

	var out []database.Photo
	for _, uid := range eventUIDs {
		list, err := photos.ListPhotosByEvent(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("listing photos: %w", err)
		}
		for i := range list {
			if list[i].Caption != "" {
				continue
			}
			out = append(out, list[i])
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func runCaption(cmd *cobra.Command, args []string) error {
	cfg, err := initBackend()
	if err != nil {
		return err
	}

	media, err := initMediaStore(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	provider, err := caption.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := database.GetEventReader(ctx)
	if err != nil {
		return err
	}
	photos, err := database.GetPhotoWriter(ctx)
	if err != nil {
		return err
	}

	pending, err := listUncaptioned(ctx, events, photos, mustGetString(cmd, "event"), mustGetInt(cmd, "limit"))
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("All photos already have captions.")
		return nil
	}

	fmt.Printf("Captioning %d photos with %s...\n", len(pending), provider.Name())

	captioned := 0
	for i := range pending {
		photo := &pending[i]

		imageData, err := media.Fetch(ctx, photo.Path)
		if err != nil {
			log.Printf("photo %s: fetch failed: %v", photo.UID, err)
			continue
		}

		text, err := provider.CaptionPhoto(ctx, imageData)
		if err != nil {
			log.Printf("photo %s: captioning failed: %v", photo.UID, err)
			continue
		}

		if err := photos.UpdateCaption(ctx, photo.UID, text); err != nil {
			log.Printf("photo %s: saving caption failed: %v", photo.UID, err)
			continue
		}

		captioned++
		fmt.Printf("  %s: %s\n", photo.OriginalName, text)
	}

	fmt.Printf("\nCaptioned %d/%d photos\n", captioned, len(pending))
	return nil
}
