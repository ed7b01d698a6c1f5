package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/face"
	"github.com/eventlens/eventlens/internal/process"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run face detection over unprocessed photos",
	Long: `Detect and store faces for every photo that has not been processed yet.

Photos that cannot be decoded are marked processed with zero faces so they
are not retried forever. Photos that fail because the face service is down
stay unprocessed and are picked up by the next run.

Examples:
  # Process everything
  eventlens process

  # Process one event with more workers
  eventlens process --event ev-summer-wedding --concurrency 10

  # Dip a toe first
  eventlens process --limit 20`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().String("event", "", "Only process photos of this event UID")
	processCmd.Flags().Int("limit", 0, "Maximum number of photos to process (0 = no limit)")
	processCmd.Flags().Int("concurrency", 5, "Number of parallel workers")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := initBackend()
	if err != nil {
		return err
	}

	media, err := initMediaStore(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	photos, err := database.GetPhotoReader(ctx)
	if err != nil {
		return err
	}
	faces, err := database.GetFaceWriter(ctx)
	if err != nil {
		return err
	}

	processor := process.NewProcessor(photos, faces, media, face.NewExtractorFromConfig(&cfg.Face))

	stats, err := processor.Run(ctx, process.Options{
		EventUID:    mustGetString(cmd, "event"),
		Limit:       mustGetInt(cmd, "limit"),
		Concurrency: mustGetInt(cmd, "concurrency"),
		Progress:    true,
	})
	if err != nil {
		return err
	}

	if stats.Processed == 0 && stats.Errors == 0 {
		fmt.Println("Nothing to process, all photos are up to date.")
		return nil
	}

	fmt.Printf("\nProcessed: %d photos, %d faces stored\n", stats.Processed, stats.Faces)
	if stats.Errors > 0 {
		fmt.Printf("Errors:    %d photos left unprocessed (will be retried next run)\n", stats.Errors)
	}
	return nil
}
