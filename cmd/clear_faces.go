package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/database"
)

var clearFacesCmd = &cobra.Command{
	Use:   "clear-faces <photo-uid>",
	Short: "Remove all stored faces for a photo",
	Long: `Removes all stored faces for a photo and clears its processed flag,
so the next processing run detects its faces again.

Examples:
  # Clear faces for a photo
  eventlens clear-faces ph-abc123

  # Preview what would be deleted (dry run)
  eventlens clear-faces ph-abc123 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runClearFaces,
}

func init() {
	rootCmd.AddCommand(clearFacesCmd)

	clearFacesCmd.Flags().Bool("dry-run", false, "Preview changes without applying them")
}

func runClearFaces(cmd *cobra.Command, args []string) error {
	photoUID := args[0]
	dryRun := mustGetBool(cmd, "dry-run")

	if _, err := initBackend(); err != nil {
		return err
	}

	ctx := context.Background()
	faces, err := database.GetFaceWriter(ctx)
	if err != nil {
		return err
	}

	stored, err := faces.GetFaces(ctx, photoUID)
	if err != nil {
		return fmt.Errorf("getting faces: %w", err)
	}
	if len(stored) == 0 {
		processed, err := faces.IsFacesProcessed(ctx, photoUID)
		if err != nil {
			return fmt.Errorf("checking processing state: %w", err)
		}
		if !processed {
			fmt.Println("No faces stored for this photo.")
			return nil
		}
		fmt.Println("Photo was processed with zero faces.")
	}

	fmt.Printf("Found %d face(s) to delete:\n", len(stored))
	for i := range stored {
		f := &stored[i]
		fmt.Printf("  %d. face %d (detector: %s, region: %dx%d)\n",
			i+1, f.FaceIndex, f.Detector, f.Region.Width(), f.Region.Height())
	}

	if dryRun {
		fmt.Println("\nDry run - no changes made.")
		return nil
	}

	deleted, err := faces.DeleteFacesByPhoto(ctx, photoUID)
	if err != nil {
		return fmt.Errorf("deleting faces: %w", err)
	}

	fmt.Printf("\nDeleted %d face(s). The photo will be reprocessed on the next run.\n", len(deleted))
	return nil
}
