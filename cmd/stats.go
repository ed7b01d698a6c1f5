package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show storage and search statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("json", false, "Output as JSON")
}

// statsOutput is the JSON shape of the stats command.
type statsOutput struct {
	Events          int `json:"events"`
	Photos          int `json:"photos"`
	PhotosProcessed int `json:"photos_processed"`
	PhotosWithFaces int `json:"photos_with_faces"`
	Faces           int `json:"faces"`
	Searches        int `json:"searches"`
}

func runStats(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	if _, err := initBackend(); err != nil {
		return err
	}

	ctx := context.Background()
	events, err := database.GetEventReader(ctx)
	if err != nil {
		return err
	}
	photos, err := database.GetPhotoReader(ctx)
	if err != nil {
		return err
	}
	faces, err := database.GetFaceReader(ctx)
	if err != nil {
		return err
	}
	searches, err := database.GetSearchLogWriter(ctx)
	if err != nil {
		return err
	}

	out := statsOutput{}
	if list, err := events.ListEvents(ctx); err == nil {
		out.Events = len(list)
	}
	if count, err := photos.CountPhotos(ctx); err == nil {
		out.Photos = count
	}
	if count, err := photos.CountProcessed(ctx); err == nil {
		out.PhotosProcessed = count
	}
	if count, err := faces.CountPhotos(ctx); err == nil {
		out.PhotosWithFaces = count
	}
	if count, err := faces.Count(ctx); err == nil {
		out.Faces = count
	}
	if count, err := searches.CountSearches(ctx); err == nil {
		out.Searches = count
	}

	if jsonOutput {
		return outputJSON(out)
	}

	fmt.Printf("Events:             %d\n", out.Events)
	fmt.Printf("Photos:             %d\n", out.Photos)
	fmt.Printf("  processed:        %d\n", out.PhotosProcessed)
	fmt.Printf("  with faces:       %d\n", out.PhotosWithFaces)
	fmt.Printf("Faces stored:       %d\n", out.Faces)
	fmt.Printf("Searches recorded:  %d\n", out.Searches)
	return nil
}
