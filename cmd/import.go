package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/database/legacy"
	"github.com/eventlens/eventlens/internal/face"
	"github.com/eventlens/eventlens/internal/process"
	"github.com/eventlens/eventlens/internal/slug"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import events, photos and faces from the legacy gallery",
	Long: `Import all events, photos and stored face encodings from the legacy
MySQL-backed gallery into the current store.

Photo paths are carried over unchanged, so MEDIA_PATH must point at the
same directory tree the legacy gallery used. Photos that already have
face encodings in the legacy gallery are marked processed; photos
without encodings stay unprocessed and get picked up by 'eventlens
process'.

The legacy connection is configured with LEGACY_DATABASE_DSN.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// importStats counts what an import run touched.
type importStats struct {
	Events  int
	Photos  int
	Faces   int
	Skipped int // faces with malformed encodings
}

// importFaces converts legacy face rows and stores them for a photo.
func importFaces(ctx context.Context, faces database.FaceWriter, photoUID string, rows []legacy.FaceRow, stats *importStats) error {
	stored := make([]database.StoredFace, 0, len(rows))
	for _, row := range rows {
		embedding := face.DecodeEmbedding(row.Encoding)
		if len(embedding) == 0 {
			log.Printf("photo %s: skipping legacy face %d with malformed encoding", photoUID, row.ID)
			stats.Skipped++
			continue
		}
		stored = append(stored, database.StoredFace{
			PhotoUID:  photoUID,
			FaceIndex: len(stored),
			Encoding:  row.Encoding,
			Embedding: embedding,
			Region:    face.Region{Top: row.Top, Right: row.Right, Bottom: row.Bottom, Left: row.Left},
			Detector:  "import",
			Model:     process.EmbeddingModel,
			Dim:       len(embedding),
		})
	}
	if len(stored) == 0 {
		return nil
	}
	if err := faces.SaveFaces(ctx, photoUID, stored); err != nil {
		return fmt.Errorf("saving faces: %w", err)
	}
	stats.Faces += len(stored)
	return nil
}

// importEvent imports one legacy event with its photos and faces.
func importEvent(ctx context.Context, pool *legacy.Pool, events database.EventWriter, photos database.PhotoWriter, faces database.FaceWriter, src legacy.Event, stats *importStats) error {
	eventSlug := slug.Make(src.Name)
	if eventSlug == "" {
		eventSlug = fmt.Sprintf("event-%d", src.ID)
	}

	event := &database.Event{
		UID:       uuid.NewString(),
		Name:      src.Name,
		Slug:      eventSlug,
		EventDate: src.EventDate,
	}
	if err := events.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("creating event %q: %w", src.Name, err)
	}
	stats.Events++

	legacyPhotos, err := pool.GetPhotosByEvent(ctx, src.ID)
	if err != nil {
		return err
	}

	for _, lp := range legacyPhotos {
		photo := &database.Photo{
			UID:          uuid.NewString(),
			EventUID:     event.UID,
			OriginalName: lp.OriginalName,
			Path:         lp.Path,
		}
		if err := photos.CreatePhoto(ctx, photo); err != nil {
			return fmt.Errorf("creating photo %q: %w", lp.OriginalName, err)
		}
		stats.Photos++

		rows, err := pool.GetFacesByPhoto(ctx, lp.ID)
		if err != nil {
			return err
		}
		if err := importFaces(ctx, faces, photo.UID, rows, stats); err != nil {
			return err
		}
	}

	fmt.Printf("  %s: %d photos\n", src.Name, len(legacyPhotos))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := initBackend()
	if err != nil {
		return err
	}

	if cfg.Legacy.DSN == "" {
		return errors.New("LEGACY_DATABASE_DSN environment variable is required")
	}

	fmt.Println("Connecting to legacy gallery...")
	pool, err := legacy.NewPool(cfg.Legacy.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx := context.Background()
	events, err := database.GetEventWriter(ctx)
	if err != nil {
		return err
	}
	photos, err := database.GetPhotoWriter(ctx)
	if err != nil {
		return err
	}
	faces, err := database.GetFaceWriter(ctx)
	if err != nil {
		return err
	}

	legacyEvents, err := pool.GetEvents(ctx)
	if err != nil {
		return err
	}
	if len(legacyEvents) == 0 {
		fmt.Println("Legacy gallery has no events, nothing to import.")
		return nil
	}

	fmt.Printf("Importing %d events...\n", len(legacyEvents))
	stats := &importStats{}
	for _, src := range legacyEvents {
		if err := importEvent(ctx, pool, events, photos, faces, src, stats); err != nil {
			return err
		}
	}

	fmt.Printf("\nImported %d events, %d photos, %d faces\n", stats.Events, stats.Photos, stats.Faces)
	if stats.Skipped > 0 {
		fmt.Printf("Skipped %d faces with malformed encodings\n", stats.Skipped)
	}
	return nil
}
