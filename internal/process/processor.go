// Package process runs face detection over batches of event photos.
package process

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/face"
	"github.com/eventlens/eventlens/internal/store"
)

// EmbeddingModel is recorded with every stored face.
const EmbeddingModel = "arcface"

// Options control a processing run.
type Options struct {
	EventUID    string // empty means all events
	Limit       int    // 0 means no limit
	Concurrency int    // parallel workers, defaults to 5
	Progress    bool   // render a progress bar
}

// Stats summarizes a processing run.
type Stats struct {
	Processed int // photos marked processed
	Errors    int // photos left unprocessed due to errors
	Faces     int // total faces stored
}

// Processor detects and stores faces for unprocessed event photos.
type Processor struct {
	photos    database.PhotoReader
	faces     database.FaceWriter
	media     store.Store
	extractor *face.Extractor
}

// NewProcessor creates a batch processor.
func NewProcessor(photos database.PhotoReader, faces database.FaceWriter, media store.Store, extractor *face.Extractor) *Processor {
	return &Processor{
		photos:    photos,
		faces:     faces,
		media:     media,
		extractor: extractor,
	}
}

// Run processes all unprocessed photos. Photos whose image cannot be decoded
// are marked processed with zero faces; photos that fail because the face
// service is unavailable stay unprocessed so a later run retries them.
func (p *Processor) Run(ctx context.Context, opts Options) (*Stats, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 5
	}

	photos, err := p.photos.ListUnprocessed(ctx, opts.EventUID, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("list unprocessed photos: %w", err)
	}

	stats := &Stats{}
	if len(photos) == 0 {
		return stats, nil
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(photos),
			progressbar.OptionSetDescription("Detecting faces"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("photos"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}

	var mu sync.Mutex
	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup

	for _, photo := range photos {
		wg.Add(1)
		go func(ph database.Photo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			faceCount, err := p.processOne(ctx, &ph)

			mu.Lock()
			if err != nil {
				stats.Errors++
			} else {
				stats.Processed++
				stats.Faces += faceCount
			}
			mu.Unlock()
			if bar != nil {
				bar.Add(1)
			}
		}(photo)
	}

	wg.Wait()
	if bar != nil {
		fmt.Println()
	}

	return stats, nil
}

// processOne handles a single photo and returns the number of faces stored.
func (p *Processor) processOne(ctx context.Context, photo *database.Photo) (int, error) {
	imageData, err := p.media.Fetch(ctx, photo.Path)
	if err != nil {
		log.Printf("photo %s: fetch failed: %v", photo.UID, err)
		return 0, err
	}

	result, err := p.extractor.Extract(ctx, imageData, face.ExtractOptions{})
	if err != nil {
		// Face service down or embedding failed: leave the photo
		// unprocessed so the next run picks it up again.
		if errors.Is(err, face.ErrProviderUnavailable) {
			log.Printf("photo %s: face service unavailable", photo.UID)
		} else {
			log.Printf("photo %s: extraction failed: %v", photo.UID, err)
		}
		return 0, err
	}

	stored := make([]database.StoredFace, len(result.Faces))
	for i, f := range result.Faces {
		stored[i] = database.StoredFace{
			PhotoUID:  photo.UID,
			FaceIndex: i,
			Encoding:  face.EncodeEmbedding(f.Embedding),
			Embedding: f.Embedding,
			Region:    f.Region,
			Detector:  result.Detector,
			Model:     EmbeddingModel,
			Dim:       len(f.Embedding),
		}
	}

	// Save even when no faces were found so the photo is marked processed.
	if err := p.faces.SaveFaces(ctx, photo.UID, stored); err != nil {
		log.Printf("photo %s: save failed: %v", photo.UID, err)
		return 0, err
	}

	return len(stored), nil
}
