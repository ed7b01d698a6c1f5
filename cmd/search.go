package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/config"
	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/face"
	"github.com/eventlens/eventlens/internal/match"
)

var searchCmd = &cobra.Command{
	Use:   "search <selfie-file>",
	Short: "Find event photos of a person from a selfie",
	Long: `Match a selfie against all stored event photo faces and list the photos
the person appears in. The selfie must contain exactly one face.

Examples:
  # Search all events
  eventlens search selfie.jpg

  # Search one event with a stricter tolerance
  eventlens search selfie.jpg --event ev-summer-wedding --tolerance 0.85

  # Output as JSON
  eventlens search selfie.jpg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("event", "", "Only search photos of this event UID")
	searchCmd.Flags().Float64("tolerance", face.SelfieTolerance, "Maximum match distance (lower = stricter, defaults to FACE_TOLERANCE)")
	searchCmd.Flags().Int("limit", 0, "Limit number of results (0 = no limit)")
	searchCmd.Flags().Bool("json", false, "Output as JSON")
}

// extractSelfieEmbedding extracts the single query embedding from a selfie file.
func extractSelfieEmbedding(ctx context.Context, faceCfg *config.FaceConfig, selfiePath string) ([]float32, error) {
	selfieData, err := os.ReadFile(selfiePath) //nolint:gosec // user-supplied CLI path
	if err != nil {
		return nil, fmt.Errorf("reading selfie: %w", err)
	}

	extractor := face.NewExtractorFromConfig(faceCfg)
	result, err := extractor.Extract(ctx, selfieData, face.ExtractOptions{Selfie: true})
	if err != nil {
		return nil, fmt.Errorf("analyzing selfie: %w", err)
	}

	switch len(result.Faces) {
	case 0:
		return nil, errors.New("no face detected in the selfie, try a clearer photo")
	case 1:
		return result.Faces[0].Embedding, nil
	default:
		return nil, fmt.Errorf("found %d faces in the selfie, it must contain exactly one", len(result.Faces))
	}
}

// printSearchTable prints the human-readable search results table.
func printSearchTable(results []match.Result) {
	if len(results) == 0 {
		fmt.Println("No matching photos found.")
		return
	}

	fmt.Printf("Found %d matching photos:\n\n", len(results))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHOTO\tEVENT\tDISTANCE\tCONFIDENCE\tQUALITY")
	fmt.Fprintln(w, "-----\t-----\t--------\t----------\t-------")

	for i := range results {
		r := &results[i]
		event := r.EventName
		if event == "" {
			event = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.0f%%\t%s\n",
			r.PhotoUID, event, r.Distance, r.Confidence, r.Quality)
	}

	w.Flush()
}

func runSearch(cmd *cobra.Command, args []string) error {
	selfiePath := args[0]
	eventUID := mustGetString(cmd, "event")
	tolerance := mustGetFloat64(cmd, "tolerance")
	limit := mustGetInt(cmd, "limit")
	jsonOutput := mustGetBool(cmd, "json")

	if tolerance <= 0 {
		return errors.New("tolerance must be positive")
	}

	cfg, err := initBackend()
	if err != nil {
		return err
	}

	// The flag wins; otherwise FACE_TOLERANCE decides how wide to search.
	if !cmd.Flags().Changed("tolerance") {
		tolerance = cfg.Face.Tolerance
	}

	ctx := context.Background()
	query, err := extractSelfieEmbedding(ctx, &cfg.Face, selfiePath)
	if err != nil {
		return err
	}

	faces, err := database.GetFaceReader(ctx)
	if err != nil {
		return err
	}

	candidates, err := faces.SearchCandidates(ctx, query, eventUID, 0, tolerance)
	if err != nil {
		return fmt.Errorf("searching candidate faces: %w", err)
	}

	results := match.FindMatches(query, candidates, tolerance)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if jsonOutput {
		return outputJSON(map[string]any{
			"matches":   results,
			"count":     len(results),
			"tolerance": tolerance,
		})
	}

	printSearchTable(results)
	return nil
}
