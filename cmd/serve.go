package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/database/postgres"
	"github.com/eventlens/eventlens/internal/face"
	"github.com/eventlens/eventlens/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the EventLens web server.
The server exposes the selfie search API, event and photo management
endpoints, and serves the attendee frontend.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// initFaceHNSW builds or loads the face HNSW index for fast similarity search.
func initFaceHNSW(ctx context.Context, faceRepo *postgres.FaceRepository, indexPath string) {
	if indexPath != "" {
		fmt.Printf("Loading face HNSW index from %s...\n", indexPath)
	} else {
		fmt.Printf("Building in-memory HNSW index for face matching...\n")
	}
	if err := faceRepo.EnableHNSW(ctx, indexPath); err != nil {
		fmt.Printf("Warning: Failed to build face HNSW index: %v\n", err)
		fmt.Printf("Face matching will use PostgreSQL queries (slower)\n")
	} else if indexPath != "" {
		fmt.Printf("Face HNSW index ready with %d faces (persisted to %s)\n", faceRepo.HNSWCount(), indexPath)
	} else {
		fmt.Printf("Face HNSW index built with %d faces (in-memory only)\n", faceRepo.HNSWCount())
	}
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

// saveHNSWIndex saves the face HNSW index to disk during shutdown.
func saveHNSWIndex() {
	if rebuilder := database.GetFaceHNSWRebuilder(); rebuilder != nil && rebuilder.IsHNSWEnabled() {
		if err := rebuilder.SaveHNSWIndex(); err != nil {
			fmt.Printf("Warning: failed to save face HNSW index: %v\n", err)
		} else {
			fmt.Println("Face HNSW index saved to disk")
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := initBackend()
	if err != nil {
		return err
	}

	media, err := initMediaStore(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	initFaceHNSW(ctx, postgres.SharedFaceRepository(), cfg.Database.HNSWIndexPath)

	faces, err := database.GetFaceWriter(ctx)
	if err != nil {
		return err
	}
	photos, err := database.GetPhotoWriter(ctx)
	if err != nil {
		return err
	}
	events, err := database.GetEventWriter(ctx)
	if err != nil {
		return err
	}
	searches, err := database.GetSearchLogWriter(ctx)
	if err != nil {
		return err
	}

	deps := web.Deps{
		Faces:      faces,
		Photos:     photos,
		Events:     events,
		Searches:   searches,
		Media:      media,
		Extractor:  face.NewExtractorFromConfig(&cfg.Face),
		AdminToken: cfg.Web.AdminToken,
	}
	if deps.AdminToken == "" {
		fmt.Println("Warning: ADMIN_TOKEN is not set, photo upload and event creation are disabled")
	}

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(deps, port, host)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		saveHNSWIndex()

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting EventLens on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
