package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/eventlens/eventlens/internal/config"
	"github.com/eventlens/eventlens/internal/database/postgres"
	"github.com/eventlens/eventlens/internal/store"
)

// initBackend loads configuration and connects the PostgreSQL backend,
// running migrations and registering the repositories.
func initBackend() (*config.Config, error) {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}

	fmt.Printf("Connecting to PostgreSQL database...\n")
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	return cfg, nil
}

// initMediaStore builds the media store from configuration.
func initMediaStore(cfg *config.Config) (store.Store, error) {
	media, err := store.NewFromConfig(&cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("failed to set up media store: %w", err)
	}
	return media, nil
}

// outputJSON writes a value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
