package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eventlens",
	Short: "Find yourself in event photos with a selfie",
	Long: `EventLens indexes faces in event photo galleries and lets attendees
find photos of themselves by uploading a selfie. It runs face detection
over uploaded photos, stores the embeddings in PostgreSQL and serves a
search API on top of them.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
