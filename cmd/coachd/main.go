// Package main is the entry point for the gameplay coach API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openmohaa/coach-api/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "coachd",
	Short: "Gameplay coach API server",
	Long: "coachd serves simulated gameplay analyses. Metric scores are randomly generated " +
		"within fixed bands and turned into coaching recommendations by a rule table.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
