package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eigotube/immersion-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "immersion-api",
	Short: "Immersion API server",
	Long: `Immersion API - subtitle resolution and study tools for language immersion

This API resolves English and Japanese subtitles for videos from multiple
sources, translates caption tracks when a native track is missing, and
transcribes uploaded audio as a last resort.

Features:
  • Caption language discovery and transcript fetching
  • Translation cascade with batch cue translation
  • Speech recognition fallback (Whisper, Google Cloud Speech)
  • Video and channel search
  • Personal library with spaced-repetition study cards`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
