package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nestwatch/nestwatch-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nestwatch-api",
	Short: "NestWatch annotation API server",
	Long: `NestWatch Annotation API - A session engine for annotating camera trap imagery

Reviewers upload a camera card's images, step through them one at a time,
mark single observations or multi-image sequences, and commit annotation
records that are synced in batches to the shared spreadsheet.

Features:
  • Per-reviewer annotation sessions over uploaded image batches
  • EXIF capture-time extraction with file-mtime fallback
  • Sequence and single-observation marking with ordering rules
  • Batched, all-or-nothing sync to Google Sheets or a local archive
  • Assignment overview backed by the shared assignments sheet`,
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
}

// loadConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	// Initialize the configuration
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
