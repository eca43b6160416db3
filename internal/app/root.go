// Package app contains the Cobra command tree for repolens.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/detector"
	"github.com/repolens/repolens/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "Project detection and code analysis for local repositories",
	Long: `repolens inspects local repositories: it classifies project type,
language and framework from manifests and file layout, extracts structural
facts (imports, types, functions) with a shared grammar, computes
complexity and quality metrics, and tracks score movement over time.

Run 'repolens' with no arguments to see the available subcommands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("repolens", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  detect    Classify project type, language and framework")
		fmt.Println("  scan      Discover projects under a directory tree")
		fmt.Println("  analyze   Extract structure and compute quality metrics")
		fmt.Println("  report    Write a markdown project report")
		fmt.Println("  track     Snapshot quality scores and compare over time")
		fmt.Println("  watch     Re-classify projects when manifests change")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/repolens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// loadConfig loads configuration and applies the output flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.AutoColor()
	return cfg, nil
}

// newDetector builds a Detector wired to a TTL cache sized by config.
func newDetector(cfg *config.Config) (*detector.Detector, error) {
	cache, err := detector.NewCache(time.Duration(cfg.CacheTTLSeconds)*time.Second, nil)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	return detector.New(cfg.IgnoredDirs, cache), nil
}
