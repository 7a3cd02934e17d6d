// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ponyget/internal/config"
	"ponyget/internal/extract"
	"ponyget/internal/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagFormat  string
	flagAPIBase string
	flagTimeout int
	flagJSON    bool
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ponyget <url>...",
	Short: "Extract track metadata and audio URLs from Pony.fm",
	Long: `ponyget looks up Pony.fm tracks through the site's JSON API and prints
their metadata, available formats and direct download URLs.`,
	Args:              cobra.MinimumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              showRun,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// Skips loadConfig so a broken config file cannot hide the version.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ponyget %s\n", Version)
	},
}

var errorLabel = color.New(color.FgRed, color.Bold)

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		stop()
		os.Exit(1)
	}
}

// reportError prints expected conditions as a single clean line and
// keeps the wrapped chain for everything else.
func reportError(err error) {
	errorLabel.Fprint(os.Stderr, "ERROR: ")
	if extract.IsExpected(err) {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	debugf("error type: %T", err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Preferred format: best | flac | mp3 | m4a | ogg")
	rootCmd.PersistentFlags().StringVar(&flagAPIBase, "api-base", "", "Track API base URL")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "HTTP timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output track metadata as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagAPIBase != "" {
		cfg.APIBase = flagAPIBase
	}
	if flagTimeout != 0 {
		cfg.TimeoutSeconds = flagTimeout
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[ponyget] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// newRegistry builds the extractor registry from the loaded configuration.
func newRegistry() *extract.Registry {
	return extract.New(httputil.NewClient(cfg.Timeout()), cfg.APIBase)
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}
