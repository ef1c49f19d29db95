package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pfrederiksen/track-assets/internal/config"
	"github.com/pfrederiksen/track-assets/internal/logger"
	"github.com/pfrederiksen/track-assets/internal/manifest"
	"github.com/pfrederiksen/track-assets/internal/pipeline"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagFormat    string
	flagVerbose   bool
	flagManifest  string
	flagOutputDir string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track-assets",
		Short: "Build track descriptors and cover images from wiki pages",
		Long: `A CLI tool that reads a manifest of track names and wiki URLs, scrapes the
info table of each page and writes a JSON descriptor plus cover image per track.
A failing row is reported and skipped; the rest of the batch still runs.`,
		PersistentPreRunE: setup,
		RunE:              runFetch,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to config.properties")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", string(FormatText), "Output format: text, json or yaml")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and print metrics")
	addFetchFlags(cmd)

	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Process the track manifest (default command)",
		Args:  cobra.NoArgs,
		RunE:  runFetch,
	}
	addFetchFlags(fetch)

	cmd.AddCommand(fetch, newGalleryCmd(), newRenameCmd(), newSortClassesCmd())

	return cmd
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagManifest, "manifest", "", "Manifest CSV (overrides [SETTINGS] trackmaps)")
	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Output directory (overrides TRACK_ASSETS_OUTPUT_DIR)")
}

// setup validates the shared flags and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	if _, err := parseFormat(flagFormat); err != nil {
		return err
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	return nil
}

// runFetch is the main command logic
func runFetch(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig, config.Options{
		Manifest:  flagManifest,
		OutputDir: flagOutputDir,
	})
	if err != nil {
		return err
	}

	logger.Debug("Loaded config", logger.Fields{
		"config":      flagConfig,
		"manifest":    cfg.Manifest,
		"output_dir":  cfg.OutputDir,
		"base_origin": cfg.BaseOrigin,
	})

	m, err := manifest.Load(cfg.Manifest, manifest.Columns{Name: cfg.NameColumn, URL: cfg.URLColumn})
	if err != nil {
		return err
	}

	p, err := pipeline.NewFromConfig(*cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	logger.DefaultMetrics().Reset()
	summary := p.Run(cmd.Context(), m, nil)

	report := &FetchReport{Summary: summary}
	if flagVerbose {
		snapshot := logger.GetMetricsSnapshot()
		report.Metrics = &snapshot
	}

	if err := WriteFetchReport(cmd.OutOrStdout(), report, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", s)
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
