// Package main implements the screener CLI for exporting candidate reports and snapshots.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/observability"
)

var (
	rootConfigPath  string
	rootVerbose     bool
	rootDatabaseURL string
	rootOutputDir   string
	rootDryRun      bool
)

// Resolved by loadSettings before any command runs
var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Resume Screener report exporter",
	Long: `Resume Screener turns screened candidates into PDF reports, CSV downloads and
page snapshots, either from the command line or through a REST API.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&rootDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&rootOutputDir, "out-dir", "o", "", "Directory exports are written to")
	rootCmd.PersistentFlags().BoolVar(&rootDryRun, "dry-run", false, "Lay out reports without writing files")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings resolves the configuration in priority order: flags, config file,
// environment, built-in defaults. It also builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	var loaded config.Config
	if rootConfigPath != "" {
		fileCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return err
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		loaded = *fileCfg
	}

	if cmd.Flags().Changed("verbose") {
		loaded.Verbose = rootVerbose
	}
	if cmd.Flags().Changed("db-url") {
		loaded.DatabaseURL = rootDatabaseURL
	}
	if cmd.Flags().Changed("out-dir") {
		loaded.OutputDir = rootOutputDir
	}
	if loaded.DatabaseURL == "" {
		loaded.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg = loaded.MergeWithDefaults(config.Defaults())

	l, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l

	if cfg.Verbose && rootConfigPath != "" {
		logger.Debug("loaded config", zap.String("path", rootConfigPath))
	}
	return nil
}
