package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/server"
	"github.com/jonathan/resume-screener/internal/server/ratelimit"
	"github.com/jonathan/resume-screener/internal/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing report, CSV and snapshot exports.
Requires JWT_SECRET or API_KEY_HASH. DATABASE_URL enables the stored-candidate routes.`,
	RunE: runServe,
}

var (
	serveAddr         string
	serveMigrate      bool
	serveNoSnapshots  bool
	serveSnapPrecheck bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config, default :8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Create database tables before serving")
	serveCmd.Flags().BoolVar(&serveNoSnapshots, "no-snapshots", false, "Disable the headless browser snapshot route")
	serveCmd.Flags().BoolVar(&serveSnapPrecheck, "snapshot-precheck", false, "Check server-rendered HTML before launching the browser")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if rootDryRun {
		return fmt.Errorf("--dry-run is not supported by serve")
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}

	srvCfg := server.Config{
		Addr:     cfg.Addr,
		Exporter: newExporter(),
		Logger:   logger,
		// RATE_LIMIT_* variables win over the config file
		RateLimit: ratelimit.ApplyEnv(ratelimit.NewConfig(cfg.RateLimit, cfg.RateBurst)),
	}

	if os.Getenv("JWT_SECRET") != "" {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return err
		}
		srvCfg.JWT = jwtCfg
	}
	apiKeys, err := config.NewAPIKeyConfig()
	if err != nil {
		return err
	}
	srvCfg.APIKeys = apiKeys

	if cfg.DatabaseURL != "" {
		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		if serveMigrate {
			if err := database.EnsureSchema(ctx); err != nil {
				return err
			}
		}
		srvCfg.Store = database
	} else {
		logger.Warn("DATABASE_URL not set; stored-candidate routes are disabled")
	}

	if !serveNoSnapshots {
		opts := []snapshot.Option{snapshot.WithLogger(logger)}
		if serveSnapPrecheck {
			opts = append(opts, snapshot.WithPrecheck(snapshot.DefaultFetchOptions()))
		}
		srvCfg.Snapshotter = snapshot.New(snapshot.NewBrowserCapturer(logger), opts...)
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving",
		zap.String("addr", cfg.Addr),
		zap.Bool("database", srvCfg.Store != nil),
		zap.Bool("jwt", srvCfg.JWT != nil),
		zap.Bool("api_key", apiKeys.Enabled()),
	)
	return srv.Start(ctx)
}
