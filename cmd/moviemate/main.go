package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/moviemate/internal/api"
	"github.com/amaumene/moviemate/internal/config"
	"github.com/amaumene/moviemate/internal/models"
	"github.com/amaumene/moviemate/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// application is the assembled service
type application struct {
	server *api.Server
}

func newApplication(server *api.Server) *application {
	return &application{server: server}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "moviemate",
		Short:         "Track movies and shows you want to watch, are watching or have watched",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(v)
		},
	}
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(v)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the storage schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(v)
		},
	})

	return root
}

func serve(v *viper.Viper) error {
	// 1. Load configuration
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info().Msg("Starting MovieMate")
	logger.Info().
		Str("config_dir", cfg.ConfigDir).
		Str("storage_driver", cfg.StorageDriver).
		Msg("Configuration loaded")

	// 3. Initialize storage, controllers and HTTP server
	app, cleanup, err := initializeApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	// 4. Serve until a shutdown signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Msg("MovieMate is running")
	if err := app.server.Start(ctx); err != nil {
		return err
	}

	logger.Info().Msg("MovieMate stopped")
	return nil
}

func migrate(v *viper.Viper) error {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// Opening the repository creates the schema
	_, cleanup, err := models.OpenRepository(cfg, logger)
	if err != nil {
		return err
	}
	cleanup()

	logger.Info().Str("storage_driver", cfg.StorageDriver).Msg("Schema up to date")
	return nil
}
