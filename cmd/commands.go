package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guttosm/finpulse/config"
	"github.com/guttosm/finpulse/internal/app"
	"github.com/guttosm/finpulse/internal/ingestion"
	"github.com/guttosm/finpulse/internal/logger"
	"github.com/guttosm/finpulse/internal/migrations"
	"github.com/guttosm/finpulse/internal/storage"
)

var errMissingAPIKey = errors.New("INGEST_API_KEY is required for ingestion")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finpulse",
		Short:         "Daily stock price API and ingestion job",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load configuration from environment or .env file
			config.LoadConfig()
			logger.Init()
		},
	}

	root.AddCommand(newAPICmd(), newIngestCmd(), newMigrateCmd())
	return root
}

func newAPICmd() *cobra.Command {
	var (
		port    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Start the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = config.AppConfig.Server.Port
			}
			if migrate {
				if err := withStore(func(db *sql.DB, _ storage.Dialect) error {
					return migrations.Up(db, config.AppConfig.Store.Driver)
				}); err != nil {
					return logFailure("migration failed", err)
				}
			}

			logger.L().Info().Msg("starting API server")

			router, cleanup, err := app.InitializeApp()
			if err != nil {
				return logFailure("app init error", err)
			}

			server := startServer(router, port)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default SERVER_PORT)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

// ingestFlags holds the ingest command overrides of config.IngestionConfig.
type ingestFlags struct {
	symbols  []string
	days     int
	parallel int
}

func (f *ingestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.symbols, "symbols", nil, "symbols to ingest (default INGEST_SYMBOLS)")
	cmd.Flags().IntVar(&f.days, "days", 0, "look-back window in days (default INGEST_DAYS)")
	cmd.Flags().IntVar(&f.parallel, "parallel", 0, "symbols fetched concurrently (default INGEST_PARALLEL)")
}

// apply returns cfg with every flag set on cmd applied. Symbols are
// normalized the same way as INGEST_SYMBOLS.
func (f *ingestFlags) apply(cmd *cobra.Command, cfg config.IngestionConfig) config.IngestionConfig {
	if cmd.Flags().Changed("symbols") {
		cfg.Symbols = config.NormalizeSymbols(f.symbols)
	}
	if cmd.Flags().Changed("days") {
		cfg.Days = f.days
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = f.parallel
	}
	return cfg
}

func newIngestCmd() *cobra.Command {
	var flags ingestFlags

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Pull recent daily bars from the market-data provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.apply(cmd, config.AppConfig.Ingestion)
			if cfg.APIKey == "" {
				return logFailure("ingestion not started", errMissingAPIKey)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withStore(func(db *sql.DB, dialect storage.Dialect) error {
				repo := storage.NewFinancialDataRepository(db, dialect, config.AppConfig.Store.QueryTimeout)
				fetcher := ingestion.NewAlphaVantageClient(cfg.BaseURL, cfg.APIKey, cfg.HTTPTimeout)

				summary, err := ingestion.Run(ctx, fetcher, repo, ingestion.Options{
					Symbols:           cfg.Symbols,
					Days:              cfg.Days,
					Parallel:          cfg.Parallel,
					RequestsPerMinute: cfg.RequestsPerMinute,
				})
				if err != nil {
					return logFailure("ingestion interrupted", err)
				}
				if len(summary.Succeeded) == 0 && len(summary.Failed) > 0 {
					return logFailure("ingestion failed", fmt.Errorf("all %d symbols failed", len(summary.Failed)))
				}
				return nil
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Manage the store schema",
		ValidArgs: []string{"up", "down", "status"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(db *sql.DB, _ storage.Dialect) error {
				if err := migrations.Run(db, config.AppConfig.Store.Driver, args[0]); err != nil {
					return logFailure("migrate "+args[0]+" failed", err)
				}
				return nil
			})
		},
	}
}

// openStore is an indirection for unit testing; defaults to app.InitStore.
var openStore = app.InitStore

// withStore opens the configured store, runs fn and closes the pool.
func withStore(fn func(db *sql.DB, dialect storage.Dialect) error) error {
	dialect, err := storage.DialectFor(config.AppConfig.Store.Driver)
	if err != nil {
		return logFailure("store not configured", err)
	}

	db, err := openStore(config.AppConfig)
	if err != nil {
		return logFailure("db connect error", err)
	}
	defer func() { _ = db.Close() }()

	return fn(db, dialect)
}

// logFailure logs err under msg and returns it so the command exits non-zero.
func logFailure(msg string, err error) error {
	logger.L().Error().Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
