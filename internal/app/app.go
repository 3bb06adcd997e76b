package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/finpulse/config"
	"github.com/guttosm/finpulse/internal/api"
	"github.com/guttosm/finpulse/internal/logger"
	"github.com/guttosm/finpulse/internal/metrics"
	"github.com/guttosm/finpulse/internal/service"
	"github.com/guttosm/finpulse/internal/storage"
	"github.com/guttosm/finpulse/internal/validator"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the store pool using InitStore().
//   - Initializes the repository layer for the configured SQL dialect.
//   - Wires validator, service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes and pool metrics.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := storeOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	dialect, err := storage.DialectFor(cfg.Store.Driver)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	// Repository (DB access) → service (query use cases) → handler (HTTP mapping)
	repo := storage.NewFinancialDataRepository(db, dialect, cfg.Store.QueryTimeout)
	svc := service.NewFinancialDataService(repo)
	v := validator.New(cfg.API.DefaultLimit, cfg.API.MaxLimit)
	handler := api.NewHandler(svc, v, cfg.API.StrictStatus)

	router := api.NewRouter(handler, cfg.API)

	api.NewHealthHandler(db.PingContext).Register(router)

	if err := metrics.RegisterDBStats(db, cfg.Store.DBName); err != nil {
		logger.L().Warn().Err(err).Msg("pool metrics not registered")
	}

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
