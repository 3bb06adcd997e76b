package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/finpulse/config"
	"github.com/guttosm/finpulse/internal/metrics"
	"github.com/guttosm/finpulse/internal/middleware"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler,
//     Metrics) and a per-IP RateLimiter on the /api group only.
//   - Bounds every request context with cfg.RequestTimeout.
//   - Mounts Swagger docs (/swagger/*any) and prometheus metrics (/metrics).
//   - Configures API routes (/api).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg config.APIConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.Metrics(),
		middleware.RequestTimeout(cfg.RequestTimeout),
	)

	// ─── Swagger & metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ─── API ──────────────────────────────────────
	// Probes and scrapes are not charged against the client budget.
	api := router.Group("/api", middleware.RateLimiter(cfg.RateLimitPerMinute))
	{
		api.GET("/financial_data", handler.GetFinancialData)
		api.GET("/statistics", handler.GetStatistics)
	}

	return router
}
