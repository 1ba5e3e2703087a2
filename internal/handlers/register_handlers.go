package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/middleware"
	"github.com/finbooks/finbooks_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.Identity())

	// Per-IP rate limit on the whole API surface; imports and posting are
	// write-heavy.
	if rate, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		slog.Warn("Invalid rate limit format, rate limiting disabled",
			slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
	} else {
		ipLimiter := limiter.New(memory.NewStore(), rate)
		v1.Use(middleware.RateLimit(ipLimiter))
	}

	registerAccountRoutes(v1, services.Account)
	registerImportRoutes(v1, services.Importer)
	registerBankTransactionRoutes(v1, services.BankTransactions, services.Poster)
}
