package handlers

import (
	"github.com/bizsuite/ledger_app/internal/core/domain"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/bizsuite/ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	pool *pgxpool.Pool,
) {
	registerCustomValidators()
	registerHealthRoutes(r, pool, cfg.EnableDBCheck)
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// The tenant scope is resolved once at startup and attached to every
	// request by reference.
	v1 := r.Group("/api/v1", middleware.TenantScopeMiddleware(cfg.TenantID))

	registerAccountRoutes(v1, services.Account)
	registerEntryRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.Balance, services.Reporting)
	registerFeedRoutes(v1, services.Feed)
	registerExportRoutes(v1, services.Export)
}

// registerCustomValidators attaches request-level validators to gin's binding engine.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		})
	}
}
