package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// TenantScopeMiddleware injects the tenant scope resolved once at startup into
// every request. The scope is constructed by config.ResolveTenantScope with a
// fixed precedence (explicit value, profile-derived value, placeholder
// sentinel) and passed here by reference instead of being re-derived per call.
//
// The X-Acting-User header identifies the acting user for audit fields; the
// surrounding suite's session layer owns real authentication.
func TenantScopeMiddleware(tenantID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(tenantKey), tenantID)
		// Services receive c.Request.Context(), not the gin context, so the
		// scope rides the request context too.
		c.Request = c.Request.WithContext(WithTenant(c.Request.Context(), tenantID))

		actingUser := c.GetHeader("X-Acting-User")
		if actingUser == "" {
			actingUser = "system"
		}
		c.Set(string(userIDKey), actingUser)

		GetLoggerFromCtx(c.Request.Context()).Debug("Tenant scope attached",
			slog.String("tenant_id", tenantID),
			slog.String("acting_user", actingUser))

		c.Next()
	}
}
