package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// tenantKey is the key used to store the resolved tenant scope in the context.
const tenantKey = contextKey("tenantID")

// userIDKey is the key used to store the acting user's ID in the context.
const userIDKey = contextKey("userID")

// GetTenantFromContext retrieves the resolved tenant scope from the Gin context.
func GetTenantFromContext(c *gin.Context) (string, bool) {
	tenantVal, exists := c.Get(string(tenantKey))
	if !exists {
		// Check the request context as well.
		val := c.Request.Context().Value(tenantKey)
		if val != nil {
			return val.(string), true
		}
		return "", false
	}

	tenantID, ok := tenantVal.(string)
	if !ok {
		return "", false
	}
	return tenantID, true
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		val := c.Request.Context().Value(userIDKey)
		if val != nil {
			return val.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// WithTenant returns a context carrying the given tenant scope.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey, tenantID)
}
