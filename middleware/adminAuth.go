package middleware

import (
	"crypto/subtle"
	"net/http"

	"praxis/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the operations console with the configured
// API key, passed in the X-Admin-API-Key header.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := config.AppConfig.AdminAPIKey
		if configured == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access not configured"})
			return
		}
		key := c.GetHeader("X-Admin-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(configured)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
