package middleware

import (
	"net/http"
	"strings"

	"bookify/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware gates resource-mutation endpoints behind the static
// admin bearer token from config. An empty configured token disables the
// endpoints entirely rather than leaving them open.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if config.AppConfig.AdminToken == "" || token != config.AppConfig.AdminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
