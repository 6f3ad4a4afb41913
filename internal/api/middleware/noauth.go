package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoAuth is a pass-through middleware for when AUTH_MODE=none.
// It allows all requests without authentication.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Set a dummy user ID for logging purposes
		c.Set("user_id", uint(0))
		c.Set("user_id_str", "anonymous")
		c.Next()
	}
}

// Auth picks the auth middleware for the configured mode
func Auth(gatewayMode bool) gin.HandlerFunc {
	if gatewayMode {
		return GatewayAuth()
	}
	return NoAuth()
}
