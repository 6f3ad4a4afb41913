package middleware

import (
	"net/http"

	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit rejects clients that exceed their token bucket with 429.
// Gateway users are keyed by user ID, everyone else by client IP.
func RateLimit(limiter *ratelimit.KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := GetUserIDFromGateway(c); ok && userID != "anonymous" {
			key = "user:" + userID
		}

		if !limiter.Allow(key) {
			logger.Warn("Rate limit exceeded", logger.Fields{
				"key":  key,
				"path": c.Request.URL.Path,
			})
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
