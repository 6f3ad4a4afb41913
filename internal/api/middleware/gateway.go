package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Headers set by the upstream gateway once it has authenticated the caller
const (
	headerUserID    = "X-User-ID"
	headerUserEmail = "X-User-Email"
	headerUserPlan  = "X-User-Plan"
)

// GatewayAuth trusts caller identity from gateway headers. Only enable it
// (AUTH_MODE=gateway) when the API is reachable solely through the gateway.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.GetHeader(headerUserID)
		if userIDStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing " + headerUserID + " header from gateway",
			})
			return
		}

		// Numeric IDs are kept as uint for logging, everything else as string
		if id, err := strconv.ParseUint(userIDStr, 10, 64); err == nil {
			c.Set("user_id", uint(id))
		} else {
			c.Set("user_id", userIDStr)
		}
		c.Set("user_id_str", userIDStr)
		c.Set("user_email", c.GetHeader(headerUserEmail))
		if plan := c.GetHeader(headerUserPlan); plan != "" {
			c.Set("user_plan", plan)
		}

		c.Next()
	}
}

// GetUserIDFromGateway returns the caller ID set by GatewayAuth or NoAuth
func GetUserIDFromGateway(c *gin.Context) (string, bool) {
	id, ok := c.Get("user_id_str")
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
