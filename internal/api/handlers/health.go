package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports the state of the catalogue store and the memo cache
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.FingeringCache
}

// NewHealthHandler creates a health handler. Both arguments may be nil.
func NewHealthHandler(db *gorm.DB, fc *cache.FingeringCache) *HealthHandler {
	return &HealthHandler{db: db, cache: fc}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK

	catalogue := gin.H{"backend": "memory", "status": "ok"}
	if h.db != nil {
		catalogue["backend"] = "postgres"
		if err := h.pingDatabase(c.Request.Context()); err != nil {
			catalogue["status"] = "unreachable"
			catalogue["error"] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	cacheInfo := gin.H{"status": "disabled"}
	if h.cache != nil {
		cacheInfo["status"] = "ok"
		if n, err := h.cache.Len(); err != nil {
			cacheInfo["status"] = "error"
			cacheInfo["error"] = err.Error()
		} else {
			cacheInfo["entries"] = n
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"catalogue": catalogue,
		"cache":     cacheInfo,
	})
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
