package handlers

import (
	"net/http"
	"time"

	"robocamp/internal/infrastructure/cache"
	"robocamp/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service health for probes and monitoring
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.CatalogCache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, cache *cache.CatalogCache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health handles GET /health and reports per-dependency status
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	services := gin.H{}

	if err := database.HealthCheck(h.db); err != nil {
		services["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		services["database"] = "healthy"
	}

	if err := h.cache.Ping(c.Request.Context()); err != nil {
		services["cache"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		services["cache"] = "healthy"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}

// Ready handles GET /ready; the service is ready once the database responds
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := database.HealthCheck(h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live handles GET /live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
