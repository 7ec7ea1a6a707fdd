package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tavisry/marketlens/internal/cache"
)

// HealthHandler reports service liveness and cache counters.
type HealthHandler struct {
	cache        *cache.Service
	cacheBackend string
	startedAt    time.Time
	version      string
}

// NewHealthHandler creates the service health endpoint handler.
func NewHealthHandler(cacheService *cache.Service, cacheBackend, version string) *HealthHandler {
	return &HealthHandler{
		cache:        cacheService,
		cacheBackend: cacheBackend,
		startedAt:    time.Now().UTC(),
		version:      version,
	}
}

type healthResponse struct {
	Status       string      `json:"status"`
	Version      string      `json:"version"`
	Uptime       string      `json:"uptime"`
	CacheBackend string      `json:"cache_backend"`
	CacheStats   cache.Stats `json:"cache_stats"`
	Timestamp    time.Time   `json:"timestamp"`
}

func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:       "ok",
		Version:      h.version,
		Uptime:       time.Since(h.startedAt).Round(time.Second).String(),
		CacheBackend: h.cacheBackend,
		CacheStats:   h.cache.Stats(),
		Timestamp:    time.Now().UTC(),
	})
}
