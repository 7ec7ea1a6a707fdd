package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tavisry/marketlens/internal/services"
)

// AnalyticsHandler exposes the cross-market aggregate operations.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates an analytics handler over the aggregator.
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	overview, stale, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, overview, stale)
}

// GetRankings ranks markets by ?metric= (default volume), optionally
// restricted to one venue kind via ?type= and bounded by ?limit=.
func (h *AnalyticsHandler) GetRankings(c *gin.Context) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}
	metric := c.DefaultQuery("metric", services.RankingMetricVolume)
	rankings, stale, err := h.service.GetRankings(c.Request.Context(), metric, c.Query("type"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, rankings, stale)
}

// CompareMarkets compares the markets listed in ?markets= (comma separated).
func (h *AnalyticsHandler) CompareMarkets(c *gin.Context) {
	var marketIDs []string
	for _, id := range strings.Split(c.Query("markets"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			marketIDs = append(marketIDs, id)
		}
	}
	comparison, err := h.service.CompareMarkets(c.Request.Context(), marketIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, comparison, false)
}
