package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/internal/services"
	"github.com/tavisry/marketlens/internal/utils"
)

// MarketHandler exposes the per-market operations.
type MarketHandler struct {
	service services.MarketDataService
}

// NewMarketHandler creates a market handler over the given service.
func NewMarketHandler(service services.MarketDataService) *MarketHandler {
	return &MarketHandler{service: service}
}

// ListMarkets returns all active markets, optionally filtered by venue kind
// (?type=) and quote symbol (?quote=).
func (h *MarketHandler) ListMarkets(c *gin.Context) {
	filter := models.MarketFilter{
		MarketType:  c.Query("type"),
		QuoteSymbol: c.Query("quote"),
	}
	markets, stale, err := h.service.GetFilteredMarkets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, markets, stale)
}

func (h *MarketHandler) GetMarket(c *gin.Context) {
	market, err := h.service.GetMarketByID(c.Request.Context(), c.Param("marketId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, market, false)
}

func (h *MarketHandler) GetOrderbook(c *gin.Context) {
	depth, err := intQuery(c, "depth")
	if err != nil {
		respondError(c, err)
		return
	}
	book, stale, err := h.service.GetOrderbook(c.Request.Context(), c.Param("marketId"), depth)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, book, stale)
}

func (h *MarketHandler) GetOrderbookMetrics(c *gin.Context) {
	metrics, stale, err := h.service.GetOrderbookMetrics(c.Request.Context(), c.Param("marketId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, metrics, stale)
}

func (h *MarketHandler) GetTradeStats(c *gin.Context) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}
	stats, stale, err := h.service.GetTradeStats(c.Request.Context(), c.Param("marketId"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, stats, stale)
}

func (h *MarketHandler) GetMarketHealth(c *gin.Context) {
	health, stale, err := h.service.GetMarketHealth(c.Request.Context(), c.Param("marketId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, health, stale)
}

func (h *MarketHandler) GetMarketSummary(c *gin.Context) {
	summary, stale, err := h.service.GetMarketSummary(c.Request.Context(), c.Param("marketId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, summary, stale)
}

// intQuery parses an optional integer query parameter; absent yields 0 so
// the service applies its default.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.NewInvalidParameterErrorf("%s must be an integer, got %q", name, raw)
	}
	return value, nil
}
