package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tavisry/marketlens/internal/api/handlers"
)

// SetupRoutes mounts the service surface on the router.
func SetupRoutes(router *gin.Engine, market *handlers.MarketHandler, analytics *handlers.AnalyticsHandler, health *handlers.HealthHandler) {
	router.Use(RequestID())

	router.GET("/health", health.Status)

	v1 := router.Group("/api/v1")
	{
		markets := v1.Group("/markets")
		{
			markets.GET("", market.ListMarkets)
			markets.GET("/:marketId", market.GetMarket)
			markets.GET("/:marketId/orderbook", market.GetOrderbook)
			markets.GET("/:marketId/orderbook/metrics", market.GetOrderbookMetrics)
			markets.GET("/:marketId/trades/stats", market.GetTradeStats)
			markets.GET("/:marketId/health", market.GetMarketHealth)
			markets.GET("/:marketId/summary", market.GetMarketSummary)
		}

		analyticsGroup := v1.Group("/analytics")
		{
			analyticsGroup.GET("/overview", analytics.GetOverview)
			analyticsGroup.GET("/rankings", analytics.GetRankings)
			analyticsGroup.GET("/compare", analytics.CompareMarkets)
		}
	}
}
