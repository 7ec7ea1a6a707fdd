package services

import (
	"context"

	"github.com/tavisry/marketlens/internal/models"
)

// MarketDataService is the per-market surface consumed by the analytics
// layer and the API handlers. The bool result on externally-sourced
// operations reports whether a stale cached value was served.
type MarketDataService interface {
	ListAllMarkets(ctx context.Context) ([]models.NormalizedMarket, bool, error)
	GetMarketByID(ctx context.Context, marketID string) (models.NormalizedMarket, error)
	GetFilteredMarkets(ctx context.Context, filter models.MarketFilter) ([]models.NormalizedMarket, bool, error)
	GetOrderbook(ctx context.Context, marketID string, depth int) (*models.Orderbook, bool, error)
	GetOrderbookMetrics(ctx context.Context, marketID string) (*models.OrderbookMetrics, bool, error)
	GetTradeStats(ctx context.Context, marketID string, limit int) (*models.TradeStats, bool, error)
	GetMarketHealth(ctx context.Context, marketID string) (*models.MarketHealth, bool, error)
	GetMarketSummary(ctx context.Context, marketID string) (*models.MarketSummary, bool, error)
}

var _ MarketDataService = (*MarketService)(nil)
