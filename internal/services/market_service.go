package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tavisry/marketlens/internal/cache"
	"github.com/tavisry/marketlens/internal/config"
	"github.com/tavisry/marketlens/internal/logging"
	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/internal/utils"
	"github.com/tavisry/marketlens/pkg/indexer"
)

// MarketService serves normalized markets and per-market derived artifacts.
// Every externally-sourced computation goes through the resilient cache, so
// consumers tolerate transient upstream outages without bespoke retries.
type MarketService struct {
	sources map[string]indexer.MarketDataSource
	cache   *cache.Service
	ttl     config.CacheTTLConfig
	logger  *logrus.Entry
}

// NewMarketService wires the venue sources, cache and TTL policy together.
func NewMarketService(sources []indexer.MarketDataSource, cacheService *cache.Service, ttl config.CacheTTLConfig, logger *logrus.Logger) *MarketService {
	byVenue := make(map[string]indexer.MarketDataSource, len(sources))
	for _, source := range sources {
		byVenue[source.Venue()] = source
	}
	return &MarketService{
		sources: byVenue,
		cache:   cacheService,
		ttl:     ttl,
		logger:  logging.WithComponent(logger, "market_service"),
	}
}

// venueOrder fixes iteration order so combined listings are deterministic.
var venueOrder = []string{indexer.VenueSpot, indexer.VenueDerivative}

func (s *MarketService) listVenueMarkets(ctx context.Context, venue string) ([]models.NormalizedMarket, bool, error) {
	source, ok := s.sources[venue]
	if !ok {
		return nil, false, utils.NewUpstreamError(fmt.Sprintf("no %s data source configured", venue), nil)
	}

	key := "markets:" + venue
	return cache.GetOrCompute(ctx, s.cache, key, s.ttl.Markets, func(ctx context.Context) ([]models.NormalizedMarket, error) {
		raw, err := source.ListMarkets(ctx)
		if err != nil {
			return nil, utils.NewUpstreamError(fmt.Sprintf("failed to list %s markets", venue), err)
		}
		markets, err := NormalizeMarkets(raw)
		if err != nil {
			return nil, err
		}
		s.logger.WithFields(logrus.Fields{"venue": venue, "count": len(markets)}).Debug("refreshed venue markets")
		return markets, nil
	})
}

// ListAllMarkets returns the active normalized markets of both venues.
func (s *MarketService) ListAllMarkets(ctx context.Context) ([]models.NormalizedMarket, bool, error) {
	var markets []models.NormalizedMarket
	var stale bool
	for _, venue := range venueOrder {
		venueMarkets, venueStale, err := s.listVenueMarkets(ctx, venue)
		if err != nil {
			return nil, false, err
		}
		markets = append(markets, venueMarkets...)
		stale = stale || venueStale
	}
	return markets, stale, nil
}

// GetMarketByID resolves one market or reports not-found.
func (s *MarketService) GetMarketByID(ctx context.Context, marketID string) (models.NormalizedMarket, error) {
	markets, _, err := s.ListAllMarkets(ctx)
	if err != nil {
		return models.NormalizedMarket{}, err
	}
	for _, market := range markets {
		if market.MarketID == marketID {
			return market, nil
		}
	}
	return models.NormalizedMarket{}, utils.NewNotFoundErrorf("market %s not found", marketID)
}

// GetFilteredMarkets narrows the market set by venue kind and quote symbol.
func (s *MarketService) GetFilteredMarkets(ctx context.Context, filter models.MarketFilter) ([]models.NormalizedMarket, bool, error) {
	switch filter.MarketType {
	case "", models.MarketTypeSpot, models.MarketTypeDerivative:
	default:
		return nil, false, utils.NewInvalidParameterErrorf("invalid market type %q", filter.MarketType)
	}

	markets, stale, err := s.ListAllMarkets(ctx)
	if err != nil {
		return nil, false, err
	}

	filtered := make([]models.NormalizedMarket, 0, len(markets))
	for _, market := range markets {
		if filter.MarketType != "" && market.MarketType != filter.MarketType {
			continue
		}
		if filter.QuoteSymbol != "" && !strings.EqualFold(market.QuoteSymbol, filter.QuoteSymbol) {
			continue
		}
		filtered = append(filtered, market)
	}
	return filtered, stale, nil
}

// GetOrderbook returns the normalized, leveled book for a market.
func (s *MarketService) GetOrderbook(ctx context.Context, marketID string, depth int) (*models.Orderbook, bool, error) {
	market, err := s.GetMarketByID(ctx, marketID)
	if err != nil {
		return nil, false, err
	}

	depth = ClampDepth(depth)
	key := fmt.Sprintf("orderbook:%s:%d", marketID, depth)
	return cache.GetOrCompute(ctx, s.cache, key, s.ttl.Orderbook, func(ctx context.Context) (*models.Orderbook, error) {
		source, ok := s.sources[market.MarketType]
		if !ok {
			return nil, utils.NewUpstreamError(fmt.Sprintf("no %s data source configured", market.MarketType), nil)
		}
		raw, err := source.FetchOrderbook(ctx, marketID)
		if err != nil {
			return nil, utils.NewUpstreamError(fmt.Sprintf("failed to fetch orderbook for %s", marketID), err)
		}
		return BuildOrderbook(market, raw, depth), nil
	})
}

// GetOrderbookMetrics derives the book summary from the cached book.
func (s *MarketService) GetOrderbookMetrics(ctx context.Context, marketID string) (*models.OrderbookMetrics, bool, error) {
	market, err := s.GetMarketByID(ctx, marketID)
	if err != nil {
		return nil, false, err
	}
	book, stale, err := s.GetOrderbook(ctx, marketID, DefaultOrderbookDepth)
	if err != nil {
		return nil, false, err
	}
	return ComputeOrderbookMetrics(market, book), stale, nil
}

// GetTradeStats returns statistics over a bounded recent-trade window.
func (s *MarketService) GetTradeStats(ctx context.Context, marketID string, limit int) (*models.TradeStats, bool, error) {
	market, err := s.GetMarketByID(ctx, marketID)
	if err != nil {
		return nil, false, err
	}

	limit = ClampTradeWindow(limit)
	key := fmt.Sprintf("trades:%s:%d", marketID, limit)
	return cache.GetOrCompute(ctx, s.cache, key, s.ttl.Trades, func(ctx context.Context) (*models.TradeStats, error) {
		source, ok := s.sources[market.MarketType]
		if !ok {
			return nil, utils.NewUpstreamError(fmt.Sprintf("no %s data source configured", market.MarketType), nil)
		}
		raw, err := source.FetchTrades(ctx, marketID, limit)
		if err != nil {
			return nil, utils.NewUpstreamError(fmt.Sprintf("failed to fetch trades for %s", marketID), err)
		}
		return ComputeTradeStats(market, NormalizeTrades(market, raw)), nil
	})
}

// GetMarketHealth composes the weighted health score for one market.
// Failures here propagate: a single-market lookup is not a fan-out.
func (s *MarketService) GetMarketHealth(ctx context.Context, marketID string) (*models.MarketHealth, bool, error) {
	market, err := s.GetMarketByID(ctx, marketID)
	if err != nil {
		return nil, false, err
	}

	key := "health:" + marketID
	return cache.GetOrCompute(ctx, s.cache, key, s.ttl.Health, func(ctx context.Context) (*models.MarketHealth, error) {
		book, _, err := s.GetOrderbookMetrics(ctx, marketID)
		if err != nil {
			return nil, err
		}
		stats, _, err := s.GetTradeStats(ctx, marketID, MaxTradeWindow)
		if err != nil {
			return nil, err
		}
		return ComposeMarketHealth(market, book, stats), nil
	})
}

// GetMarketSummary bundles the market with all its derived artifacts.
func (s *MarketService) GetMarketSummary(ctx context.Context, marketID string) (*models.MarketSummary, bool, error) {
	market, err := s.GetMarketByID(ctx, marketID)
	if err != nil {
		return nil, false, err
	}

	key := "summary:" + marketID
	return cache.GetOrCompute(ctx, s.cache, key, s.ttl.Summary, func(ctx context.Context) (*models.MarketSummary, error) {
		book, _, err := s.GetOrderbookMetrics(ctx, marketID)
		if err != nil {
			return nil, err
		}
		stats, _, err := s.GetTradeStats(ctx, marketID, MaxTradeWindow)
		if err != nil {
			return nil, err
		}
		health := ComposeMarketHealth(market, book, stats)
		return &models.MarketSummary{
			Market:      market,
			Orderbook:   book,
			Trades:      stats,
			Health:      health,
			GeneratedAt: health.GeneratedAt,
		}, nil
	})
}
