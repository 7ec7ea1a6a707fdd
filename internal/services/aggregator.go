package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tavisry/marketlens/internal/cache"
	"github.com/tavisry/marketlens/internal/config"
	"github.com/tavisry/marketlens/internal/logging"
	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/internal/utils"
)

// Ranking metrics. Spread ranks ascending (tighter is better); everything
// else ranks descending.
const (
	RankingMetricVolume     = "volume"
	RankingMetricLiquidity  = "liquidity"
	RankingMetricSpread     = "spread"
	RankingMetricHealth     = "health"
	RankingMetricVolatility = "volatility"
)

// Comparison set bounds.
const (
	MinCompareMarkets = 2
	MaxCompareMarkets = 5
)

var validRankingMetrics = map[string]bool{
	RankingMetricVolume:     true,
	RankingMetricLiquidity:  true,
	RankingMetricSpread:     true,
	RankingMetricHealth:     true,
	RankingMetricVolatility: true,
}

// AnalyticsService orchestrates concurrent per-market computation across a
// bounded working subset of markets. Individual market failures are absorbed
// and dropped from the aggregate.
type AnalyticsService struct {
	markets MarketDataService
	cache   *cache.Service
	cfg     config.AnalyticsConfig
	ttl     time.Duration
	logger  *logrus.Entry
}

// NewAnalyticsService wires the aggregator over the per-market service.
func NewAnalyticsService(markets MarketDataService, cacheService *cache.Service, cfg config.AnalyticsConfig, ttl time.Duration, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		markets: markets,
		cache:   cacheService,
		cfg:     cfg,
		ttl:     ttl,
		logger:  logging.WithComponent(logger, "analytics_service"),
	}
}

// fanOutSummaries issues one concurrent summary computation per market and
// joins on all of them: a failed market is dropped, never cancels the rest.
// Results keep issue order so ties break first-issued-wins.
func (s *AnalyticsService) fanOutSummaries(ctx context.Context, markets []models.NormalizedMarket) []*models.MarketSummary {
	results := make([]*models.MarketSummary, len(markets))
	var wg sync.WaitGroup
	for i, market := range markets {
		wg.Add(1)
		go func(i int, marketID string) {
			defer wg.Done()
			summary, _, err := s.markets.GetMarketSummary(ctx, marketID)
			if err != nil {
				s.logger.WithField("market_id", marketID).WithError(err).Warn("dropping market from aggregate")
				return
			}
			results[i] = summary
		}(i, market.MarketID)
	}
	wg.Wait()

	collected := make([]*models.MarketSummary, 0, len(results))
	for _, summary := range results {
		if summary != nil {
			collected = append(collected, summary)
		}
	}
	return collected
}

// workingSet bounds the fan-out width against the upstream service.
func (s *AnalyticsService) workingSet(markets []models.NormalizedMarket) []models.NormalizedMarket {
	if len(markets) > s.cfg.MaxMarkets {
		return markets[:s.cfg.MaxMarkets]
	}
	return markets
}

// GetOverview builds the ecosystem-level aggregate.
func (s *AnalyticsService) GetOverview(ctx context.Context) (*models.AnalyticsOverview, bool, error) {
	return cache.GetOrCompute(ctx, s.cache, "analytics:overview", s.ttl, func(ctx context.Context) (*models.AnalyticsOverview, error) {
		markets, _, err := s.markets.ListAllMarkets(ctx)
		if err != nil {
			return nil, err
		}

		overview := &models.AnalyticsOverview{
			TotalMarkets: len(markets),
			GeneratedAt:  time.Now().UTC(),
		}
		for _, market := range markets {
			if market.MarketType == models.MarketTypeSpot {
				overview.SpotMarkets++
			} else {
				overview.DerivativeMarkets++
			}
		}

		summaries := s.fanOutSummaries(ctx, s.workingSet(markets))
		overview.MarketsAnalyzed = len(summaries)

		var healthTotal float64
		for _, summary := range summaries {
			overview.TotalNotionalVolume += summary.Trades.TotalNotional
			overview.TotalTradeCount += summary.Trades.TradeCount
			healthTotal += float64(summary.Health.Score)
		}
		if len(summaries) > 0 {
			overview.AverageHealthScore = RoundTo(healthTotal/float64(len(summaries)), 2)
		}
		overview.TotalNotionalVolume = RoundTo(overview.TotalNotionalVolume, DefaultRoundDigits)

		sorted := make([]*models.MarketSummary, len(summaries))
		copy(sorted, summaries)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Trades.TotalNotional > sorted[j].Trades.TotalNotional
		})
		topN := s.cfg.OverviewTopN
		if topN > len(sorted) {
			topN = len(sorted)
		}
		for i := 0; i < topN; i++ {
			overview.TopByVolume = append(overview.TopByVolume, models.MarketRanking{
				Rank:       i + 1,
				MarketID:   sorted[i].Market.MarketID,
				Ticker:     sorted[i].Market.Ticker,
				MarketType: sorted[i].Market.MarketType,
				Metric:     RankingMetricVolume,
				Value:      RoundTo(sorted[i].Trades.TotalNotional, DefaultRoundDigits),
			})
		}
		return overview, nil
	})
}

// GetRankings ranks markets by the requested metric. Spread sorts ascending;
// every other metric sorts descending. Rank is the 1-based position after
// sorting.
func (s *AnalyticsService) GetRankings(ctx context.Context, metric, marketType string, limit int) (*models.MarketRankings, bool, error) {
	if !validRankingMetrics[metric] {
		return nil, false, utils.NewInvalidParameterErrorf("invalid ranking metric %q", metric)
	}
	switch marketType {
	case "", models.MarketTypeSpot, models.MarketTypeDerivative:
	default:
		return nil, false, utils.NewInvalidParameterErrorf("invalid market type %q", marketType)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultRankingLimit
	}
	if limit > s.cfg.MaxRankingLimit {
		limit = s.cfg.MaxRankingLimit
	}

	typeKey := marketType
	if typeKey == "" {
		typeKey = "all"
	}
	key := fmt.Sprintf("analytics:rankings:%s:%s:%d", metric, typeKey, limit)

	return cache.GetOrCompute(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*models.MarketRankings, error) {
		markets, _, err := s.markets.GetFilteredMarkets(ctx, models.MarketFilter{MarketType: marketType})
		if err != nil {
			return nil, err
		}

		summaries := s.fanOutSummaries(ctx, s.workingSet(markets))
		sort.SliceStable(summaries, func(i, j int) bool {
			a := rankingValue(summaries[i], metric)
			b := rankingValue(summaries[j], metric)
			if metric == RankingMetricSpread {
				return a < b
			}
			return a > b
		})
		if len(summaries) > limit {
			summaries = summaries[:limit]
		}

		rankings := &models.MarketRankings{
			Metric:      metric,
			MarketType:  typeKey,
			Entries:     make([]models.MarketRanking, 0, len(summaries)),
			GeneratedAt: time.Now().UTC(),
		}
		for i, summary := range summaries {
			rankings.Entries = append(rankings.Entries, models.MarketRanking{
				Rank:       i + 1,
				MarketID:   summary.Market.MarketID,
				Ticker:     summary.Market.Ticker,
				MarketType: summary.Market.MarketType,
				Metric:     metric,
				Value:      RoundTo(rankingValue(summary, metric), DefaultRoundDigits),
			})
		}
		return rankings, nil
	})
}

// CompareMarkets builds a side-by-side comparison of 2-5 markets. Market
// existence is validated up front; upstream failures during the fan-out drop
// the affected market from the comparison.
func (s *AnalyticsService) CompareMarkets(ctx context.Context, marketIDs []string) (*models.MarketComparison, error) {
	if len(marketIDs) < MinCompareMarkets || len(marketIDs) > MaxCompareMarkets {
		return nil, utils.NewInvalidParameterErrorf("comparison requires %d to %d markets, got %d",
			MinCompareMarkets, MaxCompareMarkets, len(marketIDs))
	}

	markets := make([]models.NormalizedMarket, 0, len(marketIDs))
	for _, marketID := range marketIDs {
		market, err := s.markets.GetMarketByID(ctx, marketID)
		if err != nil {
			return nil, err
		}
		markets = append(markets, market)
	}

	summaries := s.fanOutSummaries(ctx, markets)

	comparison := &models.MarketComparison{
		Entries:     make([]models.MarketComparisonEntry, 0, len(summaries)),
		GeneratedAt: time.Now().UTC(),
	}
	for i, summary := range summaries {
		entry := models.MarketComparisonEntry{
			MarketID:       summary.Market.MarketID,
			Ticker:         summary.Market.Ticker,
			MarketType:     summary.Market.MarketType,
			SpreadBps:      summary.Orderbook.SpreadBps,
			LiquidityDepth: RoundTo(summary.Orderbook.BidNotionalDepth+summary.Orderbook.AskNotionalDepth, DefaultRoundDigits),
			NotionalVolume: summary.Trades.TotalNotional,
			HealthScore:    summary.Health.Score,
		}
		comparison.Entries = append(comparison.Entries, entry)

		if i == 0 {
			comparison.BestSpread = entry.MarketID
			comparison.BestLiquidity = entry.MarketID
			comparison.BestHealth = entry.MarketID
			continue
		}
		if entry.SpreadBps < bestEntry(comparison, comparison.BestSpread).SpreadBps {
			comparison.BestSpread = entry.MarketID
		}
		if entry.LiquidityDepth > bestEntry(comparison, comparison.BestLiquidity).LiquidityDepth {
			comparison.BestLiquidity = entry.MarketID
		}
		if entry.HealthScore > bestEntry(comparison, comparison.BestHealth).HealthScore {
			comparison.BestHealth = entry.MarketID
		}
	}
	return comparison, nil
}

func bestEntry(comparison *models.MarketComparison, marketID string) models.MarketComparisonEntry {
	for _, entry := range comparison.Entries {
		if entry.MarketID == marketID {
			return entry
		}
	}
	return models.MarketComparisonEntry{}
}

func rankingValue(summary *models.MarketSummary, metric string) float64 {
	switch metric {
	case RankingMetricVolume:
		return summary.Trades.TotalNotional
	case RankingMetricLiquidity:
		return summary.Orderbook.BidNotionalDepth + summary.Orderbook.AskNotionalDepth
	case RankingMetricSpread:
		return summary.Orderbook.SpreadBps
	case RankingMetricHealth:
		return float64(summary.Health.Score)
	case RankingMetricVolatility:
		return summary.Trades.Volatility
	default:
		return 0
	}
}
