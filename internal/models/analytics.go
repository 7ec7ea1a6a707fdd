package models

import "time"

// MarketSummary bundles a market's per-market artifacts into one snapshot.
// Individual sections may be nil when the corresponding upstream fetch
// failed inside a fan-out.
type MarketSummary struct {
	Market      NormalizedMarket  `json:"market"`
	Orderbook   *OrderbookMetrics `json:"orderbook_metrics,omitempty"`
	Trades      *TradeStats       `json:"trade_stats,omitempty"`
	Health      *MarketHealth     `json:"health,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// AnalyticsOverview is the ecosystem-level aggregate, derived purely from
// cached per-market results.
type AnalyticsOverview struct {
	TotalMarkets      int `json:"total_markets"`
	SpotMarkets       int `json:"spot_markets"`
	DerivativeMarkets int `json:"derivative_markets"`
	MarketsAnalyzed   int `json:"markets_analyzed"`

	TotalNotionalVolume float64 `json:"total_notional_volume"`
	TotalTradeCount     int     `json:"total_trade_count"`
	AverageHealthScore  float64 `json:"average_health_score"`

	TopByVolume []MarketRanking `json:"top_by_volume"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// MarketRanking is one row of a ranked cross-market listing. Rank is the
// 1-based position after sorting; Value is rounded to 6 decimal digits.
type MarketRanking struct {
	Rank       int     `json:"rank"`
	MarketID   string  `json:"market_id"`
	Ticker     string  `json:"ticker"`
	MarketType string  `json:"market_type"`
	Metric     string  `json:"metric"`
	Value      float64 `json:"value"`
}

// MarketRankings is the result of a ranking-by-metric operation.
type MarketRankings struct {
	Metric      string          `json:"metric"`
	MarketType  string          `json:"market_type"`
	Entries     []MarketRanking `json:"entries"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// MarketComparisonEntry is one side-by-side comparison row.
type MarketComparisonEntry struct {
	MarketID       string  `json:"market_id"`
	Ticker         string  `json:"ticker"`
	MarketType     string  `json:"market_type"`
	SpreadBps      float64 `json:"spread_bps"`
	LiquidityDepth float64 `json:"liquidity_depth"`
	NotionalVolume float64 `json:"notional_volume"`
	HealthScore    int     `json:"health_score"`
}

// MarketComparison compares 2-5 caller-specified markets. The Best fields
// hold the market ID with the extremal value across the compared set.
type MarketComparison struct {
	Entries       []MarketComparisonEntry `json:"entries"`
	BestSpread    string                  `json:"best_spread"`
	BestLiquidity string                  `json:"best_liquidity"`
	BestHealth    string                  `json:"best_health"`
	GeneratedAt   time.Time               `json:"generated_at"`
}
