package models

import "time"

// Trade sides. The upstream direction field is mapped asymmetrically:
// anything other than an explicit buy marker counts as a sell.
const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"
)

// NormalizedTrade is a single executed trade with venue-specific numeric
// conversion already applied.
type NormalizedTrade struct {
	TradeID    string    `json:"trade_id"`
	MarketID   string    `json:"market_id"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	Notional   float64   `json:"notional"`
	Side       string    `json:"side"`
	Fee        float64   `json:"fee"`
	ExecutedAt time.Time `json:"executed_at"`
}

// TradeStats aggregates a bounded, most-recent-first window of trades.
// PriceChange compares the newest trade (index 0) against the oldest in the
// window; it is a backward-looking slice, not a calendar open/close. An
// empty window yields all-zero numerics with HasData false.
type TradeStats struct {
	MarketID string `json:"market_id"`
	Ticker   string `json:"ticker"`
	HasData  bool   `json:"has_data"`

	TradeCount    int     `json:"trade_count"`
	TotalVolume   float64 `json:"total_volume"`
	TotalNotional float64 `json:"total_notional"`
	AveragePrice  float64 `json:"average_price"`
	AverageSize   float64 `json:"average_size"`
	HighPrice     float64 `json:"high_price"`
	LowPrice      float64 `json:"low_price"`

	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`

	BuyCount     int     `json:"buy_count"`
	SellCount    int     `json:"sell_count"`
	BuySellRatio float64 `json:"buy_sell_ratio"`

	// Volatility is the sample standard deviation of log returns over the
	// window's normalized prices; 0 when the series is too short.
	Volatility float64 `json:"volatility"`

	GeneratedAt time.Time `json:"generated_at"`
}
