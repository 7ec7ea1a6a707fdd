package models

import "time"

// OrderbookLevel is a single normalized price level. Total is the cumulative
// quantity up to and including this level on its side; Notional is
// price * quantity in quote units.
type OrderbookLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
	Notional float64 `json:"notional"`
}

// Orderbook is a normalized, leveled book snapshot. Levels are ordered by
// proximity to the mid price: best bid first, best ask first.
type Orderbook struct {
	MarketID  string           `json:"market_id"`
	Ticker    string           `json:"ticker"`
	Bids      []OrderbookLevel `json:"bids"`
	Asks      []OrderbookLevel `json:"asks"`
	Timestamp time.Time        `json:"timestamp"`
}

// OrderbookMetrics summarizes a book snapshot for liquidity assessment.
// DepthImbalance is in [0,1]: 0 when bid and ask notional depth are equal
// (or both zero), 1 when exactly one side holds all the depth.
type OrderbookMetrics struct {
	MarketID string `json:"market_id"`
	Ticker   string `json:"ticker"`

	MidPrice  float64 `json:"mid_price"`
	BestBid   float64 `json:"best_bid"`
	BestAsk   float64 `json:"best_ask"`
	Spread    float64 `json:"spread"`
	SpreadBps float64 `json:"spread_bps"`

	BidDepthTotal    float64 `json:"bid_depth_total"`
	AskDepthTotal    float64 `json:"ask_depth_total"`
	BidNotionalDepth float64 `json:"bid_notional_depth"`
	AskNotionalDepth float64 `json:"ask_notional_depth"`
	DepthImbalance   float64 `json:"depth_imbalance"`

	BidLevels int       `json:"bid_levels"`
	AskLevels int       `json:"ask_levels"`
	Timestamp time.Time `json:"timestamp"`
}
