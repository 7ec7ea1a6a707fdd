package services

import (
	"math"
	"time"

	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/pkg/indexer"
)

// Depth bounds for order book requests. The source caps levels at 50.
const (
	DefaultOrderbookDepth = 20
	MaxOrderbookDepth     = 50
)

// ClampDepth bounds a requested level count to [1, MaxOrderbookDepth],
// substituting the default for non-positive input.
func ClampDepth(depth int) int {
	if depth <= 0 {
		return DefaultOrderbookDepth
	}
	if depth > MaxOrderbookDepth {
		return MaxOrderbookDepth
	}
	return depth
}

// BuildOrderbook converts raw chain-format levels into a normalized book
// with per-level cumulative quantity and notional value.
func BuildOrderbook(market models.NormalizedMarket, raw *indexer.RawOrderbook, depth int) *models.Orderbook {
	depth = ClampDepth(depth)
	return &models.Orderbook{
		MarketID:  market.MarketID,
		Ticker:    market.Ticker,
		Bids:      convertLevels(market, raw.Buys, depth),
		Asks:      convertLevels(market, raw.Sells, depth),
		Timestamp: time.Now().UTC(),
	}
}

func convertLevels(market models.NormalizedMarket, raw []indexer.PriceLevel, depth int) []models.OrderbookLevel {
	if len(raw) > depth {
		raw = raw[:depth]
	}
	levels := make([]models.OrderbookLevel, 0, len(raw))
	cumulative := 0.0
	for _, level := range raw {
		price := venuePrice(market, level.Price)
		quantity := venueQuantity(market, level.Quantity)
		cumulative += quantity
		levels = append(levels, models.OrderbookLevel{
			Price:    RoundTo(price, DefaultRoundDigits),
			Quantity: RoundTo(quantity, DefaultRoundDigits),
			Total:    RoundTo(cumulative, DefaultRoundDigits),
			Notional: RoundTo(price*quantity, DefaultRoundDigits),
		})
	}
	return levels
}

// ComputeOrderbookMetrics derives the book summary: mid, spread, per-side
// depth and the [0,1] depth imbalance.
func ComputeOrderbookMetrics(market models.NormalizedMarket, book *models.Orderbook) *models.OrderbookMetrics {
	var bestBid, bestAsk float64
	if len(book.Bids) > 0 {
		bestBid = book.Bids[0].Price
	}
	if len(book.Asks) > 0 {
		bestAsk = book.Asks[0].Price
	}

	var midPrice, spread float64
	if bestBid > 0 && bestAsk > 0 {
		midPrice = (bestBid + bestAsk) / 2
		spread = bestAsk - bestBid
	}

	var bidDepth, askDepth, bidNotional, askNotional float64
	if len(book.Bids) > 0 {
		bidDepth = book.Bids[len(book.Bids)-1].Total
	}
	if len(book.Asks) > 0 {
		askDepth = book.Asks[len(book.Asks)-1].Total
	}
	for _, level := range book.Bids {
		bidNotional += level.Notional
	}
	for _, level := range book.Asks {
		askNotional += level.Notional
	}

	return &models.OrderbookMetrics{
		MarketID:         market.MarketID,
		Ticker:           market.Ticker,
		MidPrice:         RoundTo(midPrice, DefaultRoundDigits),
		BestBid:          bestBid,
		BestAsk:          bestAsk,
		Spread:           RoundTo(spread, DefaultRoundDigits),
		SpreadBps:        RoundTo(relativeSpreadBps(bestBid, bestAsk), DefaultRoundDigits),
		BidDepthTotal:    bidDepth,
		AskDepthTotal:    askDepth,
		BidNotionalDepth: RoundTo(bidNotional, DefaultRoundDigits),
		AskNotionalDepth: RoundTo(askNotional, DefaultRoundDigits),
		DepthImbalance:   RoundTo(depthImbalance(bidNotional, askNotional), DefaultRoundDigits),
		BidLevels:        len(book.Bids),
		AskLevels:        len(book.Asks),
		Timestamp:        book.Timestamp,
	}
}

// relativeSpreadBps is the bid/ask spread in basis points of the mid price,
// 0 whenever either side is non-positive.
func relativeSpreadBps(bestBid, bestAsk float64) float64 {
	if bestBid <= 0 || bestAsk <= 0 {
		return 0
	}
	midPrice := (bestBid + bestAsk) / 2
	if midPrice == 0 {
		return 0
	}
	return (bestAsk - bestBid) / midPrice * 10000
}

// depthImbalance measures how lopsided bid vs. ask notional depth is:
// |bid-ask| / (bid+ask), 0 when both sides are empty.
func depthImbalance(bidNotional, askNotional float64) float64 {
	total := bidNotional + askNotional
	if total == 0 {
		return 0
	}
	return math.Abs(bidNotional-askNotional) / total
}

// venuePrice converts a chain-format price using the market's venue kind.
func venuePrice(market models.NormalizedMarket, price string) float64 {
	if market.MarketType == models.MarketTypeDerivative {
		return DerivativePriceFromChain(price, market.QuoteDecimals)
	}
	return SpotPriceFromChain(price, market.BaseDecimals, market.QuoteDecimals)
}

// venueQuantity converts a quantity using the market's venue kind.
// Derivative quantities arrive human-scaled.
func venueQuantity(market models.NormalizedMarket, quantity string) float64 {
	if market.MarketType == models.MarketTypeDerivative {
		return ParseHumanQuantity(quantity)
	}
	return SpotQuantityFromChain(quantity, market.BaseDecimals)
}
