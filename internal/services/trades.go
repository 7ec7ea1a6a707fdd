package services

import (
	"time"

	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/pkg/indexer"
)

// Trade window bounds. The source caps trade listings at 100.
const (
	DefaultTradeWindow = 50
	MaxTradeWindow     = 100
)

const buyDirection = "buy"

// ClampTradeWindow bounds a requested window to [1, MaxTradeWindow],
// substituting the default for non-positive input.
func ClampTradeWindow(limit int) int {
	if limit <= 0 {
		return DefaultTradeWindow
	}
	if limit > MaxTradeWindow {
		return MaxTradeWindow
	}
	return limit
}

// NormalizeTrades converts raw trades (most recent first) with venue-specific
// numeric conversion. Any direction other than the explicit buy marker is a
// sell; that asymmetry comes from the upstream encoding.
func NormalizeTrades(market models.NormalizedMarket, raw []indexer.TradeRecord) []models.NormalizedTrade {
	trades := make([]models.NormalizedTrade, 0, len(raw))
	for _, record := range raw {
		price := venuePrice(market, record.Price)
		quantity := venueQuantity(market, record.Quantity)
		side := models.TradeSideSell
		if record.TradeDirection == buyDirection {
			side = models.TradeSideBuy
		}
		trades = append(trades, models.NormalizedTrade{
			TradeID:    record.TradeID,
			MarketID:   market.MarketID,
			Price:      RoundTo(price, DefaultRoundDigits),
			Quantity:   RoundTo(quantity, DefaultRoundDigits),
			Notional:   RoundTo(price*quantity, DefaultRoundDigits),
			Side:       side,
			Fee:        RoundTo(venueFee(market, record.Fee), DefaultRoundDigits),
			ExecutedAt: time.UnixMilli(record.ExecutedAt).UTC(),
		})
	}
	return trades
}

// ComputeTradeStats aggregates a normalized trade window. The window is
// most-recent-first: price change compares index 0 against the last index,
// a backward-looking slice rather than a calendar open/close.
func ComputeTradeStats(market models.NormalizedMarket, trades []models.NormalizedTrade) *models.TradeStats {
	stats := &models.TradeStats{
		MarketID:    market.MarketID,
		Ticker:      market.Ticker,
		GeneratedAt: time.Now().UTC(),
	}
	if len(trades) == 0 {
		return stats
	}

	prices := make([]float64, 0, len(trades))
	high := trades[0].Price
	low := trades[0].Price
	var totalVolume, totalNotional float64
	var buys, sells int

	for _, trade := range trades {
		prices = append(prices, trade.Price)
		totalVolume += trade.Quantity
		totalNotional += trade.Notional
		if trade.Price > high {
			high = trade.Price
		}
		if trade.Price < low {
			low = trade.Price
		}
		if trade.Side == models.TradeSideBuy {
			buys++
		} else {
			sells++
		}
	}

	newest := prices[0]
	oldest := prices[len(prices)-1]
	change := newest - oldest
	var changePct float64
	if oldest > 0 {
		changePct = change / oldest * 100
	}

	var buySellRatio float64
	if sells > 0 {
		buySellRatio = float64(buys) / float64(sells)
	}

	stats.HasData = true
	stats.TradeCount = len(trades)
	stats.TotalVolume = RoundTo(totalVolume, DefaultRoundDigits)
	stats.TotalNotional = RoundTo(totalNotional, DefaultRoundDigits)
	stats.AveragePrice = RoundTo(mean(prices), DefaultRoundDigits)
	stats.AverageSize = RoundTo(totalVolume/float64(len(trades)), DefaultRoundDigits)
	stats.HighPrice = high
	stats.LowPrice = low
	stats.PriceChange = RoundTo(change, DefaultRoundDigits)
	stats.PriceChangePct = RoundTo(changePct, DefaultRoundDigits)
	stats.BuyCount = buys
	stats.SellCount = sells
	stats.BuySellRatio = RoundTo(buySellRatio, DefaultRoundDigits)
	stats.Volatility = RoundTo(realizedVolatility(prices), DefaultRoundDigits)
	return stats
}

// venueFee converts a trade fee: chain-format on spot, human-scaled on
// derivative, matching the quantity encoding of each venue.
func venueFee(market models.NormalizedMarket, fee string) float64 {
	if market.MarketType == models.MarketTypeDerivative {
		return ParseHumanQuantity(fee)
	}
	return FromChainFormat(fee, market.QuoteDecimals)
}
