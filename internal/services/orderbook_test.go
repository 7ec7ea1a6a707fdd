package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/pkg/indexer"
)

func derivativeMarket() models.NormalizedMarket {
	return models.NormalizedMarket{
		MarketID:      "0xderiv1",
		Ticker:        "BTC/USDT PERP",
		MarketType:    models.MarketTypeDerivative,
		BaseDecimals:  DerivativeBaseDecimals,
		QuoteDecimals: 6,
	}
}

// chain-format derivative levels: price / 10^6, quantity human-scaled.
func sampleRawBook() *indexer.RawOrderbook {
	return &indexer.RawOrderbook{
		Buys: []indexer.PriceLevel{
			{Price: "99500000", Quantity: "2"},
			{Price: "99000000", Quantity: "3"},
		},
		Sells: []indexer.PriceLevel{
			{Price: "100500000", Quantity: "1"},
			{Price: "101000000", Quantity: "4"},
		},
	}
}

func TestClampDepth(t *testing.T) {
	assert.Equal(t, DefaultOrderbookDepth, ClampDepth(0))
	assert.Equal(t, DefaultOrderbookDepth, ClampDepth(-5))
	assert.Equal(t, 1, ClampDepth(1))
	assert.Equal(t, 35, ClampDepth(35))
	assert.Equal(t, MaxOrderbookDepth, ClampDepth(999))
}

func TestBuildOrderbook(t *testing.T) {
	book := BuildOrderbook(derivativeMarket(), sampleRawBook(), 20)

	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 2)

	assert.InDelta(t, 99.5, book.Bids[0].Price, 1e-9)
	assert.InDelta(t, 2, book.Bids[0].Quantity, 1e-9)
	assert.InDelta(t, 199, book.Bids[0].Notional, 1e-9)

	// Total accumulates down the side.
	assert.InDelta(t, 2, book.Bids[0].Total, 1e-9)
	assert.InDelta(t, 5, book.Bids[1].Total, 1e-9)
	assert.InDelta(t, 1, book.Asks[0].Total, 1e-9)
	assert.InDelta(t, 5, book.Asks[1].Total, 1e-9)
}

func TestBuildOrderbook_TruncatesToDepth(t *testing.T) {
	book := BuildOrderbook(derivativeMarket(), sampleRawBook(), 1)

	require.Len(t, book.Bids, 1)
	require.Len(t, book.Asks, 1)
	assert.InDelta(t, 99.5, book.Bids[0].Price, 1e-9)
	assert.InDelta(t, 100.5, book.Asks[0].Price, 1e-9)
}

func TestComputeOrderbookMetrics(t *testing.T) {
	market := derivativeMarket()
	book := BuildOrderbook(market, sampleRawBook(), 20)
	metrics := ComputeOrderbookMetrics(market, book)

	assert.InDelta(t, 100, metrics.MidPrice, 1e-9)
	assert.InDelta(t, 99.5, metrics.BestBid, 1e-9)
	assert.InDelta(t, 100.5, metrics.BestAsk, 1e-9)
	assert.InDelta(t, 1, metrics.Spread, 1e-9)
	// (100.5-99.5)/100 * 10000 = 100 bps.
	assert.InDelta(t, 100, metrics.SpreadBps, 1e-6)

	assert.InDelta(t, 5, metrics.BidDepthTotal, 1e-9)
	assert.InDelta(t, 5, metrics.AskDepthTotal, 1e-9)
	// Bid notional 2*99.5 + 3*99 = 496; ask notional 1*100.5 + 4*101 = 504.5.
	assert.InDelta(t, 496, metrics.BidNotionalDepth, 1e-6)
	assert.InDelta(t, 504.5, metrics.AskNotionalDepth, 1e-6)
	assert.InDelta(t, 8.5/1000.5, metrics.DepthImbalance, 1e-6)
	assert.Equal(t, 2, metrics.BidLevels)
	assert.Equal(t, 2, metrics.AskLevels)
}

func TestComputeOrderbookMetrics_OneSidedBook(t *testing.T) {
	market := derivativeMarket()
	raw := &indexer.RawOrderbook{
		Buys: []indexer.PriceLevel{{Price: "99500000", Quantity: "2"}},
	}
	metrics := ComputeOrderbookMetrics(market, BuildOrderbook(market, raw, 20))

	assert.Zero(t, metrics.MidPrice)
	assert.Zero(t, metrics.Spread)
	assert.Zero(t, metrics.SpreadBps)
	assert.InDelta(t, 99.5, metrics.BestBid, 1e-9)
	assert.Zero(t, metrics.BestAsk)
	// All notional on one side is full imbalance.
	assert.InDelta(t, 1, metrics.DepthImbalance, 1e-9)
}

func TestComputeOrderbookMetrics_EmptyBook(t *testing.T) {
	market := derivativeMarket()
	metrics := ComputeOrderbookMetrics(market, BuildOrderbook(market, &indexer.RawOrderbook{}, 20))

	assert.Zero(t, metrics.MidPrice)
	assert.Zero(t, metrics.SpreadBps)
	assert.Zero(t, metrics.DepthImbalance)
	assert.Zero(t, metrics.BidLevels)
	assert.Zero(t, metrics.AskLevels)
}

func TestDepthImbalance(t *testing.T) {
	assert.Zero(t, depthImbalance(0, 0))
	assert.InDelta(t, 0, depthImbalance(100, 100), 1e-12)
	assert.InDelta(t, 1, depthImbalance(100, 0), 1e-12)
	assert.InDelta(t, 1.0/3, depthImbalance(100, 200), 1e-12)
}
