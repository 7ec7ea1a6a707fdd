package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/internal/utils"
	"github.com/tavisry/marketlens/pkg/indexer"
)

func sampleSpotRecord() *indexer.SpotMarketRecord {
	return &indexer.SpotMarketRecord{
		MarketID:            "0xspot1",
		MarketStatus:        "active",
		Ticker:              "INJ/USDT",
		BaseDenom:           "inj",
		QuoteDenom:          "peggy0xdac17",
		BaseTokenMeta:       &indexer.TokenMeta{Name: "Injective", Symbol: "INJ", Decimals: 18},
		QuoteTokenMeta:      &indexer.TokenMeta{Name: "Tether", Symbol: "USDT", Decimals: 6},
		MakerFeeRate:        "-0.0001",
		TakerFeeRate:        "0.001",
		MinPriceTickSize:    "0.000000000000001",
		MinQuantityTickSize: "1000000000000000",
	}
}

func sampleDerivativeRecord() *indexer.DerivativeMarketRecord {
	return &indexer.DerivativeMarketRecord{
		MarketID:            "0xderiv1",
		MarketStatus:        "active",
		Ticker:              "BTC/USDT PERP",
		QuoteDenom:          "peggy0xdac17",
		QuoteTokenMeta:      &indexer.TokenMeta{Name: "Tether", Symbol: "USDT", Decimals: 6},
		IsPerpetual:         true,
		MakerFeeRate:        "-0.0001",
		TakerFeeRate:        "0.001",
		MinPriceTickSize:    "100000",
		MinQuantityTickSize: "0.0001",
	}
}

func TestNormalizeMarkets_Spot(t *testing.T) {
	markets, err := NormalizeMarkets([]indexer.RawMarket{{Spot: sampleSpotRecord()}})
	require.NoError(t, err)
	require.Len(t, markets, 1)

	m := markets[0]
	assert.Equal(t, "0xspot1", m.MarketID)
	assert.Equal(t, models.MarketTypeSpot, m.MarketType)
	assert.Equal(t, "INJ", m.BaseSymbol)
	assert.Equal(t, "USDT", m.QuoteSymbol)
	assert.Equal(t, 18, m.BaseDecimals)
	assert.Equal(t, 6, m.QuoteDecimals)
	assert.False(t, m.IsPerpetual)
	// Tick sizes convert with the spot exponent rules.
	assert.InDelta(t, 0.001, m.MinPriceTickSize, 1e-12)
	assert.InDelta(t, 0.001, m.MinQuantityTickSize, 1e-12)
	assert.InDelta(t, -0.0001, m.MakerFeeRate, 1e-12)
}

func TestNormalizeMarkets_Derivative(t *testing.T) {
	markets, err := NormalizeMarkets([]indexer.RawMarket{{Derivative: sampleDerivativeRecord()}})
	require.NoError(t, err)
	require.Len(t, markets, 1)

	m := markets[0]
	assert.Equal(t, models.MarketTypeDerivative, m.MarketType)
	assert.Equal(t, "BTC", m.BaseSymbol)
	assert.Equal(t, "USDT", m.QuoteSymbol)
	assert.True(t, m.IsPerpetual)
	// No base token metadata upstream; the fixed substitute applies.
	assert.Equal(t, DerivativeBaseDecimals, m.BaseDecimals)
	assert.InDelta(t, 0.1, m.MinPriceTickSize, 1e-12)
	assert.InDelta(t, 0.0001, m.MinQuantityTickSize, 1e-12)
}

func TestNormalizeMarkets_FiltersInactive(t *testing.T) {
	paused := sampleSpotRecord()
	paused.MarketID = "0xpaused"
	paused.MarketStatus = "paused"

	markets, err := NormalizeMarkets([]indexer.RawMarket{
		{Spot: sampleSpotRecord()},
		{Spot: paused},
	})
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "0xspot1", markets[0].MarketID)
}

func TestNormalizeMarkets_MalformedUnion(t *testing.T) {
	_, err := NormalizeMarkets([]indexer.RawMarket{{}})
	assert.True(t, utils.IsUpstream(err))

	_, err = NormalizeMarkets([]indexer.RawMarket{{
		Spot:       sampleSpotRecord(),
		Derivative: sampleDerivativeRecord(),
	}})
	assert.True(t, utils.IsUpstream(err))
}

func TestNormalizeMarkets_SymbolsFallBackToTicker(t *testing.T) {
	record := sampleSpotRecord()
	record.BaseTokenMeta = nil
	record.QuoteTokenMeta = nil

	markets, err := NormalizeMarkets([]indexer.RawMarket{{Spot: record}})
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "INJ", markets[0].BaseSymbol)
	assert.Equal(t, "USDT", markets[0].QuoteSymbol)
	assert.Equal(t, 0, markets[0].BaseDecimals)
}

func TestSplitTickerSymbols(t *testing.T) {
	tests := []struct {
		ticker string
		base   string
		quote  string
	}{
		{"INJ/USDT", "INJ", "USDT"},
		{"BTC/USDT PERP", "BTC", "USDT"},
		{" ETH / USDT ", "ETH", "USDT"},
		{"SOMETOKEN", "SOMETOKEN", models.UnknownSymbol},
		{"", models.UnknownSymbol, models.UnknownSymbol},
		{"/USDT", models.UnknownSymbol, "USDT"},
	}

	for _, tt := range tests {
		base, quote := splitTickerSymbols(tt.ticker)
		assert.Equal(t, tt.base, base, "ticker %q", tt.ticker)
		assert.Equal(t, tt.quote, quote, "ticker %q", tt.ticker)
	}
}
