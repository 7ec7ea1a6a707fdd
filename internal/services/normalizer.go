package services

import (
	"strings"

	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/internal/utils"
	"github.com/tavisry/marketlens/pkg/indexer"
)

// DerivativeBaseDecimals substitutes for the base token decimal count on
// derivative markets, which the upstream source does not provide. 18 is a
// known approximation carried over from the source system; do not infer a
// "more correct" value per market.
const DerivativeBaseDecimals = 18

const activeMarketStatus = "active"

const perpTickerSuffix = " PERP"

// NormalizeMarkets maps raw venue records into unified market records,
// retaining only active markets. A record with neither or both variants set
// is a malformed union and fails the whole batch.
func NormalizeMarkets(raw []indexer.RawMarket) ([]models.NormalizedMarket, error) {
	markets := make([]models.NormalizedMarket, 0, len(raw))
	for _, record := range raw {
		switch record.Venue() {
		case indexer.VenueSpot:
			market := normalizeSpotMarket(record.Spot)
			if market.Status == activeMarketStatus {
				markets = append(markets, market)
			}
		case indexer.VenueDerivative:
			market := normalizeDerivativeMarket(record.Derivative)
			if market.Status == activeMarketStatus {
				markets = append(markets, market)
			}
		default:
			return nil, utils.NewUpstreamError("unrecognized market record shape", nil)
		}
	}
	return markets, nil
}

func normalizeSpotMarket(record *indexer.SpotMarketRecord) models.NormalizedMarket {
	baseSymbol, quoteSymbol := splitTickerSymbols(record.Ticker)
	baseDecimals := 0
	quoteDecimals := 0
	if record.BaseTokenMeta != nil {
		baseDecimals = record.BaseTokenMeta.Decimals
		if record.BaseTokenMeta.Symbol != "" {
			baseSymbol = record.BaseTokenMeta.Symbol
		}
	}
	if record.QuoteTokenMeta != nil {
		quoteDecimals = record.QuoteTokenMeta.Decimals
		if record.QuoteTokenMeta.Symbol != "" {
			quoteSymbol = record.QuoteTokenMeta.Symbol
		}
	}

	return models.NormalizedMarket{
		MarketID:            record.MarketID,
		Ticker:              record.Ticker,
		MarketType:          models.MarketTypeSpot,
		BaseDenom:           record.BaseDenom,
		QuoteDenom:          record.QuoteDenom,
		BaseSymbol:          baseSymbol,
		QuoteSymbol:         quoteSymbol,
		BaseDecimals:        baseDecimals,
		QuoteDecimals:       quoteDecimals,
		MinPriceTickSize:    SpotPriceFromChain(record.MinPriceTickSize, baseDecimals, quoteDecimals),
		MinQuantityTickSize: SpotQuantityFromChain(record.MinQuantityTickSize, baseDecimals),
		Status:              record.MarketStatus,
		MakerFeeRate:        ParseHumanQuantity(record.MakerFeeRate),
		TakerFeeRate:        ParseHumanQuantity(record.TakerFeeRate),
	}
}

func normalizeDerivativeMarket(record *indexer.DerivativeMarketRecord) models.NormalizedMarket {
	baseSymbol, quoteSymbol := splitTickerSymbols(record.Ticker)
	quoteDecimals := 0
	if record.QuoteTokenMeta != nil {
		quoteDecimals = record.QuoteTokenMeta.Decimals
		if record.QuoteTokenMeta.Symbol != "" {
			quoteSymbol = record.QuoteTokenMeta.Symbol
		}
	}

	return models.NormalizedMarket{
		MarketID:            record.MarketID,
		Ticker:              record.Ticker,
		MarketType:          models.MarketTypeDerivative,
		QuoteDenom:          record.QuoteDenom,
		BaseSymbol:          baseSymbol,
		QuoteSymbol:         quoteSymbol,
		BaseDecimals:        DerivativeBaseDecimals,
		QuoteDecimals:       quoteDecimals,
		MinPriceTickSize:    DerivativePriceFromChain(record.MinPriceTickSize, quoteDecimals),
		MinQuantityTickSize: ParseHumanQuantity(record.MinQuantityTickSize),
		Status:              record.MarketStatus,
		MakerFeeRate:        ParseHumanQuantity(record.MakerFeeRate),
		TakerFeeRate:        ParseHumanQuantity(record.TakerFeeRate),
		IsPerpetual:         record.IsPerpetual,
	}
}

// splitTickerSymbols derives base/quote symbols from a ticker like
// "INJ/USDT" or "BTC/USDT PERP". Unresolvable parts fall back to the
// UNKNOWN sentinel instead of failing.
func splitTickerSymbols(ticker string) (string, string) {
	t := strings.TrimSpace(ticker)
	if strings.HasSuffix(strings.ToUpper(t), perpTickerSuffix) {
		t = strings.TrimSpace(t[:len(t)-len(perpTickerSuffix)])
	}

	base, quote := models.UnknownSymbol, models.UnknownSymbol
	parts := strings.SplitN(t, "/", 2)
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		base = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		quote = strings.TrimSpace(parts[1])
	}
	return base, quote
}
