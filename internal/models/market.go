package models

// Venue kinds for normalized markets. These mirror the indexer's two market
// categories.
const (
	MarketTypeSpot       = "spot"
	MarketTypeDerivative = "derivative"
)

// UnknownSymbol is the sentinel used when a base or quote symbol cannot be
// resolved from upstream metadata or the ticker.
const UnknownSymbol = "UNKNOWN"

// NormalizedMarket is the unified market record produced from either venue's
// raw shape. It is an immutable snapshot: refresh cycles build new values
// rather than mutating in place.
type NormalizedMarket struct {
	MarketID   string `json:"market_id"`
	Ticker     string `json:"ticker"`
	MarketType string `json:"market_type"`

	BaseDenom   string `json:"base_denom,omitempty"`
	QuoteDenom  string `json:"quote_denom"`
	BaseSymbol  string `json:"base_symbol"`
	QuoteSymbol string `json:"quote_symbol"`

	// Decimal exponents used for chain-format conversion. Derivative
	// markets carry no base token metadata upstream; BaseDecimals is then
	// the fixed default of 18.
	BaseDecimals  int `json:"base_decimals"`
	QuoteDecimals int `json:"quote_decimals"`

	MinPriceTickSize    float64 `json:"min_price_tick_size"`
	MinQuantityTickSize float64 `json:"min_quantity_tick_size"`

	Status       string  `json:"status"`
	MakerFeeRate float64 `json:"maker_fee_rate"`
	TakerFeeRate float64 `json:"taker_fee_rate"`
	IsPerpetual  bool    `json:"is_perpetual,omitempty"`
}

// MarketFilter narrows the normalized market set.
type MarketFilter struct {
	MarketType  string `json:"market_type,omitempty" form:"type"`
	QuoteSymbol string `json:"quote_symbol,omitempty" form:"quote"`
}
