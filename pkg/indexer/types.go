package indexer

// Venue identifies which trading venue a source serves.
const (
	VenueSpot       = "spot"
	VenueDerivative = "derivative"
)

// TokenMeta carries token metadata attached to a market record.
type TokenMeta struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// SpotMarketRecord is the raw spot market shape returned by the indexer.
// Numeric fields are chain-format strings (integer value with an implicit
// decimal-exponent shift).
type SpotMarketRecord struct {
	MarketID            string     `json:"marketId"`
	MarketStatus        string     `json:"marketStatus"`
	Ticker              string     `json:"ticker"`
	BaseDenom           string     `json:"baseDenom"`
	QuoteDenom          string     `json:"quoteDenom"`
	BaseTokenMeta       *TokenMeta `json:"baseTokenMeta,omitempty"`
	QuoteTokenMeta      *TokenMeta `json:"quoteTokenMeta,omitempty"`
	MakerFeeRate        string     `json:"makerFeeRate"`
	TakerFeeRate        string     `json:"takerFeeRate"`
	MinPriceTickSize    string     `json:"minPriceTickSize"`
	MinQuantityTickSize string     `json:"minQuantityTickSize"`
}

// DerivativeMarketRecord is the raw derivative market shape returned by the
// indexer. Unlike spot records there is no base token metadata; only the
// quote side carries decimals.
type DerivativeMarketRecord struct {
	MarketID               string     `json:"marketId"`
	MarketStatus           string     `json:"marketStatus"`
	Ticker                 string     `json:"ticker"`
	QuoteDenom             string     `json:"quoteDenom"`
	QuoteTokenMeta         *TokenMeta `json:"quoteTokenMeta,omitempty"`
	OracleBase             string     `json:"oracleBase,omitempty"`
	OracleQuote            string     `json:"oracleQuote,omitempty"`
	IsPerpetual            bool       `json:"isPerpetual"`
	MakerFeeRate           string     `json:"makerFeeRate"`
	TakerFeeRate           string     `json:"takerFeeRate"`
	InitialMarginRatio     string     `json:"initialMarginRatio,omitempty"`
	MaintenanceMarginRatio string     `json:"maintenanceMarginRatio,omitempty"`
	MinPriceTickSize       string     `json:"minPriceTickSize"`
	MinQuantityTickSize    string     `json:"minQuantityTickSize"`
}

// RawMarket is a tagged union over the two venue record shapes. Exactly one
// variant is set; the normalizer rejects anything else with a decode error.
type RawMarket struct {
	Spot       *SpotMarketRecord       `json:"spot,omitempty"`
	Derivative *DerivativeMarketRecord `json:"derivative,omitempty"`
}

// Venue reports which variant is populated, or "" for malformed unions.
func (m RawMarket) Venue() string {
	switch {
	case m.Spot != nil && m.Derivative == nil:
		return VenueSpot
	case m.Derivative != nil && m.Spot == nil:
		return VenueDerivative
	default:
		return ""
	}
}

// PriceLevel is a single raw order book level. Price and quantity are
// chain-format strings.
type PriceLevel struct {
	Price     string `json:"price"`
	Quantity  string `json:"quantity"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// RawOrderbook holds both sides of a raw book, best levels first.
type RawOrderbook struct {
	Buys     []PriceLevel `json:"buys"`
	Sells    []PriceLevel `json:"sells"`
	Sequence uint64       `json:"sequence,omitempty"`
}

// TradeRecord is a raw executed trade, most recent first in listings.
// TradeDirection is the upstream side marker; anything other than "buy" is
// treated as a sell downstream.
type TradeRecord struct {
	TradeID        string `json:"tradeId"`
	MarketID       string `json:"marketId"`
	TradeDirection string `json:"tradeDirection"`
	Price          string `json:"price"`
	Quantity       string `json:"quantity"`
	Fee            string `json:"fee,omitempty"`
	ExecutedAt     int64  `json:"executedAt"`
}

// ErrorResponse is the indexer's error envelope.
type ErrorResponse struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

type spotMarketsResponse struct {
	Markets []SpotMarketRecord `json:"markets"`
}

type derivativeMarketsResponse struct {
	Markets []DerivativeMarketRecord `json:"markets"`
}

type orderbookResponse struct {
	Orderbook *RawOrderbook `json:"orderbook"`
}

type tradesResponse struct {
	Trades []TradeRecord `json:"trades"`
}
