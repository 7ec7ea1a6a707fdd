package indexer

import "context"

// MarketDataSource is a venue-scoped view of the indexing service. The two
// implementations (spot, derivative) are interchangeable once dispatched by
// venue kind.
type MarketDataSource interface {
	// Venue returns VenueSpot or VenueDerivative.
	Venue() string

	// ListMarkets returns the venue's raw market records.
	ListMarkets(ctx context.Context) ([]RawMarket, error)

	// FetchOrderbook returns the raw bid/ask levels for a market.
	FetchOrderbook(ctx context.Context, marketID string) (*RawOrderbook, error)

	// FetchTrades returns up to limit recent trades, most recent first.
	FetchTrades(ctx context.Context, marketID string, limit int) ([]TradeRecord, error)
}

var (
	_ MarketDataSource = (*SpotSource)(nil)
	_ MarketDataSource = (*DerivativeSource)(nil)
)
