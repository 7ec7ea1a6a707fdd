package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client is the HTTP client for the indexing service REST API. Both venue
// sources share one client; timeout and cancellation beyond the configured
// request timeout are the transport layer's concern.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient creates an indexer client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// SpotSource serves the spot venue endpoints.
type SpotSource struct {
	client *Client
}

// NewSpotSource creates the spot-venue data source.
func NewSpotSource(client *Client) *SpotSource {
	return &SpotSource{client: client}
}

func (s *SpotSource) Venue() string { return VenueSpot }

func (s *SpotSource) ListMarkets(ctx context.Context) ([]RawMarket, error) {
	var response spotMarketsResponse
	if err := s.client.get(ctx, "/api/exchange/spot/v1/markets", &response); err != nil {
		return nil, err
	}
	markets := make([]RawMarket, 0, len(response.Markets))
	for i := range response.Markets {
		markets = append(markets, RawMarket{Spot: &response.Markets[i]})
	}
	return markets, nil
}

func (s *SpotSource) FetchOrderbook(ctx context.Context, marketID string) (*RawOrderbook, error) {
	return s.client.fetchOrderbook(ctx, "/api/exchange/spot/v1/orderbook/"+marketID)
}

func (s *SpotSource) FetchTrades(ctx context.Context, marketID string, limit int) ([]TradeRecord, error) {
	return s.client.fetchTrades(ctx, "/api/exchange/spot/v1/trades", marketID, limit)
}

// DerivativeSource serves the derivative venue endpoints.
type DerivativeSource struct {
	client *Client
}

// NewDerivativeSource creates the derivative-venue data source.
func NewDerivativeSource(client *Client) *DerivativeSource {
	return &DerivativeSource{client: client}
}

func (s *DerivativeSource) Venue() string { return VenueDerivative }

func (s *DerivativeSource) ListMarkets(ctx context.Context) ([]RawMarket, error) {
	var response derivativeMarketsResponse
	if err := s.client.get(ctx, "/api/exchange/derivative/v1/markets", &response); err != nil {
		return nil, err
	}
	markets := make([]RawMarket, 0, len(response.Markets))
	for i := range response.Markets {
		markets = append(markets, RawMarket{Derivative: &response.Markets[i]})
	}
	return markets, nil
}

func (s *DerivativeSource) FetchOrderbook(ctx context.Context, marketID string) (*RawOrderbook, error) {
	return s.client.fetchOrderbook(ctx, "/api/exchange/derivative/v1/orderbook/"+marketID)
}

func (s *DerivativeSource) FetchTrades(ctx context.Context, marketID string, limit int) ([]TradeRecord, error) {
	return s.client.fetchTrades(ctx, "/api/exchange/derivative/v1/trades", marketID, limit)
}

func (c *Client) fetchOrderbook(ctx context.Context, path string) (*RawOrderbook, error) {
	var response orderbookResponse
	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}
	if response.Orderbook == nil {
		return &RawOrderbook{}, nil
	}
	return response.Orderbook, nil
}

func (c *Client) fetchTrades(ctx context.Context, path, marketID string, limit int) ([]TradeRecord, error) {
	path += "?marketId=" + marketID
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}
	var response tradesResponse
	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}
	return response.Trades, nil
}

// get performs a GET against the indexer and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	url := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call indexer: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("indexer error (%d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("indexer error (%d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
