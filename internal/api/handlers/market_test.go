package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavisry/marketlens/internal/models"
	"github.com/tavisry/marketlens/internal/services"
	"github.com/tavisry/marketlens/internal/utils"
)

// stubMarketService returns canned values for the per-market operations.
type stubMarketService struct {
	markets []models.NormalizedMarket
	book    *models.Orderbook
	metrics *models.OrderbookMetrics
	stats   *models.TradeStats
	health  *models.MarketHealth
	summary *models.MarketSummary
	stale   bool
	err     error

	lastDepth int
	lastLimit int
}

func (s *stubMarketService) ListAllMarkets(context.Context) ([]models.NormalizedMarket, bool, error) {
	return s.markets, s.stale, s.err
}

func (s *stubMarketService) GetMarketByID(_ context.Context, marketID string) (models.NormalizedMarket, error) {
	if s.err != nil {
		return models.NormalizedMarket{}, s.err
	}
	for _, market := range s.markets {
		if market.MarketID == marketID {
			return market, nil
		}
	}
	return models.NormalizedMarket{}, utils.NewNotFoundErrorf("market %s not found", marketID)
}

func (s *stubMarketService) GetFilteredMarkets(context.Context, models.MarketFilter) ([]models.NormalizedMarket, bool, error) {
	return s.markets, s.stale, s.err
}

func (s *stubMarketService) GetOrderbook(_ context.Context, _ string, depth int) (*models.Orderbook, bool, error) {
	s.lastDepth = depth
	return s.book, s.stale, s.err
}

func (s *stubMarketService) GetOrderbookMetrics(context.Context, string) (*models.OrderbookMetrics, bool, error) {
	return s.metrics, s.stale, s.err
}

func (s *stubMarketService) GetTradeStats(_ context.Context, _ string, limit int) (*models.TradeStats, bool, error) {
	s.lastLimit = limit
	return s.stats, s.stale, s.err
}

func (s *stubMarketService) GetMarketHealth(context.Context, string) (*models.MarketHealth, bool, error) {
	return s.health, s.stale, s.err
}

func (s *stubMarketService) GetMarketSummary(context.Context, string) (*models.MarketSummary, bool, error) {
	return s.summary, s.stale, s.err
}

var _ services.MarketDataService = (*stubMarketService)(nil)

func marketRouter(stub *stubMarketService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewMarketHandler(stub)
	router.GET("/api/v1/markets", handler.ListMarkets)
	router.GET("/api/v1/markets/:marketId", handler.GetMarket)
	router.GET("/api/v1/markets/:marketId/orderbook", handler.GetOrderbook)
	router.GET("/api/v1/markets/:marketId/trades/stats", handler.GetTradeStats)
	router.GET("/api/v1/markets/:marketId/health", handler.GetMarketHealth)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListMarkets(t *testing.T) {
	stub := &stubMarketService{
		markets: []models.NormalizedMarket{{MarketID: "m1", Ticker: "INJ/USDT"}},
	}
	w, body := doRequest(t, marketRouter(stub), "/api/v1/markets")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "false", string(body["stale"]))

	var markets []models.NormalizedMarket
	require.NoError(t, json.Unmarshal(body["data"], &markets))
	require.Len(t, markets, 1)
	assert.Equal(t, "m1", markets[0].MarketID)
}

func TestListMarkets_StaleFlagSurfaces(t *testing.T) {
	stub := &stubMarketService{
		markets: []models.NormalizedMarket{{MarketID: "m1"}},
		stale:   true,
	}
	w, body := doRequest(t, marketRouter(stub), "/api/v1/markets")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "true", string(body["stale"]))
}

func TestGetMarket_NotFound(t *testing.T) {
	stub := &stubMarketService{}
	w, body := doRequest(t, marketRouter(stub), "/api/v1/markets/0xmissing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, string(body["error"]), "not found")
}

func TestGetOrderbook_PassesDepth(t *testing.T) {
	stub := &stubMarketService{book: &models.Orderbook{MarketID: "m1"}}
	w, _ := doRequest(t, marketRouter(stub), "/api/v1/markets/m1/orderbook?depth=5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, stub.lastDepth)
}

func TestGetOrderbook_RejectsNonIntegerDepth(t *testing.T) {
	stub := &stubMarketService{book: &models.Orderbook{}}
	w, body := doRequest(t, marketRouter(stub), "/api/v1/markets/m1/orderbook?depth=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(body["error"]), "depth")
}

func TestGetOrderbook_AbsentDepthDefersToService(t *testing.T) {
	stub := &stubMarketService{book: &models.Orderbook{}}
	w, _ := doRequest(t, marketRouter(stub), "/api/v1/markets/m1/orderbook")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, stub.lastDepth)
}

func TestGetTradeStats_UpstreamFailureMapsToBadGateway(t *testing.T) {
	stub := &stubMarketService{err: utils.NewUpstreamError("indexer down", nil)}
	w, body := doRequest(t, marketRouter(stub), "/api/v1/markets/m1/trades/stats")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, string(body["error"]), "indexer down")
}

func TestGetMarketHealth(t *testing.T) {
	stub := &stubMarketService{
		health: &models.MarketHealth{
			MarketID:    "m1",
			Score:       85,
			Grade:       "A",
			GeneratedAt: time.Now().UTC(),
		},
	}
	w, body := doRequest(t, marketRouter(stub), "/api/v1/markets/m1/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.MarketHealth
	require.NoError(t, json.Unmarshal(body["data"], &health))
	assert.Equal(t, 85, health.Score)
	assert.Equal(t, "A", health.Grade)
}
