package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadClean(t *testing.T) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return Load()
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadClean(t)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:4444", cfg.Indexer.BaseURL)
	assert.Equal(t, 30, cfg.Indexer.Timeout)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "localhost", cfg.Cache.Redis.Host)
	assert.Equal(t, 6379, cfg.Cache.Redis.Port)

	assert.Equal(t, 60*time.Second, cfg.Cache.TTL.Markets)
	assert.Equal(t, 10*time.Second, cfg.Cache.TTL.Orderbook)
	assert.Equal(t, 15*time.Second, cfg.Cache.TTL.Trades)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL.Health)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL.Summary)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL.Analytics)

	assert.Equal(t, 30, cfg.Analytics.MaxMarkets)
	assert.Equal(t, 10, cfg.Analytics.OverviewTopN)
	assert.Equal(t, 10, cfg.Analytics.DefaultRankingLimit)
	assert.Equal(t, 15, cfg.Analytics.MaxRankingLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("INDEXER_BASE_URL", "https://indexer.example.com")

	cfg, err := loadClean(t)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "https://indexer.example.com", cfg.Indexer.BaseURL)
}

func TestLoad_RejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := loadClean(t)
	assert.ErrorContains(t, err, "unsupported cache backend")
}

func TestLoad_RejectsInvalidAnalyticsBounds(t *testing.T) {
	t.Setenv("ANALYTICS_MAX_MARKETS", "0")

	_, err := loadClean(t)
	assert.ErrorContains(t, err, "max_markets")
}
