package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Indexer     IndexerConfig   `mapstructure:"indexer"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Analytics   AnalyticsConfig `mapstructure:"analytics"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type IndexerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// CacheConfig selects the cache backend and per-artifact TTLs. The memory
// backend is the default; redis keeps the same process-lifetime semantics
// with shared state across replicas.
type CacheConfig struct {
	Backend string         `mapstructure:"backend"`
	Redis   RedisConfig    `mapstructure:"redis"`
	TTL     CacheTTLConfig `mapstructure:"ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheTTLConfig struct {
	Markets   time.Duration `mapstructure:"markets"`
	Orderbook time.Duration `mapstructure:"orderbook"`
	Trades    time.Duration `mapstructure:"trades"`
	Health    time.Duration `mapstructure:"health"`
	Summary   time.Duration `mapstructure:"summary"`
	Analytics time.Duration `mapstructure:"analytics"`
}

// AnalyticsConfig bounds aggregate fan-out against the upstream service.
type AnalyticsConfig struct {
	MaxMarkets          int `mapstructure:"max_markets"`
	OverviewTopN        int `mapstructure:"overview_top_n"`
	DefaultRankingLimit int `mapstructure:"default_ranking_limit"`
	MaxRankingLimit     int `mapstructure:"max_ranking_limit"`
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	switch config.Cache.Backend {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unsupported cache backend %q (want memory or redis)", config.Cache.Backend)
	}

	if config.Analytics.MaxMarkets <= 0 {
		return nil, fmt.Errorf("analytics.max_markets must be positive, got %d", config.Analytics.MaxMarkets)
	}
	if config.Analytics.MaxRankingLimit < config.Analytics.DefaultRankingLimit {
		return nil, fmt.Errorf("analytics.max_ranking_limit %d is below the default limit %d",
			config.Analytics.MaxRankingLimit, config.Analytics.DefaultRankingLimit)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("indexer.base_url", "http://localhost:4444")
	viper.SetDefault("indexer.timeout", 30)

	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis.host", "localhost")
	viper.SetDefault("cache.redis.port", 6379)
	viper.SetDefault("cache.redis.password", "")
	viper.SetDefault("cache.redis.db", 0)
	viper.SetDefault("cache.ttl.markets", "60s")
	viper.SetDefault("cache.ttl.orderbook", "10s")
	viper.SetDefault("cache.ttl.trades", "15s")
	viper.SetDefault("cache.ttl.health", "30s")
	viper.SetDefault("cache.ttl.summary", "30s")
	viper.SetDefault("cache.ttl.analytics", "60s")

	viper.SetDefault("analytics.max_markets", 30)
	viper.SetDefault("analytics.overview_top_n", 10)
	viper.SetDefault("analytics.default_ranking_limit", 10)
	viper.SetDefault("analytics.max_ranking_limit", 15)
}
