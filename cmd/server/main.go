package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tavisry/marketlens/internal/api"
	"github.com/tavisry/marketlens/internal/api/handlers"
	"github.com/tavisry/marketlens/internal/cache"
	"github.com/tavisry/marketlens/internal/config"
	"github.com/tavisry/marketlens/internal/logging"
	"github.com/tavisry/marketlens/internal/services"
	"github.com/tavisry/marketlens/pkg/indexer"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)

	store, err := newCacheStore(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize cache backend")
	}
	cacheService := cache.NewService(store, logger)

	client := indexer.NewClient(cfg.Indexer.BaseURL, time.Duration(cfg.Indexer.Timeout)*time.Second)
	sources := []indexer.MarketDataSource{
		indexer.NewSpotSource(client),
		indexer.NewDerivativeSource(client),
	}

	marketService := services.NewMarketService(sources, cacheService, cfg.Cache.TTL, logger)
	analyticsService := services.NewAnalyticsService(marketService, cacheService, cfg.Analytics, cfg.Cache.TTL.Analytics, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORS(cfg.Server.AllowedOrigins))
	router.Use(api.RequestLogger(logger))

	api.SetupRoutes(router,
		handlers.NewMarketHandler(marketService),
		handlers.NewAnalyticsHandler(analyticsService),
		handlers.NewHealthHandler(cacheService, cfg.Cache.Backend, version),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server exited")
}

func newCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		return cache.NewRedisStore(client), nil
	default:
		return cache.NewMemoryStore(), nil
	}
}
