package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tavisry/marketlens/internal/utils"
)

// staleReseedTTL caps the TTL used when re-seeding the primary slot from a
// stale value, so the upstream is re-probed soon after an outage.
const staleReseedTTL = 15 * time.Second

// Stats is a snapshot of the cache performance counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Stale  int64 `json:"stale"`
}

type statsCounter struct {
	mu    sync.Mutex
	stats Stats
}

func (s *statsCounter) record(hit, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case hit:
		s.stats.Hits++
	case stale:
		s.stats.Stale++
	default:
		s.stats.Misses++
	}
}

func (s *statsCounter) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Service is the resilient cache: a primary TTL store plus a last-known-good
// store consulted on upstream failure. It is an explicit dependency passed
// into consumers; there is no process-global instance.
type Service struct {
	store  Store
	logger *logrus.Logger
	stats  *statsCounter
}

// NewService creates a cache service over the given store.
func NewService(store Store, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		store:  store,
		logger: logger,
		stats:  &statsCounter{},
	}
}

// Stats returns a snapshot of the hit/miss/stale counters.
func (c *Service) Stats() Stats {
	return c.stats.snapshot()
}

// GetOrCompute returns the cached value for key if live, otherwise invokes
// produce. On success the result is written to both stores; on an upstream
// failure the last known good value is served as stale (and re-seeded with a
// shortened TTL) when available. The bool result reports staleness.
//
// Deterministic errors (not-found, invalid-parameter) are never masked by a
// stale value. Concurrent misses for the same key may each invoke produce;
// there is no single-flight de-duplication.
func GetOrCompute[T any](ctx context.Context, c *Service, key string, ttl time.Duration, produce func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	if data, ok, err := c.store.Get(ctx, key); err == nil && ok {
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			c.stats.record(true, false)
			return value, false, nil
		}
		c.logger.WithField("key", key).Warn("dropping undecodable cache entry")
	}

	value, err := produce(ctx)
	if err == nil {
		if data, marshalErr := json.Marshal(value); marshalErr == nil {
			_ = c.store.Set(ctx, key, data, ttl)
			_ = c.store.SetFallback(ctx, key, data)
		}
		c.stats.record(false, false)
		return value, false, nil
	}

	if utils.IsNotFound(err) || utils.IsInvalidParameter(err) {
		return zero, false, err
	}

	data, ok, fallbackErr := c.store.GetFallback(ctx, key)
	if fallbackErr != nil || !ok {
		return zero, false, err
	}
	var stale T
	if unmarshalErr := json.Unmarshal(data, &stale); unmarshalErr != nil {
		return zero, false, err
	}

	reseedTTL := ttl
	if reseedTTL > staleReseedTTL {
		reseedTTL = staleReseedTTL
	}
	_ = c.store.Set(ctx, key, data, reseedTTL)
	c.stats.record(false, true)
	c.logger.WithField("key", key).WithError(err).Warn("upstream failed, serving last known good value")
	return stale, true, nil
}
