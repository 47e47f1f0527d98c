package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kidspace/config"
	"kidspace/metrics"
	"kidspace/models"

	"github.com/redis/go-redis/v9"
)

const (
	PlanetsCacheKey      = "planets:all"
	PlanetsCacheDuration = 24 * time.Hour
)

// PlanetCache keeps the planet list out of the store; planets never
// change after seeding so only a bootstrap needs to invalidate it.
type PlanetCache interface {
	GetPlanets(ctx context.Context) ([]models.Planet, bool, error)
	SetPlanets(ctx context.Context, planets []models.Planet) error
	Invalidate(ctx context.Context) error
}

type RedisPlanetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to redis, or returns nil when REDIS_ADDR is unset
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisPlanetCache(client *redis.Client, ttl time.Duration) *RedisPlanetCache {
	if ttl <= 0 {
		ttl = PlanetsCacheDuration
	}
	return &RedisPlanetCache{client: client, ttl: ttl}
}

func (c *RedisPlanetCache) GetPlanets(ctx context.Context) ([]models.Planet, bool, error) {
	cached, err := c.client.Get(ctx, PlanetsCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var planets []models.Planet
	if err := json.Unmarshal([]byte(cached), &planets); err != nil {
		// corrupted entry, treat as a miss
		metrics.CacheMisses.Inc()
		return nil, false, nil
	}
	metrics.CacheHits.Inc()
	return planets, true, nil
}

func (c *RedisPlanetCache) SetPlanets(ctx context.Context, planets []models.Planet) error {
	data, err := json.Marshal(planets)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PlanetsCacheKey, data, c.ttl).Err()
}

func (c *RedisPlanetCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, PlanetsCacheKey).Err()
}
