package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vialsa/backend/internal/domain/entregas"
	"github.com/vialsa/backend/internal/infrastructure/config"
)

const movimientosKeyPrefix = "entregas:movimientos:"

// RedisMovimientosCache caches the available-movements catalog in Redis so
// the preview screen can poll without hammering Postgres. Entries are keyed
// by sede and calendar day and expire after a short TTL.
type RedisMovimientosCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMovimientosCache creates a cache from Redis configuration and
// verifies the connection.
func NewRedisMovimientosCache(cfg config.RedisConfig, ttl time.Duration) (*RedisMovimientosCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisMovimientosCacheWithClient(client, ttl), nil
}

// NewRedisMovimientosCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or sharing a client across components.
func NewRedisMovimientosCacheWithClient(client *redis.Client, ttl time.Duration) *RedisMovimientosCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisMovimientosCache{client: client, ttl: ttl}
}

// Get returns the cached catalog, or (nil, nil) on a miss
func (c *RedisMovimientosCache) Get(ctx context.Context, sedeID uuid.UUID, fecha time.Time) (*entregas.MovimientosDisponibles, error) {
	payload, err := c.client.Get(ctx, movimientosKey(sedeID, fecha)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read movimientos cache: %w", err)
	}

	var catalogo entregas.MovimientosDisponibles
	if err := json.Unmarshal(payload, &catalogo); err != nil {
		// Corrupt entries are treated as misses
		return nil, nil
	}
	return &catalogo, nil
}

// Set stores the catalog with the configured TTL
func (c *RedisMovimientosCache) Set(ctx context.Context, sedeID uuid.UUID, fecha time.Time, catalogo entregas.MovimientosDisponibles) error {
	payload, err := json.Marshal(catalogo)
	if err != nil {
		return fmt.Errorf("failed to encode movimientos catalog: %w", err)
	}
	if err := c.client.Set(ctx, movimientosKey(sedeID, fecha), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write movimientos cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached catalog for a sede and day
func (c *RedisMovimientosCache) Invalidate(ctx context.Context, sedeID uuid.UUID, fecha time.Time) error {
	if err := c.client.Del(ctx, movimientosKey(sedeID, fecha)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate movimientos cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisMovimientosCache) Close() error {
	return c.client.Close()
}

func movimientosKey(sedeID uuid.UUID, fecha time.Time) string {
	return movimientosKeyPrefix + sedeID.String() + ":" + fecha.Format("2006-01-02")
}
