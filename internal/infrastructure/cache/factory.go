package cache

import (
	"time"

	appentregas "github.com/vialsa/backend/internal/application/entregas"
	"github.com/vialsa/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewMovimientosCache creates the catalog cache for the delivery module.
// It tries Redis first and falls back to the in-memory cache when Redis is
// unavailable, which keeps single-instance deployments working without one.
func NewMovimientosCache(redisCfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) appentregas.MovimientosCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := NewRedisMovimientosCache(redisCfg, ttl)
	if err == nil {
		logger.Info("using Redis movimientos cache")
		return store
	}

	logger.Warn("Redis unavailable, falling back to in-memory movimientos cache. "+
		"Catalog state will not be shared across instances.",
		zap.Error(err),
	)
	return NewInMemoryMovimientosCache(ttl)
}
