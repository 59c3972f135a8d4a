package cache

import (
	"context"

	"github.com/horologe/storefront/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open returns a Redis-backed store when Redis is enabled and reachable,
// and an in-memory store otherwise. The Redis client, if any, is returned
// so other components (token revocation) can share it.
func Open(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (Store, *redis.Client) {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory cache")
		return NewMemoryStore(logger), nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"Cached settings will not be shared between instances.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewMemoryStore(logger), nil
	}

	logger.Info("Using Redis cache", zap.String("addr", cfg.Addr()))
	store := NewRedisStore(client, logger)
	store.ownsClient = true
	return store, client
}
