package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/calegray/commerce-backend/internal/data/cache"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

// wireCartCache returns nil when no redis address is configured; the cart
// services treat a nil cache as "always miss".
func wireCartCache(cfg Config, log *logger.Logger) cache.CartCache {
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, cart cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	log.Info("cart cache enabled", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return cache.NewRedisCartCache(client)
}
