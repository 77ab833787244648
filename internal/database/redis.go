package database

import (
	"context"
	"fmt"
	"time"

	"parking-backend/config"

	"github.com/go-redis/redis/v8"
)

var (
	// RedisClient stays nil when no Redis host is configured; callers must
	// check before use.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis dials Redis when REDIS_HOST is set. Caches and the token
// denylist are skipped while RedisClient is nil.
func ConnectRedis(cfg *config.Config) error {
	if !cfg.RedisEnabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisFullAddr(),
		Password:     cfg.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(Ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("ping redis at %s: %w", cfg.RedisFullAddr(), err)
	}

	RedisClient = client
	return nil
}
