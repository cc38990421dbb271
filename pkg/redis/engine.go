package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/GhaniKale/skincare-marketplace/pkg/config"
)

// NewClient builds a client from cfg. It does not dial; use Ping to check
// reachability.
func NewClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Protocol: 2,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
