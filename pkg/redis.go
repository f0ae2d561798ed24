package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/scorecard-service/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses REDIS_URL and pings the server before returning
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
