// Package redis provides Redis-backed implementations of the cache and
// token blacklist interfaces, using go-redis. The original deployment
// targets Upstash Redis over TLS; the URL scheme (redis:// or
// rediss://) selects the transport.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rmsato/todoapi/internal/config"
)

// Connect parses the configured Redis URL, opens a client, and verifies
// the connection with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
