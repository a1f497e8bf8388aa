package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rmsato/todoapi/internal/service/auth"
)

// blacklistKeyPrefix namespaces spent refresh token IDs.
const blacklistKeyPrefix = "auth:blacklist:"

// Blacklist implements auth.TokenBlacklist on top of a Redis client.
// Revoked token IDs carry a TTL equal to the token's remaining
// lifetime, so entries clean themselves up once the token would have
// expired anyway.
type Blacklist struct {
	client *redis.Client
}

// NewBlacklist creates a Redis-backed token blacklist using the given
// client. The client's lifecycle is managed by the caller.
func NewBlacklist(client *redis.Client) *Blacklist {
	if client == nil {
		panic("client cannot be nil")
	}
	return &Blacklist{client: client}
}

// Ensure Blacklist implements the auth.TokenBlacklist interface
var _ auth.TokenBlacklist = (*Blacklist)(nil)

// Revoke implements auth.TokenBlacklist.Revoke
func (b *Blacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to record.
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked implements auth.TokenBlacklist.IsRevoked
func (b *Blacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
