package auth

import (
	"context"
	"sync"
	"time"
)

// TokenBlacklist records refresh tokens that have been spent.
//
// Refresh tokens rotate: using one blacklists its JTI for the remainder
// of its lifetime, so a replayed token is rejected even though its
// signature and expiry are still valid. Access tokens are never
// blacklisted; their short lifetime bounds the exposure.
type TokenBlacklist interface {
	// Revoke marks the token ID as spent for the given duration.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token ID has been spent.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryBlacklist is a map-backed TokenBlacklist for tests and local
// development. Entries expire lazily on read.
type MemoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryBlacklist creates an empty in-memory blacklist.
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Ensure MemoryBlacklist implements the TokenBlacklist interface
var _ TokenBlacklist = (*MemoryBlacklist)(nil)

// Revoke implements TokenBlacklist.Revoke
func (b *MemoryBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.revoked[tokenID] = b.now().Add(ttl)
	return nil
}

// IsRevoked implements TokenBlacklist.IsRevoked
func (b *MemoryBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.revoked[tokenID]
	if !ok {
		return false, nil
	}

	if b.now().After(expiry) {
		delete(b.revoked, tokenID)
		return false, nil
	}

	return true, nil
}
