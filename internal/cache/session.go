package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// revokedKeyPrefix is the Redis key prefix for revoked session tokens.
	revokedKeyPrefix = "session:revoked:"
)

// RevokeToken marks a session token's jti as revoked until the token would
// have expired anyway. Called on logout; checked by the auth middleware.
func (c *Cache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to revoke.
		return nil
	}

	key := revokedKeyPrefix + jti
	if err := c.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether a token's jti is on the revocation list.
func (c *Cache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	key := revokedKeyPrefix + jti

	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}
