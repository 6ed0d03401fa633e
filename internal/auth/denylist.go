package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "campus:token:revoked:"

// Denylist tracks revoked refresh token identifiers in Redis. Entries expire
// together with the token they revoke, so the set stays bounded. Revocation
// is visible to the next refresh attempt as soon as Revoke returns.
type Denylist struct {
	client *redis.Client
}

// NewDenylist constructs a denylist backed by the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks a token identifier as revoked until its natural expiry.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}
	if err := d.client.Set(ctx, denylistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token identifier has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	count, err := d.client.Exists(ctx, denylistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return count > 0, nil
}
