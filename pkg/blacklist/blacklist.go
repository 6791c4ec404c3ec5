package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist manages revoked JWT tokens in Redis
type TokenBlacklist struct {
	redis *redis.Client
}

// NewTokenBlacklist creates a new token blacklist service
func NewTokenBlacklist(redisClient *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{
		redis: redisClient,
	}
}

// Add adds a token to the blacklist with TTL. The entry is
// automatically removed after the TTL expires.
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:token:%s", token)

	if err := b.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}

	return nil
}

// AddWithExpiry adds a token using the token's remaining lifetime as TTL.
func (b *TokenBlacklist) AddWithExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)

	// Already expired, nothing to blacklist
	if ttl <= 0 {
		return nil
	}

	return b.Add(ctx, token, ttl)
}

// IsBlacklisted checks if a token is in the blacklist
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:token:%s", token)

	exists, err := b.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return exists > 0, nil
}

// BlacklistUser invalidates every token issued to the user before now.
// The marker expires after ttl, which should exceed the longest token
// lifetime.
func (b *TokenBlacklist) BlacklistUser(ctx context.Context, userID string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:user:%s", userID)

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	invalidationTimestamp := time.Now().Unix()
	return b.redis.Set(ctx, key, invalidationTimestamp, ttl).Err()
}

// IsUserBlacklisted checks if a token was issued before the user's
// invalidation marker.
func (b *TokenBlacklist) IsUserBlacklisted(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	key := fmt.Sprintf("blacklist:user:%s", userID)

	timestamp, err := b.redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	invalidationTime := time.Unix(timestamp, 0)
	return tokenIssuedAt.Before(invalidationTime), nil
}
