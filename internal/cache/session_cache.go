package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache tracks revoked tokens by jti until they would have expired
type SessionCache interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type sessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func revokedKey(jti string) string {
	return "auth:revoked:" + jti
}

func (c *sessionCache) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (c *sessionCache) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := c.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
