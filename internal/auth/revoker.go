package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "auth:revoked:"

// Revoker tracks revoked token IDs until their natural expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) bool
}

// RedisRevoker stores revoked token IDs in Redis with a TTL matching
// the token's remaining lifetime.
type RedisRevoker struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRevoker creates a Redis-backed token revoker.
func NewRedisRevoker(client *redis.Client, logger *zap.Logger) *RedisRevoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRevoker{client: client, logger: logger}
}

// Revoke marks a token ID as revoked for ttl.
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked. A Redis
// failure counts as not revoked: revocation is best-effort and must
// not lock every caller out.
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) bool {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		r.logger.Warn("revocation check failed", zap.Error(err))
		return false
	}
	return n > 0
}
