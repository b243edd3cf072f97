package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"contacts/internal/domain/entity"
	"contacts/internal/domain/service"
	"contacts/internal/errors"

	"github.com/redis/go-redis/v9"
)

const userKeyPrefix = "user:"

// redisUserCache implements service.UserCache on a Redis key-value store.
// Entry expiry is enforced by Redis itself through per-key TTLs; callers
// never inspect timestamps.
type redisUserCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewUserCache is the constructor for redisUserCache.
func NewUserCache(client *redis.Client, logger *slog.Logger) service.UserCache {
	return &redisUserCache{
		client: client,
		logger: logger,
	}
}

// Get returns the cached principal for the email, or nil on a miss.
// A payload that fails to decode is treated as a miss so the caller falls
// through to the persistent store instead of failing the request.
func (c *redisUserCache) Get(ctx context.Context, email string) (*entity.User, error) {
	payload, err := c.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to read user cache")
	}

	var user entity.User
	if err := json.Unmarshal(payload, &user); err != nil {
		c.logger.Warn("Discarding undecodable user cache entry",
			slog.String("email", email),
			slog.Any("error", err),
		)

		return nil, nil
	}

	return &user, nil
}

// Set stores the principal under user:<email>, overwriting any existing entry
// and resetting the TTL.
func (c *redisUserCache) Set(ctx context.Context, email string, user *entity.User, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = service.UserCacheTTL
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "failed to serialize user for cache")
	}

	if err := c.client.Set(ctx, userKey(email), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write user cache")
	}

	return nil
}

// Invalidate removes the entry immediately. Deleting a missing key is not an error.
func (c *redisUserCache) Invalidate(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, userKey(email)).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate user cache")
	}

	return nil
}

func userKey(email string) string {
	return userKeyPrefix + email
}
