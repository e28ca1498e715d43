package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"user-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// UserCache is a redis-backed read-through cache of users by id. It serves
// the CRUD read path only; credential lookups always go to the store.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUserCache(rdb *redis.Client) *UserCache {
	return &UserCache{rdb: rdb, ttl: 10 * time.Minute}
}

func userKey(id int) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns the cached user, or false on a miss. Decode failures count as
// misses.
func (c *UserCache) Get(ctx context.Context, id int) (*entity.User, bool) {
	val, err := c.rdb.Get(ctx, userKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Error().Err(err).Msgf("Error reading user %d from cache", id)
		}
		return nil, false
	}

	user := &entity.User{}
	if err := json.Unmarshal([]byte(val), user); err != nil {
		return nil, false
	}

	return user, true
}

// Set stores the user best-effort. The password hash is excluded from the
// JSON encoding and never lands in redis.
func (c *UserCache) Set(ctx context.Context, user *entity.User) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, userKey(user.ID), data, c.ttl).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error caching user %d", user.ID)
	}
}

// Invalidate drops the cached entry after an update or delete.
func (c *UserCache) Invalidate(ctx context.Context, id int) {
	if err := c.rdb.Del(ctx, userKey(id)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error invalidating cached user %d", id)
	}
}
