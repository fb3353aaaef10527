package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nurpe/aifa-contracts/internal/model"
)

// UserKeyPrefix is the fixed key under which the signed-in user object is
// kept for session bootstrap.
const UserKeyPrefix = "aifa_user:"

// UserCache stores the serialized user for a signed-in session.
type UserCache interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Set(ctx context.Context, user model.User) error
	Delete(ctx context.Context, userID string) error
}

type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Get returns nil without error on a cache miss. A corrupt entry is removed
// and treated as a miss.
func (c *RedisUserCache) Get(ctx context.Context, userID string) (*model.User, error) {
	raw, err := c.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		_ = c.client.Del(ctx, key(userID)).Err()
		return nil, nil
	}
	return &user, nil
}

func (c *RedisUserCache) Set(ctx context.Context, user model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key(user.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache user: %w", err)
	}
	return nil
}

func (c *RedisUserCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("evict cached user: %w", err)
	}
	return nil
}

// NopUserCache is used when no Redis address is configured.
type NopUserCache struct{}

func (NopUserCache) Get(context.Context, string) (*model.User, error) { return nil, nil }
func (NopUserCache) Set(context.Context, model.User) error            { return nil }
func (NopUserCache) Delete(context.Context, string) error             { return nil }

func key(userID string) string {
	return UserKeyPrefix + userID
}
