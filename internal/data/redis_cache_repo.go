package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shutterdesk/studio/internal/core"
)

// RedisCacheRepo implements core.CacheRepository and core.InvalidationBus using Redis.
type RedisCacheRepo struct {
	client  redis.UniversalClient
	channel string
}

var (
	_ core.CacheRepository = (*RedisCacheRepo)(nil)
	_ core.InvalidationBus = (*RedisCacheRepo)(nil)
)

// NewRedisCacheRepo creates a new RedisCacheRepo with the given Redis client.
func NewRedisCacheRepo(client redis.UniversalClient) *RedisCacheRepo {
	return &RedisCacheRepo{client: client, channel: core.InvalidationChannel}
}

// WithChannel sets the pub/sub channel used for invalidations. Empty keeps the default.
func (r *RedisCacheRepo) WithChannel(channel string) *RedisCacheRepo {
	if channel = strings.TrimSpace(channel); channel != "" {
		r.channel = channel
	}
	return r
}

var errEmptyKey = errors.New("key cannot be empty")

// Set stores a value in Redis with the given key and TTL.
func (r *RedisCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errEmptyKey
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get retrieves a value from Redis by key.
func (r *RedisCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errEmptyKey
	}

	result, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return result, nil
}

// Delete removes a key from Redis.
func (r *RedisCacheRepo) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errEmptyKey
	}

	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return n > 0, nil
}

// Health checks the health of the Redis connection.
func (r *RedisCacheRepo) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PublishInvalidation announces a changed resource collection on the invalidation channel.
func (r *RedisCacheRepo) PublishInvalidation(ctx context.Context, resource string) error {
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return errors.New("resource cannot be empty")
	}
	if err := r.client.Publish(ctx, r.channel, resource).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// SubscribeInvalidations blocks, invoking fn for every announced resource until ctx is done.
func (r *RedisCacheRepo) SubscribeInvalidations(ctx context.Context, fn func(resource string)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// Wait for the subscription confirmation so publishes after this call are not missed.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if msg != nil && msg.Payload != "" {
				fn(msg.Payload)
			}
		}
	}
}
