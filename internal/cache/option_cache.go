package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// OptionCache caches the loaded option list in Redis so restarts don't hit
// MongoDB.
type OptionCache interface {
	Set(ctx context.Context, options []string) error
	Get(ctx context.Context) ([]string, error)
	Delete(ctx context.Context) error
}

type optionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOptionCache creates a new option cache.
func NewOptionCache(client *redis.Client) OptionCache {
	return &optionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

const optionKey = "options:all"

func (c *optionCache) Set(ctx context.Context, options []string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, optionKey, data, c.ttl).Err()
}

// Get returns the cached option list, or nil on a cache miss.
func (c *optionCache) Get(ctx context.Context) ([]string, error) {
	data, err := c.client.Get(ctx, optionKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var options []string
	if err := json.Unmarshal([]byte(data), &options); err != nil {
		return nil, err
	}
	return options, nil
}

func (c *optionCache) Delete(ctx context.Context) error {
	return c.client.Del(ctx, optionKey).Err()
}
