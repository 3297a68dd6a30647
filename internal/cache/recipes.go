package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecipeCache provides Redis-backed caching for generated recipes.
// A nil client turns every operation into a no-op miss.
type RecipeCache struct {
	client *redis.Client
	prefix string
}

var _ Cache = (*RecipeCache)(nil)

// NewRecipeCache creates a new recipe cache with the given Redis client.
func NewRecipeCache(client *redis.Client) *RecipeCache {
	return &RecipeCache{
		client: client,
		prefix: "recipes:",
	}
}

// makeKey hashes the request key so arbitrary ingredient text stays a valid, bounded Redis key.
func (c *RecipeCache) makeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s%x", c.prefix, hash)
}

func (c *RecipeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.client == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, c.makeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return true, nil
}

func (c *RecipeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.makeKey(key), data, ttl).Err()
}

func (c *RecipeCache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.makeKey(key)).Err()
}
