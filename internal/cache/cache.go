package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCorruptEntry is wrapped by Get when a stored value cannot be decoded.
// Callers usually Delete the key and treat it as a miss.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// Cache stores JSON-encodable values by key.
type Cache interface {
	// Get decodes the value stored at key into dst.
	// It reports false when the key is missing or expired.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value at key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the value stored at key.
	Delete(ctx context.Context, key string) error
}
