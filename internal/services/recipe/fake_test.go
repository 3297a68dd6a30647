package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kerouma/rouma/internal/cache"
)

// fakeProvider is a scripted Provider for driver tests.
type fakeProvider struct {
	name     ProviderType
	text     string
	err      error
	delay    time.Duration
	probeErr error
	panics   bool

	calls   atomic.Int32
	mu      sync.Mutex
	prompts []Prompt
}

func (f *fakeProvider) Name() ProviderType { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.text, f.err
}

func (f *fakeProvider) Probe(ctx context.Context) error {
	if f.panics {
		panic("probe exploded")
	}
	return f.probeErr
}

func (f *fakeProvider) lastPrompt() Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return Prompt{}
	}
	return f.prompts[len(f.prompts)-1]
}

// memoryCache is an in-process ResultCache.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	ttls    map[string]time.Duration
	err     error
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %v", cache.ErrCorruptEntry, err)
	}
	return true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	delete(c.ttls, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *memoryCache) put(key string, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = raw
}

func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

const validRecipeText = `Recipe Name: Ndolé
Origin: Cameroon
Ingredients: bitter leaves, groundnuts, shrimp
Instructions: Boil the leaves. Stir in ground nuts.
Cooking Time: 1 hour
---
Recipe Name: Mandazi
Origin: Tanzania
Ingredients: flour, coconut milk`
