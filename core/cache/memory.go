package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value    []byte
	hash     map[string]string
	deadline time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.deadline.IsZero() && now.After(e.deadline)
}

// MemoryCache is an in-process Cache used by the "memory" driver and in tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*memoryEntry), now: time.Now}
}

// lookup returns a live entry, evicting it if expired. Caller holds mu.
func (c *MemoryCache) lookup(key string) *memoryEntry {
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return nil
	}
	return e
}

func (c *MemoryCache) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.lookup(key)
	if e == nil || e.value == nil {
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries[key] = &memoryEntry{value: stored, deadline: c.deadline(ttl)}
	return nil
}

func (c *MemoryCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	if c.lookup(key) != nil {
		c.mu.Unlock()
		return false, nil
	}
	c.mu.Unlock()
	return true, c.Set(ctx, key, value, ttl)
}

func (c *MemoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *MemoryCache) HashGetAll(_ context.Context, key string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string)
	if e := c.lookup(key); e != nil {
		for k, v := range e.hash {
			out[k] = v
		}
	}
	return out, nil
}

// hashEntry returns the hash entry for key, creating it when absent. Caller holds mu.
func (c *MemoryCache) hashEntry(key string) *memoryEntry {
	e := c.lookup(key)
	if e == nil {
		e = &memoryEntry{}
		c.entries[key] = e
	}
	if e.hash == nil {
		e.hash = make(map[string]string)
	}
	return e
}

func (c *MemoryCache) HashSetAll(_ context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.hashEntry(key)
	for k, v := range fields {
		e.hash[k] = v
	}
	return nil
}

func (c *MemoryCache) HashSet(ctx context.Context, key, field, value string) error {
	return c.HashSetAll(ctx, key, map[string]string{field: value})
}

func (c *MemoryCache) HashIncrBy(_ context.Context, key, field string, incr int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.hashEntry(key)
	current, err := strconv.ParseInt(e.hash[field], 10, 64)
	if err != nil && e.hash[field] != "" {
		return 0, err
	}
	current += incr
	e.hash[field] = strconv.FormatInt(current, 10)
	return current, nil
}

func (c *MemoryCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.lookup(key); e != nil {
		e.deadline = c.deadline(ttl)
	}
	return nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

func (c *MemoryCache) Close() error { return nil }
