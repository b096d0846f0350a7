package cache

import "sync"

var (
	_ Cache  = (*MemoryCache)(nil)
	_ Pruner = (*MemoryCache)(nil)
)

// MemoryCache is a map-backed Cache safe for concurrent use. It lives
// as long as the caller keeps it; nothing is persisted or expired.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]string),
	}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.data[key]
	return value, exists
}

func (c *MemoryCache) Put(key string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = value
}

func (c *MemoryCache) Retain(keep func(key string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key := range c.data {
		if !keep(key) {
			delete(c.data, key)
			evicted++
		}
	}
	return evicted
}
