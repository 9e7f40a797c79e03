package content

import (
	"sync"
	"time"
)

// Cache memoizes parsed records by file path. Construct one per build (or per
// process in serve mode) and hand it to NewRepository with WithCache.
// A zero ttl keeps entries until they are invalidated.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	record  Record
	err     error
	fetched time.Time
}

// NewCache creates an empty Cache.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{entries: make(map[string]cacheEntry), ttl: ttl}
}

func (c *Cache) valid(e cacheEntry) bool {
	return c.ttl == 0 || time.Since(e.fetched) < c.ttl
}

// get returns the cached parse result for path, if fresh.
func (c *Cache) get(path string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok || !c.valid(e) {
		return cacheEntry{}, false
	}
	return e, true
}

func (c *Cache) put(path string, rec Record, err error) {
	c.mu.Lock()
	c.entries[path] = cacheEntry{record: rec, err: err, fetched: time.Now()}
	c.mu.Unlock()
}

// Invalidate drops the entry for path so the next read re-parses the file.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// InvalidateAll clears every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
