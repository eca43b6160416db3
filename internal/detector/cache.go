package detector

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheCapacity bounds how many directory results are held at once.
const cacheCapacity = 256

type cacheEntry struct {
	result   DetectionResult
	storedAt time.Time
}

// Cache memoizes detection results per absolute path with a fixed TTL.
// Eviction beyond capacity is least-recently-used. The clock is injected
// so tests can move time without sleeping.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

// NewCache returns a cache whose entries expire after ttl. A nil now
// function defaults to time.Now.
func NewCache(ttl time.Duration, now func() time.Time) (*Cache, error) {
	if now == nil {
		now = time.Now
	}
	entries, err := lru.New[string, cacheEntry](cacheCapacity)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, ttl: ttl, now: now}, nil
}

// Get returns the cached result for abs if one exists and has not
// expired. Expired entries are removed on access.
func (c *Cache) Get(abs string) (DetectionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries.Get(abs)
	if !ok {
		return DetectionResult{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.entries.Remove(abs)
		return DetectionResult{}, false
	}
	return entry.result, true
}

// Put stores a result for abs, replacing any previous entry.
func (c *Cache) Put(abs string, res DetectionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(abs, cacheEntry{result: res, storedAt: c.now()})
}

// Len reports how many entries are currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
