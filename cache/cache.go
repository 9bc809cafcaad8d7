// Package cache holds recently computed batch results so repeated API
// calls for the same page window don't each pay for a full browser
// traversal.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/bidwatch/bidwatch/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	result    *models.BatchResult
	createdAt time.Time
}

// Cache is an LRU-bounded batch-result cache. It is safe for
// concurrent use.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, entry]
}

// New creates a Cache holding at most maxEntries results.
func New(maxEntries int) (*Cache, error) {
	if maxEntries < 1 {
		maxEntries = 1
	}
	l, err := lru.New[string, entry](maxEntries)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Key derives the cache key for one scrape window.
func Key(sourceURL string, start, end int) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d", sourceURL, start, end))
	return hex.EncodeToString(h[:])
}

// Get returns a cached result younger than maxAge, if any. maxAge <= 0
// disables lookup.
func (c *Cache) Get(key string, maxAge time.Duration) (*models.BatchResult, bool) {
	if maxAge <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Since(e.createdAt) > maxAge {
		c.lru.Remove(key)
		return nil, false
	}
	return e.result, true
}

// Set stores a result. The LRU evicts the least recently used entry
// when at capacity.
func (c *Cache) Set(key string, result *models.BatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry{result: result, createdAt: time.Now()})
}
