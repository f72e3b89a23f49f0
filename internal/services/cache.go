package services

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"cv-formatter/internal/models"
)

// ResultCache memoizes formatter output keyed by the exact extracted
// text, so a retried upload of the same file skips the provider call.
type ResultCache interface {
	Get(text string) (*models.CV, bool)
	Set(text string, cv *models.CV)
}

type cacheEntry struct {
	cv      models.CV
	addedAt time.Time
}

type memoryCache struct {
	mu         sync.RWMutex
	entries    map[string]*cacheEntry
	ttl        time.Duration
	maxEntries int
}

// NewMemoryCache creates a bounded TTL cache. Entries are keyed by a
// content hash of the input text.
func NewMemoryCache(ttl time.Duration, maxEntries int) ResultCache {
	return &memoryCache{
		entries:    make(map[string]*cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get retrieves a cached record if present and not expired. The caller
// receives a copy so later mutation never leaks back into the cache.
func (c *memoryCache) Get(text string) (*models.CV, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[contentKey(text)]
	if !exists {
		return nil, false
	}
	if time.Since(entry.addedAt) > c.ttl {
		return nil, false
	}

	cv := entry.cv
	return &cv, true
}

// Set stores a copy of the record, evicting the oldest entry when the
// bound is reached.
func (c *memoryCache) Set(text string, cv *models.CV) {
	if cv == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}

	c.entries[contentKey(text)] = &cacheEntry{
		cv:      *cv,
		addedAt: time.Now(),
	}
}

func (c *memoryCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.addedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.addedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func contentKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", hash)
}
