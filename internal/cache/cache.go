// Package cache provides the in-memory page cache used by the collector so
// that repeated runs within a session do not re-fetch the same article.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PageCache stores extracted article text keyed by URL.
type PageCache struct {
	cache *gocache.Cache
}

// NewPageCache creates a page cache with the given default TTL.
func NewPageCache(defaultTTL time.Duration) *PageCache {
	cleanup := defaultTTL
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &PageCache{
		cache: gocache.New(defaultTTL, cleanup),
	}
}

// Get returns the cached text for a URL.
func (c *PageCache) Get(url string) (string, bool) {
	if val, found := c.cache.Get(Key(url)); found {
		return val.(string), true
	}
	return "", false
}

// Set stores the extracted text for a URL with the default TTL.
func (c *PageCache) Set(url, text string) {
	c.cache.SetDefault(Key(url), text)
}

// Key generates a cache key from a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "intelbrief:v1:" + hex.EncodeToString(hash[:])
}
