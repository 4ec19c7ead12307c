package intake

import (
	"image"
	"sync"
	"time"
)

type previewEntry struct {
	img        image.Image
	expiration time.Time
}

// previewCache holds derived thumbnails for the lifetime of one dialog
// invocation. Bounded and TTL-based; expired entries are dropped on
// access rather than by a background sweeper, since the cache dies
// with the dialog anyway.
type previewCache struct {
	mu      sync.Mutex
	data    map[string]previewEntry
	ttl     time.Duration
	maxSize int
}

func newPreviewCache(ttl time.Duration, maxSize int) *previewCache {
	return &previewCache{
		data:    make(map[string]previewEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

func (c *previewCache) Get(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiration) {
		delete(c.data, key)
		return nil, false
	}
	return entry.img, true
}

func (c *previewCache) Set(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.data) >= c.maxSize {
		c.evictOldest()
	}
	c.data[key] = previewEntry{
		img:        img,
		expiration: time.Now().Add(c.ttl),
	}
}

func (c *previewCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
}

func (c *previewCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]previewEntry)
}

func (c *previewCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.data)
}

func (c *previewCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.data {
		if oldestKey == "" || entry.expiration.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiration
		}
	}
	if oldestKey != "" {
		delete(c.data, oldestKey)
	}
}
