package icons

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// HandleCache keeps native icon handles built from assets, freeing them when
// they are evicted or purged.
type HandleCache[H any] struct {
	mu    sync.Mutex
	cache *lru.Cache[string, H]
	load  func(Asset) (H, error)
}

// NewHandleCache creates a cache holding at most size handles. free is called
// for every handle that leaves the cache.
func NewHandleCache[H any](size int, load func(Asset) (H, error), free func(H)) (*HandleCache[H], error) {
	cache, err := lru.NewWithEvict[string, H](size, func(_ string, h H) {
		free(h)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create icon handle cache: %w", err)
	}
	return &HandleCache[H]{cache: cache, load: load}, nil
}

// Get returns the handle for asset, loading it on first use.
func (c *HandleCache[H]) Get(asset Asset) (H, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.cache.Get(asset.Key()); ok {
		return h, nil
	}

	h, err := c.load(asset)
	if err != nil {
		var zero H
		return zero, fmt.Errorf("load icon %s: %w", asset.Key(), err)
	}
	c.cache.Add(asset.Key(), h)
	return h, nil
}

// Len returns the number of cached handles.
func (c *HandleCache[H]) Len() int {
	return c.cache.Len()
}

// Purge frees every cached handle.
func (c *HandleCache[H]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}
