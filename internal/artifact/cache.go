package artifact

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes artifact resolutions by binary-target identity for the
// lifetime of one build-plan computation.
//
// Concurrency contract: the cache is shared across concurrently computed
// products within one plan instance. Any number of goroutines may call
// Resolve for the same key; exactly one of them executes the load function
// (single producer per key) while the rest wait for its result. Successful
// results are retained; failures are not, so a later product retries rather
// than inheriting another product's abort.
type Cache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	results map[string]Resolution
}

// NewCache creates an empty cache, owned by one planner instance.
func NewCache() *Cache {
	return &Cache{results: make(map[string]Resolution)}
}

// Resolve returns the memoized resolution for key, or runs load to produce
// it under single-producer-per-key semantics.
func (c *Cache) Resolve(key string, load func() (Resolution, error)) (Resolution, error) {
	c.mu.RLock()
	res, ok := c.results[key]
	c.mu.RUnlock()
	if ok {
		return res, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the group: a previous caller may have stored the
		// result between our read and the group admitting us.
		c.mu.RLock()
		res, ok := c.results[key]
		c.mu.RUnlock()
		if ok {
			return res, nil
		}

		res, err := load()
		if err != nil {
			return Resolution{}, err
		}
		c.mu.Lock()
		c.results[key] = res
		c.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return Resolution{}, err
	}
	return v.(Resolution), nil
}
