package query

import "sync"

type cacheKey struct {
	grid Grid
	expr string
}

// Cache memoizes parsed conditions by grid and exact expression text.
// It grows without bound; expressions come from a small configured set.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*Condition
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*Condition)}
}

// Get returns the cached condition for (g, expr), parsing it with r on a
// miss. Failed parses are not cached.
func (c *Cache) Get(r *Registry, g Grid, expr string) (cond *Condition, hit bool, err error) {
	key := cacheKey{g, expr}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cond, ok := c.entries[key]; ok {
		return cond, true, nil
	}
	cond, err = Parse(r, g, expr)
	if err != nil {
		return nil, false, err
	}
	c.entries[key] = cond
	return cond, false, nil
}

// Len reports the number of cached conditions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Forget drops every condition parsed against g.
func (c *Cache) Forget(g Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.grid == g {
			delete(c.entries, k)
		}
	}
}

// Reset empties the cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
