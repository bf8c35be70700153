package dataset

import (
	"path/filepath"
	"sync"
)

// Cache holds loaded tables keyed by absolute path for the process lifetime.
// The first Get for a path loads it; later calls return the same *Table.
// Failed loads are not cached.
type Cache struct {
	opt Options

	mu      sync.Mutex
	entries map[string]*Table
	loads   int
}

// NewCache returns an empty cache that loads files with opt.
func NewCache(opt Options) *Cache {
	return &Cache{opt: opt, entries: make(map[string]*Table)}
}

// Get returns the cached table for path, loading it on first use.
func (c *Cache) Get(path string) (*Table, error) {
	key := cacheKey(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.entries[key]; ok {
		return t, nil
	}
	t, err := Load(path, c.opt)
	if err != nil {
		return nil, err
	}
	c.loads++
	c.entries[key] = t
	return t, nil
}

// Invalidate drops the cached table for path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, cacheKey(path))
	c.mu.Unlock()
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Loads returns how many times a file was actually read.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
