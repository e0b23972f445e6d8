package db

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

// Fetcher retrieves raw rows for a table. Both Source and Cache satisfy it.
type Fetcher interface {
	FetchRows(ctx context.Context, table string, limit int) ([]sensor.RawRow, error)
}

type cacheEntry struct {
	rows      []sensor.RawRow
	fetchedAt time.Time
}

// Cache memoizes FetchRows results per (table, limit) for a bounded time.
// The transformation core downstream is pure, which is what makes this
// memoization correct. Errors are never cached.
type Cache struct {
	next Fetcher
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache wraps a fetcher with TTL-based memoization. A non-positive ttl
// disables caching entirely.
func NewCache(next Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// FetchRows returns the cached rows when fresh, otherwise delegates and
// stores the result.
func (c *Cache) FetchRows(ctx context.Context, table string, limit int) ([]sensor.RawRow, error) {
	if c.ttl <= 0 {
		return c.next.FetchRows(ctx, table, limit)
	}

	key := table + "\x00" + strconv.Itoa(limit)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return entry.rows, nil
	}

	rows, err := c.next.FetchRows(ctx, table, limit)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{rows: rows, fetchedAt: c.now()}
	c.mu.Unlock()

	return rows, nil
}
