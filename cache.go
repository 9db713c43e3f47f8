package factorial

import (
	"context"
	"fmt"
	"math/big"
	"sync"
)

// ResultCache maps input values to their factorials for the lifetime of one run.
// It is safe for concurrent use. Stored values are never overwritten or mutated.
//
// Every key owns a ready channel which is closed when the value is stored,
// so readers can wait for a value without polling.
type ResultCache struct {
	mu      sync.Mutex
	entries map[int]*cacheEntry
	stored  int
}

type cacheEntry struct {
	ready   chan struct{}
	value   *big.Int
	claimed bool
}

// NewResultCache returns an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[int]*cacheEntry)}
}

// entry returns the entry for key, creating it if needed. c.mu must be held.
func (c *ResultCache) entry(key int) *cacheEntry {
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{ready: make(chan struct{})}
		c.entries[key] = e
	}
	return e
}

// Load returns the stored factorial for key, if any.
func (c *ResultCache) Load(key int) (*big.Int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.value != nil {
		return e.value, true
	}
	return nil, false
}

// Store records value for key unless key already has a value.
// It reports whether value was stored.
func (c *ResultCache) Store(key int, value *big.Int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	if e.value != nil {
		return false
	}
	e.value = value
	c.stored++
	close(e.ready)
	return true
}

// Claim reports true for the first caller claiming key and false afterwards.
// A claim marks key as scheduled for computation; it does not store anything.
func (c *ResultCache) Claim(key int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	if e.claimed {
		return false
	}
	e.claimed = true
	return true
}

// Await blocks until key has a value.
//
// When terminated is closed while the value is still missing, Await returns
// ErrResultLost: nothing will store it anymore. When ctx is done, Await returns
// ErrCancelled.
func (c *ResultCache) Await(ctx context.Context, key int, terminated <-chan struct{}) (*big.Int, error) {
	c.mu.Lock()
	e := c.entry(key)
	c.mu.Unlock()

	select {
	case <-e.ready:
		return e.value, nil
	default:
	}

	select {
	case <-e.ready:
		return e.value, nil
	case <-terminated:
		// a store may have raced with termination
		select {
		case <-e.ready:
			return e.value, nil
		default:
			return nil, ErrResultLost
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}

// Len returns the number of stored values.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stored
}
