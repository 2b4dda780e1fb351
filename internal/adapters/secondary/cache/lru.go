package cache

import (
	"fmt"

	"github.com/denchenko/dash/internal/core/domain"
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a bounded page cache that evicts the least recently used page.
type LRUCache[T any] struct {
	pages *lru.Cache[domain.ListQuery, domain.Page[T]]
}

// NewLRUCache creates a cache holding at most size pages.
func NewLRUCache[T any](size int) (*LRUCache[T], error) {
	pages, err := lru.New[domain.ListQuery, domain.Page[T]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	return &LRUCache[T]{pages: pages}, nil
}

// Get retrieves the page stored for q and marks it recently used.
func (c *LRUCache[T]) Get(q domain.ListQuery) (domain.Page[T], bool) {
	return c.pages.Get(q)
}

// Store stores page under q.
func (c *LRUCache[T]) Store(q domain.ListQuery, page domain.Page[T]) {
	c.pages.Add(q, page)
}

// Purge removes every entry.
func (c *LRUCache[T]) Purge() {
	c.pages.Purge()
}

// Len returns the number of cached pages.
func (c *LRUCache[T]) Len() int {
	return c.pages.Len()
}
