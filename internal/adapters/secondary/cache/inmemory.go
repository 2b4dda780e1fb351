package cache

import (
	"sync"

	"github.com/denchenko/dash/internal/core/domain"
)

// InMemoryCache is an unbounded thread-safe page cache. Entries live for the whole process.
type InMemoryCache[T any] struct {
	pages sync.Map // map[domain.ListQuery]domain.Page[T]
}

// NewInMemoryCache creates a new in-memory cache instance.
func NewInMemoryCache[T any]() *InMemoryCache[T] {
	return &InMemoryCache[T]{}
}

// Get retrieves the page stored for q.
func (c *InMemoryCache[T]) Get(q domain.ListQuery) (domain.Page[T], bool) {
	if cached, ok := c.pages.Load(q); ok {
		if page, ok := cached.(domain.Page[T]); ok {
			return page, true
		}
	}

	return domain.Page[T]{}, false
}

// Store stores page under q, replacing any previous entry.
func (c *InMemoryCache[T]) Store(q domain.ListQuery, page domain.Page[T]) {
	c.pages.Store(q, page)
}

// Purge removes every entry.
func (c *InMemoryCache[T]) Purge() {
	c.pages.Clear()
}

// Len returns the number of cached pages.
func (c *InMemoryCache[T]) Len() int {
	n := 0
	c.pages.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
