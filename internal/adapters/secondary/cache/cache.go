// Package cache provides the page caches used by the list stores.
package cache

import (
	"github.com/denchenko/dash/internal/core/app"
)

// New returns an LRU cache holding at most size pages, or an unbounded cache when size is 0.
func New[T any](size int) (app.PageCache[T], error) {
	if size == 0 {
		return NewInMemoryCache[T](), nil
	}

	return NewLRUCache[T](size)
}
