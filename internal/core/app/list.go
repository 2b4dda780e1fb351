package app

import (
	"context"
	"sync"

	"github.com/denchenko/dash/internal/core/domain"
	"github.com/rs/zerolog"
)

// ListState is a snapshot of a list store.
type ListState[T any] struct {
	Items    []T    `json:"items"`
	Total    int    `json:"total"`
	Loading  bool   `json:"loading"`
	Err      string `json:"error,omitempty"`
	Page     int    `json:"page"`
	Search   string `json:"search"`
	Category string `json:"category,omitempty"`
}

// Pages returns the number of addressable pages for the current total.
func (s ListState[T]) Pages() int {
	return domain.PageCount(s.Total)
}

// FetchOption overrides one field of the stored query for a single Fetch.
type FetchOption func(*domain.ListQuery)

func WithPage(page int) FetchOption {
	return func(q *domain.ListQuery) { q.Page = page }
}

func WithSearch(text string) FetchOption {
	return func(q *domain.ListQuery) { q.Search = text }
}

func WithCategory(category string) FetchOption {
	return func(q *domain.ListQuery) { q.Category = category }
}

type pageLoader[T any] func(ctx context.Context, q domain.ListQuery) (*domain.Page[T], error)

// ListStore tracks pagination and filter state of one collection and memoizes fetched pages.
//
// Every Fetch takes a sequence number. A network result is adopted into state only when no
// other Fetch was issued after it; older results are still cached under their own query.
type ListStore[T any] struct {
	mu         sync.Mutex
	kind       domain.ResourceKind
	categories bool
	load       pageLoader[T]
	cache      PageCache[T]
	logger     zerolog.Logger

	state    ListState[T]
	issued   uint64
	inflight int
}

func newListStore[T any](
	kind domain.ResourceKind,
	categories bool,
	load pageLoader[T],
	cache PageCache[T],
	logger zerolog.Logger,
) *ListStore[T] {
	return &ListStore[T]{
		kind:       kind,
		categories: categories,
		load:       load,
		cache:      cache,
		logger:     logger.With().Str("list", string(kind)).Logger(),
	}
}

// State returns a copy of the current state. Items is never nil.
func (s *ListStore[T]) State() ListState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Items = append([]T{}, s.state.Items...)

	return st
}

// SetSearch sets the search text and resets to the first page.
// When the store has a category filter it is cleared.
func (s *ListStore[T]) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Search = text
	s.state.Page = 0
	if s.categories {
		s.state.Category = ""
	}
}

// SetPage sets the page index. It is not checked against the total.
func (s *ListStore[T]) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Page = page
}

// Invalidate drops every cached page.
func (s *ListStore[T]) Invalidate() {
	s.cache.Purge()
}

// Fetch serves the page for the stored query, with opts applied on top, from the cache or
// the remote API. Failures are recorded in state and never returned.
func (s *ListStore[T]) Fetch(ctx context.Context, opts ...FetchOption) {
	s.mu.Lock()

	q := domain.ListQuery{
		Kind:     s.kind,
		Page:     s.state.Page,
		Search:   s.state.Search,
		Category: s.state.Category,
	}
	for _, opt := range opts {
		opt(&q)
	}
	if !s.categories {
		q.Category = ""
	}

	s.issued++
	seq := s.issued

	if page, ok := s.cache.Get(q); ok {
		s.adopt(q, page)
		s.mu.Unlock()

		s.logger.Debug().Int("page", q.Page).Msg("served from cache")

		return
	}

	s.state.Loading = true
	s.state.Err = ""
	s.inflight++
	s.mu.Unlock()

	page, err := s.load(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--
	latest := seq == s.issued

	if err == nil {
		s.cache.Store(q, *page)
	}

	if !latest {
		if s.inflight == 0 {
			s.state.Loading = false
		}
		s.logger.Debug().Err(err).Int("page", q.Page).Msg("discarded stale result")

		return
	}

	s.state.Loading = false
	if err != nil {
		_ = PolicyAbsorb.settle(s.logger, "fetch "+string(s.kind), err, &s.state.Err)

		return
	}

	s.adopt(q, *page)
}

func (s *ListStore[T]) adopt(q domain.ListQuery, page domain.Page[T]) {
	s.state.Items = page.Items
	s.state.Total = page.Total
	s.state.Page = q.Page
	s.state.Search = q.Search
	s.state.Category = q.Category
}

// UserList is the list store of users.
type UserList struct {
	*ListStore[domain.User]
	repo Repository
}

// NewUserList creates the users list store.
func NewUserList(repo Repository, cache PageCache[domain.User], logger zerolog.Logger) *UserList {
	load := func(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error) {
		if q.Search != "" {
			return repo.SearchUsers(ctx, q.Search, domain.PageSize, q.Skip())
		}

		return repo.ListUsers(ctx, domain.PageSize, q.Skip())
	}

	return &UserList{
		ListStore: newListStore(domain.ResourceUsers, false, load, cache, logger),
		repo:      repo,
	}
}

// ProductList is the list store of products, with a category filter that excludes search.
type ProductList struct {
	*ListStore[domain.Product]
	repo Repository

	catMu         sync.RWMutex
	categoryNames []string
}

// NewProductList creates the products list store.
func NewProductList(repo Repository, cache PageCache[domain.Product], logger zerolog.Logger) *ProductList {
	load := func(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Product], error) {
		switch {
		case q.Search != "":
			return repo.SearchProducts(ctx, q.Search, domain.PageSize, q.Skip())
		case q.Category != "":
			return repo.ListProductsByCategory(ctx, q.Category, domain.PageSize, q.Skip())
		default:
			return repo.ListProducts(ctx, domain.PageSize, q.Skip())
		}
	}

	return &ProductList{
		ListStore: newListStore(domain.ResourceProducts, true, load, cache, logger),
		repo:      repo,
	}
}

// SetCategory sets the category filter, clears the search text and resets to the first page.
func (p *ProductList) SetCategory(category string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Category = category
	p.state.Search = ""
	p.state.Page = 0
}

// Categories returns the known category names.
func (p *ProductList) Categories() []string {
	p.catMu.RLock()
	defer p.catMu.RUnlock()

	return append([]string(nil), p.categoryNames...)
}

// FetchCategories loads the category names. A failure is only logged and keeps the
// previously known names.
func (p *ProductList) FetchCategories(ctx context.Context) {
	names, err := p.repo.ListCategories(ctx)
	if err != nil {
		_ = PolicyLog.settle(p.logger, "fetch categories", err, nil)

		return
	}

	p.catMu.Lock()
	p.categoryNames = names
	p.catMu.Unlock()
}
