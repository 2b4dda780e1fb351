package app

import (
	"context"
	"fmt"

	"github.com/denchenko/dash/internal/core/domain"
)

// fetchOne loads a single entity, sharing the store's loading flag and error field.
// Nothing is cached. The error is recorded in state and returned to the caller.
func fetchOne[T, E any](
	ctx context.Context,
	s *ListStore[T],
	what string,
	id int,
	load func(ctx context.Context, id int) (*E, error),
) (*E, error) {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	entity, err := load(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
	if err != nil {
		err = fmt.Errorf("failed to get %s %d: %w", what, id, err)

		return nil, PolicyPropagate.settle(s.logger, "fetch "+what, err, &s.state.Err)
	}

	return entity, nil
}

// Get fetches one user by id.
func (u *UserList) Get(ctx context.Context, id int) (*domain.User, error) {
	return fetchOne(ctx, u.ListStore, "user", id, u.repo.GetUser)
}

// Get fetches one product by id.
func (p *ProductList) Get(ctx context.Context, id int) (*domain.Product, error) {
	return fetchOne(ctx, p.ListStore, "product", id, p.repo.GetProduct)
}
