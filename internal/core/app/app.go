package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/denchenko/dash/internal/core/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNotAuthenticated is returned by operations that require a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Repository defines the remote API operations (port).
type Repository interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Login, error)
	ListUsers(ctx context.Context, limit, skip int) (*domain.Page[domain.User], error)
	SearchUsers(ctx context.Context, query string, limit, skip int) (*domain.Page[domain.User], error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	ListProducts(ctx context.Context, limit, skip int) (*domain.Page[domain.Product], error)
	SearchProducts(ctx context.Context, query string, limit, skip int) (*domain.Page[domain.Product], error)
	ListProductsByCategory(ctx context.Context, category string, limit, skip int) (*domain.Page[domain.Product], error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// SessionStorage persists the token and the serialized identity together (port).
// Load returns empty strings when nothing is stored.
type SessionStorage interface {
	Save(ctx context.Context, token, identity string) error
	Load(ctx context.Context) (token, identity string, err error)
	Clear(ctx context.Context) error
}

// PageCache memoizes list pages by query (port).
type PageCache[T any] interface {
	Get(q domain.ListQuery) (domain.Page[T], bool)
	Store(q domain.ListQuery, page domain.Page[T])
	Purge()
}

// App represents the core application: one session store and one list store per collection.
type App struct {
	Session  *SessionStore
	Users    *UserList
	Products *ProductList
	logger   zerolog.Logger
}

// NewApp creates a new application instance and restores a persisted session, if any.
func NewApp(session *SessionStore, users *UserList, products *ProductList, logger zerolog.Logger) *App {
	session.Restore(context.Background())

	return &App{
		Session:  session,
		Users:    users,
		Products: products,
		logger:   logger,
	}
}

// RequireSession fails with ErrNotAuthenticated unless a session is held.
func (a *App) RequireSession() error {
	if !a.Session.State().Authenticated {
		return ErrNotAuthenticated
	}

	return nil
}

// Overview loads the current page of users and products concurrently and reports their totals.
func (a *App) Overview(ctx context.Context) (*domain.Overview, error) {
	if err := a.RequireSession(); err != nil {
		return nil, err
	}

	var errg errgroup.Group

	errg.Go(func() error {
		a.Users.Fetch(ctx)

		return ctx.Err()
	})
	errg.Go(func() error {
		a.Products.Fetch(ctx)

		return ctx.Err()
	})

	if err := errg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}

	return &domain.Overview{
		Identity:      a.Session.State().Identity,
		TotalUsers:    a.Users.State().Total,
		TotalProducts: a.Products.State().Total,
	}, nil
}
