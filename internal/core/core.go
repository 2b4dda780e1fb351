package core

import (
	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	"github.com/rs/zerolog"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*app.SessionStore](NewSessionStore),
	do.Lazy[*app.UserList](NewUserList),
	do.Lazy[*app.ProductList](NewProductList),
	do.Lazy[*app.App](NewApp),
)

// NewSessionStore creates the session store with dependencies from the injector.
func NewSessionStore(i do.Injector) (*app.SessionStore, error) {
	repo := do.MustInvoke[app.Repository](i)
	storage := do.MustInvoke[app.SessionStorage](i)
	logger := do.MustInvoke[zerolog.Logger](i)

	return app.NewSessionStore(repo, storage, logger), nil
}

// NewUserList creates the users list store with dependencies from the injector.
func NewUserList(i do.Injector) (*app.UserList, error) {
	repo := do.MustInvoke[app.Repository](i)
	cache := do.MustInvoke[app.PageCache[domain.User]](i)
	logger := do.MustInvoke[zerolog.Logger](i)

	return app.NewUserList(repo, cache, logger), nil
}

// NewProductList creates the products list store with dependencies from the injector.
func NewProductList(i do.Injector) (*app.ProductList, error) {
	repo := do.MustInvoke[app.Repository](i)
	cache := do.MustInvoke[app.PageCache[domain.Product]](i)
	logger := do.MustInvoke[zerolog.Logger](i)

	return app.NewProductList(repo, cache, logger), nil
}

// NewApp creates a new App instance with dependencies from the injector.
func NewApp(i do.Injector) (*app.App, error) {
	session := do.MustInvoke[*app.SessionStore](i)
	users := do.MustInvoke[*app.UserList](i)
	products := do.MustInvoke[*app.ProductList](i)
	logger := do.MustInvoke[zerolog.Logger](i)

	return app.NewApp(session, users, products, logger), nil
}
