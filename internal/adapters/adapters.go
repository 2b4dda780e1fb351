package adapters

import (
	"fmt"

	"github.com/denchenko/dash/internal/adapters/primary/cli"
	httpadapter "github.com/denchenko/dash/internal/adapters/primary/http"
	"github.com/denchenko/dash/internal/adapters/secondary/cache"
	"github.com/denchenko/dash/internal/adapters/secondary/dummyjson"
	"github.com/denchenko/dash/internal/adapters/secondary/storage"
	"github.com/denchenko/dash/internal/config"
	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	ascii "github.com/denchenko/dash/internal/format/ascii"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var PrimaryPackage = do.Package(
	do.Lazy[*cobra.Command](cli.Command),
	do.Lazy[*httpadapter.Server](NewHTTPServer),
	do.Lazy[*ascii.Formatter](NewFormatter),
)

var SecondaryPackage = do.Package(
	do.Lazy[*dummyjson.Client](NewDummyJSONClient),
	do.Lazy[app.Repository](NewRepository),
	do.Lazy[*redis.Client](NewRedisClient),
	do.Lazy[app.SessionStorage](NewSessionStorage),
	do.Lazy[app.PageCache[domain.User]](NewCache[domain.User]),
	do.Lazy[app.PageCache[domain.Product]](NewCache[domain.Product]),
)

// NewDummyJSONClient creates the API client. The bearer token is read from the session
// store at request time, so the client can be built before the store exists.
func NewDummyJSONClient(i do.Injector) (*dummyjson.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)

	tokens := dummyjson.TokenFunc(func() string {
		session, err := do.Invoke[*app.SessionStore](i)
		if err != nil {
			return ""
		}

		return session.Token()
	})

	client, err := dummyjson.NewClient(cfg.BaseURL, cfg.HTTPTimeout, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, nil
}

// NewRepository creates a repository adapter that implements app.Repository.
func NewRepository(i do.Injector) (app.Repository, error) {
	client := do.MustInvoke[*dummyjson.Client](i)

	return dummyjson.NewRepository(client), nil
}

// NewRedisClient creates the Redis client used by the redis session backend.
func NewRedisClient(i do.Injector) (*redis.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}), nil
}

// NewSessionStorage picks the durable session storage by the configured backend.
func NewSessionStorage(i do.Injector) (app.SessionStorage, error) {
	cfg := do.MustInvoke[*config.Config](i)

	switch cfg.SessionBackend {
	case config.BackendRedis:
		client := do.MustInvoke[*redis.Client](i)

		return storage.NewRedisStorage(client, cfg.RedisPrefix), nil
	case config.BackendFile:
		return storage.NewFileStorage(cfg.SessionFile), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// NewCache creates the page cache of one collection.
func NewCache[T any](i do.Injector) (app.PageCache[T], error) {
	cfg := do.MustInvoke[*config.Config](i)

	c, err := cache.New[T](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return c, nil
}

// NewFormatter creates the ASCII formatter.
func NewFormatter(_ do.Injector) (*ascii.Formatter, error) {
	return ascii.NewFormatter()
}

// NewHTTPServer creates a new HTTP server.
func NewHTTPServer(i do.Injector) (*httpadapter.Server, error) {
	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[zerolog.Logger](i)

	return httpadapter.NewServer(cfg.Address, appInstance, logger), nil
}
