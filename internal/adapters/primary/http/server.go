package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/denchenko/dash/internal/core/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 120 * time.Second
	corsMaxAge   = 300
)

// Server exposes the core stores as a JSON API for a browser front-end.
type Server struct {
	server *http.Server
	app    *app.App
	logger zerolog.Logger
}

// NewServer creates a new HTTP server.
func NewServer(addr string, appInstance *app.App, logger zerolog.Logger) *Server {
	s := &Server{
		app:    appInstance,
		logger: logger.With().Str("component", "http").Logger(),
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, handleCORS)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/session", s.handleSession)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Get("/dashboard", s.handleDashboard)
			r.Get("/users", s.handleUsers)
			r.Get("/users/{id}", s.handleUser)
			r.Get("/products", s.handleProducts)
			r.Get("/products/{id}", s.handleProduct)
			r.Get("/categories", s.handleCategories)
		})
	})

	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func handleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         corsMaxAge,
	})(next)
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
