package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CategoriesResponse is the body of GET /api/categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")

		return
	}

	if err := s.app.Session.Login(r.Context(), creds); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			s.writeError(w, r, http.StatusBadRequest, "Username and password are required")

			return
		}

		s.writeError(w, r, http.StatusUnauthorized, s.app.Session.State().Err)

		return
	}

	s.writeJSON(w, r, http.StatusOK, s.app.Session.State())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Session.Logout(r.Context()); err != nil {
		s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("logout")
		s.writeError(w, r, http.StatusInternalServerError, "Failed to clear session")

		return
	}

	s.writeJSON(w, r, http.StatusOK, s.app.Session.State())
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.app.Session.State())
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.app.RequireSession(); err != nil {
			s.writeError(w, r, http.StatusUnauthorized, "Not authenticated")

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := s.app.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusBadGateway, app.Message(err, "Failed to load overview"))

		return
	}

	s.writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	users := s.app.Users

	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}

	if query.Has("q") {
		users.SetSearch(query.Get("q"))
	}
	if page >= 0 {
		users.SetPage(page)
	}

	users.Fetch(r.Context())

	s.writeJSON(w, r, http.StatusOK, users.State())
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products := s.app.Products

	if query.Get("q") != "" && query.Get("category") != "" {
		s.writeError(w, r, http.StatusBadRequest, "Search and category cannot be combined")

		return
	}

	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}

	switch {
	case query.Get("category") != "":
		products.SetCategory(query.Get("category"))
	case query.Has("q"):
		products.SetSearch(query.Get("q"))
	case query.Has("category"):
		products.SetCategory("")
	}
	if page >= 0 {
		products.SetPage(page)
	}

	products.Fetch(r.Context())

	s.writeJSON(w, r, http.StatusOK, products.State())
}

// pageParam parses the zero-based page query parameter; -1 means absent.
func (s *Server) pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return -1, true
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		s.writeError(w, r, http.StatusBadRequest, "Invalid page")

		return 0, false
	}

	return page, true
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}

	user, err := s.app.Users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, http.StatusBadGateway, app.Message(err, "Failed to load user"))

		return
	}

	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}

	product, err := s.app.Products.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, http.StatusBadGateway, app.Message(err, "Failed to load product"))

		return
	}

	s.writeJSON(w, r, http.StatusOK, product)
}

func (s *Server) idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		s.writeError(w, r, http.StatusBadRequest, "Invalid id")

		return 0, false
	}

	return id, true
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.app.Products.FetchCategories(r.Context())

	categories := s.app.Products.Categories()
	if categories == nil {
		categories = []string{}
	}

	s.writeJSON(w, r, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("unable to marshal json")
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.logger.Debug().
		Str("request_id", middleware.GetReqID(r.Context())).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg(msg)

	s.writeJSON(w, r, status, ErrorResponse{Error: msg})
}
