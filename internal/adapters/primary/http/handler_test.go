package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/denchenko/dash/internal/adapters/secondary/cache"
	"github.com/denchenko/dash/internal/adapters/secondary/dummyjson"
	"github.com/denchenko/dash/internal/adapters/secondary/repository/mocks"
	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const emilyJSON = `{"id":1,"username":"emilys","firstName":"Emily","lastName":"Johnson"}`

func newTestApp(t *testing.T, authenticated bool) (*app.App, *mocks.MockRepository, *mocks.MockSessionStorage) {
	t.Helper()

	repo := &mocks.MockRepository{}
	storage := &mocks.MockSessionStorage{}
	if authenticated {
		storage.On("Load", mock.Anything).Return("tok", emilyJSON, nil)
	} else {
		storage.On("Load", mock.Anything).Return("", "", nil)
	}

	session := app.NewSessionStore(repo, storage, zerolog.Nop())
	users := app.NewUserList(repo, cache.NewInMemoryCache[domain.User](), zerolog.Nop())
	products := app.NewProductList(repo, cache.NewInMemoryCache[domain.Product](), zerolog.Nop())

	return app.NewApp(session, users, products, zerolog.Nop()), repo, storage
}

func newTestServer(appInstance *app.App) *Server {
	return NewServer(":0", appInstance, zerolog.Nop())
}

func serve(server *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))

	return v
}

func TestServer_ProtectedRoutes(t *testing.T) {
	routes := []string{
		"/api/dashboard",
		"/api/users",
		"/api/users/1",
		"/api/products",
		"/api/products/1",
		"/api/categories",
	}

	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			appInstance, repo, _ := newTestApp(t, false)

			w := serve(newTestServer(appInstance), http.MethodGet, route, "")

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Not authenticated", decode[ErrorResponse](t, w).Error)
			repo.AssertExpectations(t)
		})
	}
}

func TestServer_handleLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockRepository, *mocks.MockSessionStorage)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success",
			body: `{"username":"emilys","password":"emilyspass"}`,
			setupMock: func(repo *mocks.MockRepository, storage *mocks.MockSessionStorage) {
				repo.On("Login", mock.Anything, domain.Credentials{Username: "emilys", Password: "emilyspass"}).
					Return(&domain.Login{Identity: domain.Identity{ID: 1, Username: "emilys"}, Token: "tok"}, nil)
				storage.On("Save", mock.Anything, "tok", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			body:           "invalid json",
			setupMock:      func(*mocks.MockRepository, *mocks.MockSessionStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "missing password",
			body:           `{"username":"emilys"}`,
			setupMock:      func(*mocks.MockRepository, *mocks.MockSessionStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username and password are required",
		},
		{
			name: "rejected",
			body: `{"username":"emilys","password":"wrong"}`,
			setupMock: func(repo *mocks.MockRepository, _ *mocks.MockSessionStorage) {
				repo.On("Login", mock.Anything, mock.Anything).
					Return(nil, &dummyjson.APIError{StatusCode: 400, Status: "Bad Request"})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "API Error: Bad Request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appInstance, repo, storage := newTestApp(t, false)
			tt.setupMock(repo, storage)

			w := serve(newTestServer(appInstance), http.MethodPost, "/api/login", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decode[ErrorResponse](t, w).Error)

				return
			}

			state := decode[map[string]any](t, w)
			assert.Equal(t, true, state["authenticated"])
			assert.NotContains(t, w.Body.String(), "tok\"")
		})
	}
}

func TestServer_handleLogout(t *testing.T) {
	appInstance, _, storage := newTestApp(t, true)
	storage.On("Clear", mock.Anything).Return(nil).Once()
	server := newTestServer(appInstance)

	w := serve(server, http.MethodPost, "/api/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(server, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]any](t, w)["authenticated"])

	w = serve(server, http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_handleLogout_StorageFailure(t *testing.T) {
	appInstance, _, storage := newTestApp(t, true)
	storage.On("Clear", mock.Anything).Return(errors.New("disk full")).Once()

	w := serve(newTestServer(appInstance), http.MethodPost, "/api/logout", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, appInstance.Session.State().Authenticated)
}

func TestServer_handleUsers(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(*mocks.MockRepository)
		expectedStatus int
		expectedPage   int
		expectedSearch string
	}{
		{
			name:   "first page",
			target: "/api/users",
			setupMock: func(m *mocks.MockRepository) {
				m.On("ListUsers", mock.Anything, 10, 0).
					Return(&domain.Page[domain.User]{Items: []domain.User{{ID: 1}}, Total: 208}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "page and search",
			target: "/api/users?q=emily&page=1",
			setupMock: func(m *mocks.MockRepository) {
				m.On("SearchUsers", mock.Anything, "emily", 10, 10).
					Return(&domain.Page[domain.User]{Items: []domain.User{{ID: 11}}, Total: 12}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedPage:   1,
			expectedSearch: "emily",
		},
		{
			name:           "invalid page",
			target:         "/api/users?page=x",
			setupMock:      func(*mocks.MockRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative page",
			target:         "/api/users?page=-1",
			setupMock:      func(*mocks.MockRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appInstance, repo, _ := newTestApp(t, true)
			tt.setupMock(repo)

			w := serve(newTestServer(appInstance), http.MethodGet, tt.target, "")

			require.Equal(t, tt.expectedStatus, w.Code)
			repo.AssertExpectations(t)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			state := decode[app.ListState[domain.User]](t, w)
			assert.Equal(t, tt.expectedPage, state.Page)
			assert.Equal(t, tt.expectedSearch, state.Search)
			assert.False(t, state.Loading)
		})
	}
}

func TestServer_handleUsers_FailureIsAbsorbed(t *testing.T) {
	appInstance, repo, _ := newTestApp(t, true)
	repo.On("ListUsers", mock.Anything, 10, 0).
		Return(nil, &dummyjson.APIError{StatusCode: 500, Status: "Internal Server Error"})

	w := serve(newTestServer(appInstance), http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API Error: Internal Server Error", decode[app.ListState[domain.User]](t, w).Err)
}

func TestServer_handleProducts(t *testing.T) {
	tests := []struct {
		name             string
		target           string
		setupMock        func(*mocks.MockRepository)
		expectedStatus   int
		expectedCategory string
		expectedSearch   string
	}{
		{
			name:   "category",
			target: "/api/products?category=laptops",
			setupMock: func(m *mocks.MockRepository) {
				m.On("ListProductsByCategory", mock.Anything, "laptops", 10, 0).
					Return(&domain.Page[domain.Product]{Items: []domain.Product{{ID: 78}}, Total: 5}, nil)
			},
			expectedStatus:   http.StatusOK,
			expectedCategory: "laptops",
		},
		{
			name:   "search",
			target: "/api/products?q=phone",
			setupMock: func(m *mocks.MockRepository) {
				m.On("SearchProducts", mock.Anything, "phone", 10, 0).
					Return(&domain.Page[domain.Product]{Items: []domain.Product{{ID: 1}}, Total: 23}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedSearch: "phone",
		},
		{
			name:   "search with blank category",
			target: "/api/products?q=phone&category=",
			setupMock: func(m *mocks.MockRepository) {
				m.On("SearchProducts", mock.Anything, "phone", 10, 0).
					Return(&domain.Page[domain.Product]{Items: []domain.Product{{ID: 1}}, Total: 23}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedSearch: "phone",
		},
		{
			name:           "search and category",
			target:         "/api/products?q=phone&category=laptops",
			setupMock:      func(*mocks.MockRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appInstance, repo, _ := newTestApp(t, true)
			tt.setupMock(repo)

			w := serve(newTestServer(appInstance), http.MethodGet, tt.target, "")

			require.Equal(t, tt.expectedStatus, w.Code)
			repo.AssertExpectations(t)
			if tt.expectedStatus == http.StatusOK {
				state := decode[app.ListState[domain.Product]](t, w)
				assert.Equal(t, tt.expectedCategory, state.Category)
				assert.Equal(t, tt.expectedSearch, state.Search)
			}
		})
	}
}

func TestServer_handleUsers_EmptyItemsIsArray(t *testing.T) {
	appInstance, repo, _ := newTestApp(t, true)
	repo.On("SearchUsers", mock.Anything, "zzz", 10, 0).
		Return(&domain.Page[domain.User]{Total: 0}, nil).Once()

	w := serve(newTestServer(appInstance), http.MethodGet, "/api/users?q=zzz", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
	assert.NotContains(t, w.Body.String(), `"items":null`)
}

func TestServer_handleProducts_ServedFromCache(t *testing.T) {
	appInstance, repo, _ := newTestApp(t, true)
	repo.On("ListProducts", mock.Anything, 10, 0).
		Return(&domain.Page[domain.Product]{Items: []domain.Product{{ID: 1}}, Total: 194}, nil).Once()
	server := newTestServer(appInstance)

	for range 3 {
		w := serve(server, http.MethodGet, "/api/products?page=0", "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	repo.AssertExpectations(t)
}

func TestServer_handleDetail(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(*mocks.MockRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "user",
			target: "/api/users/1",
			setupMock: func(m *mocks.MockRepository) {
				m.On("GetUser", mock.Anything, 1).Return(&domain.User{ID: 1, FirstName: "Emily"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "product",
			target: "/api/products/78",
			setupMock: func(m *mocks.MockRepository) {
				m.On("GetProduct", mock.Anything, 78).Return(&domain.Product{ID: 78}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "upstream failure",
			target: "/api/products/999",
			setupMock: func(m *mocks.MockRepository) {
				m.On("GetProduct", mock.Anything, 999).
					Return(nil, &dummyjson.APIError{StatusCode: 404, Status: "Not Found"})
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "API Error: Not Found",
		},
		{
			name:           "bad id",
			target:         "/api/users/abc",
			setupMock:      func(*mocks.MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appInstance, repo, _ := newTestApp(t, true)
			tt.setupMock(repo)

			w := serve(newTestServer(appInstance), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decode[ErrorResponse](t, w).Error)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServer_handleCategories(t *testing.T) {
	appInstance, repo, _ := newTestApp(t, true)
	repo.On("ListCategories", mock.Anything).Return([]string{"beauty", "laptops"}, nil).Once()
	repo.On("ListCategories", mock.Anything).Return(nil, errors.New("offline")).Once()
	server := newTestServer(appInstance)

	w := serve(server, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"beauty", "laptops"}, decode[CategoriesResponse](t, w).Categories)

	// A failed refresh keeps the known names.
	w = serve(server, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"beauty", "laptops"}, decode[CategoriesResponse](t, w).Categories)
}

func TestServer_handleDashboard(t *testing.T) {
	appInstance, repo, _ := newTestApp(t, true)
	repo.On("ListUsers", mock.Anything, 10, 0).
		Return(&domain.Page[domain.User]{Items: []domain.User{{ID: 1}}, Total: 208}, nil)
	repo.On("ListProducts", mock.Anything, 10, 0).
		Return(&domain.Page[domain.Product]{Items: []domain.Product{{ID: 1}}, Total: 194}, nil)

	w := serve(newTestServer(appInstance), http.MethodGet, "/api/dashboard", "")

	require.Equal(t, http.StatusOK, w.Code)
	overview := decode[domain.Overview](t, w)
	assert.Equal(t, 208, overview.TotalUsers)
	assert.Equal(t, 194, overview.TotalProducts)
	assert.Equal(t, "emilys", overview.Identity.Username)
}
