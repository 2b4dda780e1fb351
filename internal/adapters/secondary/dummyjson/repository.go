package dummyjson

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/denchenko/dash/internal/core/domain"
	json "github.com/goccy/go-json"
)

// Repository implements the app.Repository interface for DummyJSON.
type Repository struct {
	client *Client
}

// NewRepository creates a new DummyJSON repository instance.
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

type pageOptions struct {
	Query string `url:"q,omitempty"`
	Limit int    `url:"limit"`
	Skip  int    `url:"skip"`
}

type loginResponse struct {
	domain.Login
	AccessToken string `json:"accessToken"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// Login authenticates with username and password.
func (r *Repository) Login(ctx context.Context, creds domain.Credentials) (*domain.Login, error) {
	var login loginResponse
	if err := r.client.do(ctx, http.MethodPost, "/auth/login", nil, creds, &login); err != nil {
		return nil, err
	}

	// Newer API versions name the token accessToken.
	if login.Token == "" {
		login.Token = login.AccessToken
	}

	return &login.Login, nil
}

// ListUsers lists one page of users.
func (r *Repository) ListUsers(ctx context.Context, limit, skip int) (*domain.Page[domain.User], error) {
	return r.users(ctx, "/users", pageOptions{Limit: limit, Skip: skip})
}

// SearchUsers lists one page of users matching query.
func (r *Repository) SearchUsers(ctx context.Context, q string, limit, skip int) (*domain.Page[domain.User], error) {
	return r.users(ctx, "/users/search", pageOptions{Query: q, Limit: limit, Skip: skip})
}

func (r *Repository) users(ctx context.Context, path string, opts pageOptions) (*domain.Page[domain.User], error) {
	var resp usersResponse
	if err := r.client.do(ctx, http.MethodGet, path, opts, nil, &resp); err != nil {
		return nil, err
	}

	return &domain.Page[domain.User]{Items: resp.Users, Total: resp.Total}, nil
}

// GetUser gets one user by id.
func (r *Repository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	if err := r.client.do(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListProducts lists one page of products.
func (r *Repository) ListProducts(ctx context.Context, limit, skip int) (*domain.Page[domain.Product], error) {
	return r.products(ctx, "/products", pageOptions{Limit: limit, Skip: skip})
}

// SearchProducts lists one page of products matching query.
func (r *Repository) SearchProducts(
	ctx context.Context,
	q string,
	limit, skip int,
) (*domain.Page[domain.Product], error) {
	return r.products(ctx, "/products/search", pageOptions{Query: q, Limit: limit, Skip: skip})
}

// ListProductsByCategory lists one page of products of a category.
func (r *Repository) ListProductsByCategory(
	ctx context.Context,
	category string,
	limit, skip int,
) (*domain.Page[domain.Product], error) {
	return r.products(ctx, "/products/category/"+url.PathEscape(category), pageOptions{Limit: limit, Skip: skip})
}

func (r *Repository) products(
	ctx context.Context,
	path string,
	opts pageOptions,
) (*domain.Page[domain.Product], error) {
	var resp productsResponse
	if err := r.client.do(ctx, http.MethodGet, path, opts, nil, &resp); err != nil {
		return nil, err
	}

	return &domain.Page[domain.Product]{Items: resp.Products, Total: resp.Total}, nil
}

// GetProduct gets one product by id.
func (r *Repository) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := r.client.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// category decodes either a bare name or a {slug, name, url} object.
type category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (c *category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Slug = name
		c.Name = name

		return nil
	}

	type plain category
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}
	*c = category(p)

	return nil
}

// ListCategories lists the category names usable as a product filter.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []category
	if err := r.client.do(ctx, http.MethodGet, "/products/categories", nil, nil, &categories); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.Slug == "" {
			c.Slug = c.Name
		}
		names = append(names, c.Slug)
	}

	return names, nil
}
