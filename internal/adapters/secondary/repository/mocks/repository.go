package mocks

import (
	"context"

	"github.com/denchenko/dash/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of app.Repository.
type MockRepository struct {
	mock.Mock
}

// Login mocks the Login method.
func (m *MockRepository) Login(ctx context.Context, creds domain.Credentials) (*domain.Login, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Login), args.Error(1)
}

// ListUsers mocks the ListUsers method.
func (m *MockRepository) ListUsers(ctx context.Context, limit, skip int) (*domain.Page[domain.User], error) {
	args := m.Called(ctx, limit, skip)

	return userPage(args)
}

// SearchUsers mocks the SearchUsers method.
func (m *MockRepository) SearchUsers(
	ctx context.Context,
	query string,
	limit, skip int,
) (*domain.Page[domain.User], error) {
	args := m.Called(ctx, query, limit, skip)

	return userPage(args)
}

// GetUser mocks the GetUser method.
func (m *MockRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

// ListProducts mocks the ListProducts method.
func (m *MockRepository) ListProducts(ctx context.Context, limit, skip int) (*domain.Page[domain.Product], error) {
	args := m.Called(ctx, limit, skip)

	return productPage(args)
}

// SearchProducts mocks the SearchProducts method.
func (m *MockRepository) SearchProducts(
	ctx context.Context,
	query string,
	limit, skip int,
) (*domain.Page[domain.Product], error) {
	args := m.Called(ctx, query, limit, skip)

	return productPage(args)
}

// ListProductsByCategory mocks the ListProductsByCategory method.
func (m *MockRepository) ListProductsByCategory(
	ctx context.Context,
	category string,
	limit, skip int,
) (*domain.Page[domain.Product], error) {
	args := m.Called(ctx, category, limit, skip)

	return productPage(args)
}

// GetProduct mocks the GetProduct method.
func (m *MockRepository) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Product), args.Error(1)
}

// ListCategories mocks the ListCategories method.
func (m *MockRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func userPage(args mock.Arguments) (*domain.Page[domain.User], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Page[domain.User]), args.Error(1)
}

func productPage(args mock.Arguments) (*domain.Page[domain.Product], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Page[domain.Product]), args.Error(1)
}
