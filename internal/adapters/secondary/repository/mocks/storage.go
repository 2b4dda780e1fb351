package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSessionStorage is a mock implementation of app.SessionStorage.
type MockSessionStorage struct {
	mock.Mock
}

// Save mocks the Save method.
func (m *MockSessionStorage) Save(ctx context.Context, token, identity string) error {
	args := m.Called(ctx, token, identity)

	return args.Error(0)
}

// Load mocks the Load method.
func (m *MockSessionStorage) Load(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)

	return args.String(0), args.String(1), args.Error(2)
}

// Clear mocks the Clear method.
func (m *MockSessionStorage) Clear(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
