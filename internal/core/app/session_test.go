package app

import (
	"context"
	"errors"
	"testing"

	"github.com/denchenko/dash/internal/adapters/secondary/repository/mocks"
	"github.com/denchenko/dash/internal/core/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var emily = domain.Identity{
	ID:        1,
	Username:  "emilys",
	Email:     "emily.johnson@x.dummyjson.com",
	FirstName: "Emily",
	LastName:  "Johnson",
	Gender:    "female",
	Image:     "https://dummyjson.com/icon/emilys/128",
}

func newSessionStore() (*SessionStore, *mocks.MockRepository, *mocks.MockSessionStorage) {
	repo := &mocks.MockRepository{}
	storage := &mocks.MockSessionStorage{}

	return NewSessionStore(repo, storage, zerolog.Nop()), repo, storage
}

func TestSessionStore_LoginLogout(t *testing.T) {
	ctx := context.Background()
	session, repo, storage := newSessionStore()
	creds := domain.Credentials{Username: "emilys", Password: "emilyspass"}

	repo.On("Login", ctx, creds).Return(&domain.Login{Identity: emily, Token: "tok-123"}, nil)
	storage.On("Save", ctx, "tok-123", mock.MatchedBy(func(identity string) bool {
		return assert.JSONEq(t, `{
			"id": 1,
			"username": "emilys",
			"email": "emily.johnson@x.dummyjson.com",
			"firstName": "Emily",
			"lastName": "Johnson",
			"gender": "female",
			"image": "https://dummyjson.com/icon/emilys/128"
		}`, identity)
	})).Return(nil)
	storage.On("Clear", ctx).Return(nil)

	require.NoError(t, session.Login(ctx, creds))

	state := session.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "tok-123", state.Token)
	assert.Equal(t, "tok-123", session.Token())
	require.NotNil(t, state.Identity)
	assert.Equal(t, emily, *state.Identity)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)

	require.NoError(t, session.Logout(ctx))

	state = session.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.Identity)
	assert.Empty(t, state.Token)

	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestSessionStore_LoginFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		creds       domain.Credentials
		setupMock   func(*mocks.MockRepository, *mocks.MockSessionStorage)
		expectedErr string
	}{
		{
			name:  "api error",
			creds: domain.Credentials{Username: "emilys", Password: "wrong"},
			setupMock: func(r *mocks.MockRepository, _ *mocks.MockSessionStorage) {
				r.On("Login", ctx, mock.Anything).Return(nil, &apiError{status: "Bad Request"})
			},
			expectedErr: "API Error: Bad Request",
		},
		{
			name:  "missing token",
			creds: domain.Credentials{Username: "emilys", Password: "emilyspass"},
			setupMock: func(r *mocks.MockRepository, _ *mocks.MockSessionStorage) {
				r.On("Login", ctx, mock.Anything).Return(&domain.Login{Identity: emily}, nil)
			},
			expectedErr: "failed to log in: no token in response",
		},
		{
			name:  "storage failure",
			creds: domain.Credentials{Username: "emilys", Password: "emilyspass"},
			setupMock: func(r *mocks.MockRepository, s *mocks.MockSessionStorage) {
				r.On("Login", ctx, mock.Anything).Return(&domain.Login{Identity: emily, Token: "tok"}, nil)
				s.On("Save", ctx, "tok", mock.Anything).Return(errors.New("disk full"))
			},
			expectedErr: "failed to persist session: disk full",
		},
		{
			name:        "missing password",
			creds:       domain.Credentials{Username: "emilys"},
			setupMock:   func(*mocks.MockRepository, *mocks.MockSessionStorage) {},
			expectedErr: "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, repo, storage := newSessionStore()
			tt.setupMock(repo, storage)

			err := session.Login(ctx, tt.creds)

			require.Error(t, err)
			state := session.State()
			assert.False(t, state.Authenticated)
			assert.Nil(t, state.Identity)
			assert.Empty(t, state.Token)
			assert.False(t, state.Loading)
			assert.Contains(t, state.Err, tt.expectedErr)

			repo.AssertExpectations(t)
			storage.AssertExpectations(t)
		})
	}
}

func TestSessionStore_LogoutStorageFailure(t *testing.T) {
	ctx := context.Background()
	session, _, storage := newSessionStore()

	storage.On("Load", ctx).Return("tok", `{"id":1,"username":"emilys"}`, nil)
	storage.On("Clear", ctx).Return(errors.New("read-only file system"))

	session.Restore(ctx)
	require.True(t, session.State().Authenticated)

	err := session.Logout(ctx)

	require.Error(t, err)
	assert.False(t, session.State().Authenticated)
	assert.Empty(t, session.Token())
}

func TestSessionStore_Restore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		token         string
		identity      string
		loadErr       error
		authenticated bool
	}{
		{name: "token and identity", token: "tok", identity: `{"id":1,"username":"emilys"}`, authenticated: true},
		{name: "nothing stored"},
		{name: "token only", token: "tok"},
		{name: "identity only", identity: `{"id":1}`},
		{name: "unparsable identity", token: "tok", identity: "{not json"},
		{name: "null identity", token: "tok", identity: "null"},
		{name: "storage error", loadErr: errors.New("permission denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, repo, storage := newSessionStore()
			storage.On("Load", ctx).Return(tt.token, tt.identity, tt.loadErr)

			session.Restore(ctx)

			state := session.State()
			assert.Equal(t, tt.authenticated, state.Authenticated)
			if tt.authenticated {
				assert.Equal(t, tt.token, state.Token)
				require.NotNil(t, state.Identity)
				assert.Equal(t, "emilys", state.Identity.Username)
			} else {
				assert.Empty(t, state.Token)
				assert.Nil(t, state.Identity)
			}
			assert.Empty(t, state.Err)

			repo.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
		})
	}
}
