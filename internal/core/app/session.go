package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/denchenko/dash/internal/core/domain"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// SessionState is a snapshot of the session store.
// Authenticated is true if and only if both Token and Identity are present.
type SessionState struct {
	Identity      *domain.Identity `json:"identity"`
	Token         string           `json:"-"`
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	Err           string           `json:"error,omitempty"`
}

// SessionStore authenticates, persists, restores and clears the session.
type SessionStore struct {
	mu       sync.RWMutex
	repo     Repository
	storage  SessionStorage
	validate *validator.Validate
	logger   zerolog.Logger
	state    SessionState
}

// NewSessionStore creates an unauthenticated session store.
func NewSessionStore(repo Repository, storage SessionStorage, logger zerolog.Logger) *SessionStore {
	return &SessionStore{
		repo:     repo,
		storage:  storage,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// State returns a copy of the current session state.
func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Token returns the bearer token, or "" when unauthenticated.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Token
}

// Login authenticates against the remote API and persists the session.
// The error is recorded in state and also returned.
func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	login, err := s.login(ctx, creds)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
	if err != nil {
		return PolicyPropagate.settle(s.logger, "login", err, &s.state.Err)
	}

	identity := login.Identity
	s.state.Identity = &identity
	s.state.Token = login.Token
	s.state.Authenticated = true

	s.logger.Debug().Str("username", identity.Username).Msg("logged in")

	return nil
}

func (s *SessionStore) login(ctx context.Context, creds domain.Credentials) (*domain.Login, error) {
	if err := s.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	login, err := s.repo.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if login.Token == "" {
		return nil, fmt.Errorf("failed to log in: no token in response")
	}

	identity, err := json.Marshal(login.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity: %w", err)
	}

	if err := s.storage.Save(ctx, login.Token, string(identity)); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return login, nil
}

// Logout clears durable storage and resets the in-memory session.
// The in-memory state is reset even when clearing storage fails.
func (s *SessionStore) Logout(ctx context.Context) error {
	err := s.storage.Clear(ctx)

	s.mu.Lock()
	s.state = SessionState{}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

// Restore adopts a persisted session when both a token and a parsable identity are stored.
// Anything else leaves the store unauthenticated.
func (s *SessionStore) Restore(ctx context.Context) {
	token, raw, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("no session restored")

		return
	}

	if token == "" || raw == "" {
		return
	}

	var identity *domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity == nil {
		s.logger.Debug().Err(err).Msg("stored identity is not parsable")

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Identity = identity
	s.state.Token = token
	s.state.Authenticated = true
}
