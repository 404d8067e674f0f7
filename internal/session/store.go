// Package session holds the signed-in user of a client process and keeps it in a local
// key-value file so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/kvstore"
)

// StorageKey is the key the current user is persisted under.
const StorageKey = "eventHubUser"

// Authenticator checks credentials and synthesizes new accounts. The credential directory
// satisfies it in-process and pkg/client satisfies it over HTTP.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (models.User, error)
	SignUp(ctx context.Context, name, email, password string, role models.Role) (models.User, error)
}

// signOuter is implemented by authenticators that hold their own credentials (e.g. a cached token).
type signOuter interface {
	SignOut(ctx context.Context) error
}

// Store is the session store. Build one in main and pass it to whatever needs the current user.
type Store struct {
	auth   Authenticator
	kv     kvstore.Store
	logger *zap.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

// NewStore returns a store in the loading state. Call Init before reading Current.
func NewStore(auth Authenticator, kv kvstore.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{auth: auth, kv: kv, logger: logger, loading: true}
}

// Init loads the persisted user. A record that does not parse is dropped and the store starts
// signed out; storage I/O errors are returned.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		s.logger.Warn("discarding unreadable session record", zap.Error(err))
		if err := s.kv.Delete(ctx, StorageKey); err != nil {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}
	s.user = &u
	return nil
}

// Loading reports whether Init has not finished yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Current returns the signed-in user.
func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// SignIn checks the credentials and makes the matching user current.
func (s *Store) SignIn(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := s.setUser(ctx, u); err != nil {
		return models.User{}, err
	}
	s.logger.Info("signed in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// SignUp creates an account and signs it in.
func (s *Store) SignUp(ctx context.Context, name, email, password string, role models.Role) (models.User, error) {
	u, err := s.auth.SignUp(ctx, name, email, password, role)
	if err != nil {
		return models.User{}, err
	}
	if err := s.setUser(ctx, u); err != nil {
		return models.User{}, err
	}
	s.logger.Info("signed up", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// setUser persists u and then makes it current, so a failed write leaves the state untouched.
func (s *Store) setUser(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.user = &u
	return nil
}

// SignOut removes the persisted record and then clears the current user, so a failed delete
// leaves the user signed in.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	err := s.kv.Delete(ctx, StorageKey)
	if err == nil {
		s.user = nil
	}
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	if so, ok := s.auth.(signOuter); ok {
		return so.SignOut(ctx)
	}
	return nil
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.kv.Close()
}
