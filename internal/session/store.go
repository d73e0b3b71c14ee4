// Package session holds the process-wide authentication state: an
// observable AuthState persisted to durable storage on every mutation.
package session

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/storage"
)

// ErrNotAuthenticated is returned by operations that require a logged-in
// session when no token is held.
var ErrNotAuthenticated = errors.New("not authenticated")

// Store is the observable session state container. Mutations replace
// the whole state, persist it, and notify subscribers synchronously.
type Store struct {
	mu      sync.Mutex
	state   model.AuthState
	backend storage.Backend
	subs    map[int]func(model.AuthState)
	nextID  int
}

// NewStore creates a session store backed by the given storage,
// initialized from the persisted "auth" record. A missing or
// unparsable record yields the logged-out default.
func NewStore(backend storage.Backend) *Store {
	s := &Store{
		state:   model.LoggedOut(),
		backend: backend,
		subs:    make(map[int]func(model.AuthState)),
	}

	raw, err := backend.Get(storage.KeyAuth)
	if err != nil {
		return s
	}

	var persisted model.AuthState
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return s
	}

	// Never trust a persisted record that claims authentication
	// without carrying both user and token.
	if persisted.IsAuthenticated && (persisted.User == nil || persisted.Token == "") {
		return s
	}

	s.state = persisted
	return s
}

// Current returns the current authentication state.
func (s *Store) Current() model.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Subscribe registers fn as an observer. It is invoked immediately
// with the current state and again, synchronously, on every mutation.
// The returned func unregisters the observer.
func (s *Store) Subscribe(fn func(model.AuthState)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	state := s.state
	s.mu.Unlock()

	fn(state)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Login replaces the session with an authenticated state and persists it.
func (s *Store) Login(user model.User, token string) {
	s.replace(model.AuthState{
		IsAuthenticated: true,
		User:            &user,
		Token:           token,
	})
}

// Logout resets the session to the logged-out default and clears the
// persisted record.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = model.LoggedOut()
	state := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()

	// Best effort: local logout must succeed even if storage fails.
	_ = s.backend.Delete(storage.KeyAuth)

	for _, fn := range subs {
		fn(state)
	}
}

// UpdateUser replaces only the user field, preserving token and
// authentication flag, and persists the merged state.
func (s *Store) UpdateUser(user model.User) {
	s.mu.Lock()
	next := s.state
	next.User = &user
	s.mu.Unlock()

	s.replace(next)
}

// replace installs the new state, persists it, and notifies subscribers.
func (s *Store) replace(next model.AuthState) {
	s.mu.Lock()
	s.state = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if raw, err := json.Marshal(next); err == nil {
		_ = s.backend.Set(storage.KeyAuth, string(raw))
	}

	for _, fn := range subs {
		fn(next)
	}
}

// snapshotSubs copies the subscriber list so notifications run outside
// the lock. Callers must hold s.mu.
func (s *Store) snapshotSubs() []func(model.AuthState) {
	subs := make([]func(model.AuthState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
