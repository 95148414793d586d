// Package session holds the identity of the currently signed-in user for
// the lifetime of the process.
//
// A Store is a single guarded slot with two states, anonymous (empty) and
// authenticated (holding an AuthSession). It is never persisted: a fresh
// process always starts anonymous.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// ErrLockAcquisition is returned once the store's slot has been left in an
// undefined state by a panic inside a critical section.
var ErrLockAcquisition = errors.New("session lock poisoned")

// AuthSession is the authenticated identity handed over by the front end
// after a successful credential check.
type AuthSession struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	LoggedIn bool   `json:"logged_in"`
}

// Store is a mutex-guarded optional AuthSession. The zero value is an empty,
// usable store. All methods are safe for concurrent use; the last Set wins.
type Store struct {
	mu       sync.Mutex
	current  *AuthSession
	poisoned bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// locked runs fn while holding the lock. A panic escaping fn marks the store
// poisoned before it propagates, and every later call fails.
func (s *Store) locked(fn func()) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return fmt.Errorf("%w: a previous holder panicked", ErrLockAcquisition)
	}

	panicking := true
	defer func() {
		if panicking {
			s.poisoned = true
		}
	}()

	fn()
	panicking = false
	return nil
}

// Set stores sess, replacing any current session. The contents are not
// validated.
func (s *Store) Set(sess AuthSession) error {
	return s.locked(func() {
		s.current = &sess
	})
}

// Clear drops the current session. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	return s.locked(func() {
		s.current = nil
	})
}

// Current returns a copy of the current session, or nil when anonymous.
func (s *Store) Current() (*AuthSession, error) {
	var out *AuthSession
	err := s.locked(func() {
		if s.current != nil {
			cp := *s.current
			out = &cp
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() (bool, error) {
	var ok bool
	err := s.locked(func() {
		ok = s.current != nil
	})
	return ok, err
}
