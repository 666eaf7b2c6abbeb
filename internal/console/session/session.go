// Package session tracks whether the console user is signed in and decides
// which views they may see.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/credentials"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
)

type State int

const (
	Loading State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Session starts in Loading and is resolved by Check. It never polls: the
// console calls Check each time a view mounts.
type Session struct {
	store credentials.Store
	nav   client.Navigator

	mu     sync.RWMutex
	state  State
	user   *models.User
	nextID int
	subs   map[int]func(State)
}

func New(store credentials.Store, nav client.Navigator) *Session {
	if nav == nil {
		nav = client.NavigatorFunc(func(string) {})
	}
	return &Session{store: store, nav: nav, state: Loading, subs: make(map[int]func(State))}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Check reads the store. The session is Authenticated only when both a token
// and a user record are present. A store failure resolves to Unauthenticated
// and is returned.
func (s *Session) Check(ctx context.Context) (State, error) {
	creds, err := s.store.Get(ctx)

	switch {
	case err == nil && creds.Token != "" && creds.User != nil:
		s.set(Authenticated, creds.User)
		return Authenticated, nil
	case err == nil, errors.Is(err, credentials.ErrNoCredentials):
		s.set(Unauthenticated, nil)
		return Unauthenticated, nil
	default:
		s.set(Unauthenticated, nil)
		return Unauthenticated, err
	}
}

// CurrentUser returns the cached user record of an authenticated session.
func (s *Session) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated || s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Logout clears stored credentials and sends the console to the login view.
// Calling it on a signed-out session is harmless.
func (s *Session) Logout(ctx context.Context) error {
	err := s.store.Clear(ctx)
	s.set(Unauthenticated, nil)
	s.nav.Navigate(common.LoginView)
	return err
}

// Subscribe registers fn for state changes. The returned func removes it.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) set(state State, user *models.User) {
	s.mu.Lock()
	changed := s.state != state
	s.state = state
	s.user = user
	var notify []func(State)
	if changed {
		notify = make([]func(State), 0, len(s.subs))
		for _, fn := range s.subs {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(state)
	}
}
