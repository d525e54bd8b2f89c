// Package session tracks who is logged in to the current CLI run.
package session

import (
	"sync"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/models"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session holds at most one user. The zero value is an anonymous session, and
// the read methods treat a nil *Session as anonymous too.
type Session struct {
	mu   sync.RWMutex
	user *models.User
}

func New() *Session {
	return &Session{}
}

// Login replaces any current user with u.
func (s *Session) Login(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *Session) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Anonymous
}

func (s *Session) IsAuthenticated() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the logged-in user or common.ErrNotAuthenticated.
func (s *Session) User() (models.User, error) {
	if s == nil {
		return models.User{}, common.ErrNotAuthenticated
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, common.ErrNotAuthenticated
	}
	return *s.user, nil
}
