// Package state holds the client's single mutable state container. All
// mutations run under one lock so that each event is applied to completion
// before the next one is observed.
package state

import (
	"sync"

	"github.com/dmitrijs2005/decipline/internal/client/models"
)

// Op names an operation guarded by a loading flag.
type Op string

const (
	OpAuth     Op = "auth"
	OpProfile  Op = "profile"
	OpGenerate Op = "generate"
)

// State is everything the screens render from.
type State struct {
	Session models.Session
	View    models.View
	Tasks   []models.Task
	Advice  string
	Error   string

	Credentials models.Credentials
	Profile     models.ProfileDraft

	Loading map[Op]bool

	// Epoch changes whenever the session is replaced or cleared. Work that
	// started under an older epoch must not write its result.
	Epoch uint64
}

// Busy reports whether any operation is in flight.
func (s State) Busy() bool {
	for _, v := range s.Loading {
		if v {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	c := s
	c.Session.User = s.Session.User.Clone()
	if s.Tasks != nil {
		c.Tasks = make([]models.Task, len(s.Tasks))
		copy(c.Tasks, s.Tasks)
	}
	c.Loading = make(map[Op]bool, len(s.Loading))
	for k, v := range s.Loading {
		if v {
			c.Loading[k] = true
		}
	}
	return c
}

// Store is safe for concurrent use. The zero value is an empty store on
// the zero View; New starts on the Auth screen.
type Store struct {
	mu sync.Mutex
	st State
}

// New returns a store showing the Auth screen with no session.
func New() *Store {
	return &Store{st: State{View: models.ViewAuth, Loading: map[Op]bool{}}}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

// Update applies fn under the lock.
func (s *Store) Update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.st)
}

// UpdateIf applies fn only if the session epoch still equals epoch, and
// reports whether it did.
func (s *Store) UpdateIf(epoch uint64, fn func(st *State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Epoch != epoch {
		return false
	}
	fn(&s.st)
	return true
}

// Acquire sets the loading flag of op. It returns false if op is already in flight.
func (s *Store) Acquire(op Op) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Loading[op] {
		return false
	}
	if s.st.Loading == nil {
		s.st.Loading = map[Op]bool{}
	}
	s.st.Loading[op] = true
	return true
}

func (s *Store) Release(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.st.Loading, op)
}

// Token returns the current session token together with its epoch.
func (s *Store) Token() (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Session.Token, s.st.Epoch
}
