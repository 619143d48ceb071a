// Package repomanager groups the repositories of the development server
// behind one handle.
package repomanager

import (
	"github.com/dmitrijs2005/decipline/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Tasks() tasks.Repository
}

// InMemoryRepositoryManager holds process-local repositories. Its state is
// lost on restart.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
	tasks *tasks.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		tasks: tasks.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}
