package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/shared"
)

// MemoryRepository keeps tasks in process memory. IDs are unique across
// users and never reused.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[int64]models.Task)}
}

func (r *MemoryRepository) ReplaceForUser(ctx context.Context, userID int64, tasks []models.Task) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tasks {
		if t.UserID == userID {
			delete(r.tasks, id)
		}
	}

	now := time.Now()
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		r.nextID++
		t.ID = r.nextID
		t.UserID = userID
		t.CreatedAt = now
		r.tasks[t.ID] = t
		out = append(out, t)
	}
	return out, nil
}

// ListByUser returns the user's tasks ordered by ID.
func (r *MemoryRepository) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SetCompleted returns shared.ErrorNotFound for tasks of other users.
func (r *MemoryRepository) SetCompleted(ctx context.Context, userID, taskID int64, completed bool) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return models.Task{}, shared.ErrorNotFound
	}
	t.Completed = completed
	r.tasks[taskID] = t
	return t, nil
}
