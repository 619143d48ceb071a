package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/shared"
)

// MemoryRepository keeps users in process memory. Emails are unique
// case-insensitively.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*models.User
	byEmail map[string]int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[int64]*models.User),
		byEmail: make(map[string]int64),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, shared.ErrorAlreadyExists
	}

	r.nextID++
	u := cloneUser(user)
	u.ID = r.nextID
	u.CreatedAt = time.Now()

	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return cloneUser(u), nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneUser(u), nil
}

// Update replaces the stored user with the same ID. The email cannot change.
func (r *MemoryRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[user.ID]
	if !ok {
		return shared.ErrorNotFound
	}
	u := cloneUser(user)
	u.Email = old.Email
	u.CreatedAt = old.CreatedAt
	r.byID[u.ID] = u
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Role = cloneString(u.Role)
	c.Subject = cloneString(u.Subject)
	c.Goal = cloneString(u.Goal)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
