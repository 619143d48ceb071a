package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/decipline/internal/shared"
	"golang.org/x/time/rate"
)

// AdviceService writes study advice from the user's profile and progress.
// Free users are limited to quota requests per window; premium users are
// not limited.
type AdviceService struct {
	repomanager repomanager.RepositoryManager
	limit       rate.Limit
	burst       int

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

// NewAdviceService builds the service. A zero quota disables the limit.
func NewAdviceService(m repomanager.RepositoryManager, quota int, window time.Duration) *AdviceService {
	s := &AdviceService{
		repomanager: m,
		limiters:    make(map[int64]*rate.Limiter),
		limit:       rate.Inf,
	}
	if quota > 0 {
		s.limit = rate.Limit(float64(quota) / window.Seconds())
		s.burst = quota
	}
	return s
}

func (s *AdviceService) limiter(userID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[userID] = l
	}
	return l
}

// Advice returns shared.ErrorQuotaExceeded when a free user is over quota.
func (s *AdviceService) Advice(ctx context.Context, user *models.User) (string, error) {
	if !user.Premium && !s.limiter(user.ID).Allow() {
		return "", shared.ErrorQuotaExceeded
	}

	tasks, err := s.repomanager.Tasks().ListByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return composeAdvice(user, tasks), nil
}

func composeAdvice(user *models.User, tasks []models.Task) string {
	var b strings.Builder

	subject := deref(user.Subject)
	if subject == "" {
		b.WriteString("Tell us what you are learning to get advice tailored to you.")
		return b.String()
	}

	switch deref(user.Role) {
	case "student":
		fmt.Fprintf(&b, "Study %s in short daily sessions and test yourself before rereading.", subject)
	case "professional":
		fmt.Fprintf(&b, "Tie %s to a real problem at work so it sticks.", subject)
	default:
		fmt.Fprintf(&b, "Keep a steady rhythm with %s; consistency beats intensity.", subject)
	}

	if goal := deref(user.Goal); goal != "" {
		fmt.Fprintf(&b, " Work backwards from %s and check your milestones every week.", goal)
	}

	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	switch {
	case len(tasks) == 0:
		b.WriteString(" Generate a plan to get started.")
	case done == len(tasks):
		b.WriteString(" You have finished every task, so generate a fresh plan.")
	default:
		fmt.Fprintf(&b, " You have completed %d of %d tasks.", done, len(tasks))
	}
	return b.String()
}
