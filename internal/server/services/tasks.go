package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/decipline/internal/shared"
)

// TaskService owns the generated study plans.
type TaskService struct {
	repomanager repomanager.RepositoryManager
}

func NewTaskService(m repomanager.RepositoryManager) *TaskService {
	return &TaskService{repomanager: m}
}

// List returns the user's tasks, never nil.
func (s *TaskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.repomanager.Tasks().ListByUser(ctx, userID)
}

// Generate replaces the user's plan with one built from their profile.
// The profile must name a role and a subject.
func (s *TaskService) Generate(ctx context.Context, user *models.User) ([]models.Task, error) {
	if user.Role == nil || user.Subject == nil {
		return nil, fmt.Errorf("%w: complete your profile first", shared.ErrorValidation)
	}
	plan := buildPlan(*user.Role, *user.Subject, deref(user.Goal))
	return s.repomanager.Tasks().ReplaceForUser(ctx, user.ID, plan)
}

// SetCompleted changes the completion flag of one of the user's tasks.
func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID int64, completed bool) (models.Task, error) {
	t, err := s.repomanager.Tasks().SetCompleted(ctx, userID, taskID, completed)
	if errors.Is(err, shared.ErrorNotFound) {
		return models.Task{}, fmt.Errorf("%w: task not found", shared.ErrorNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("error updating task %d: %w", taskID, err)
	}
	return t, nil
}

type template struct {
	title     string
	category  string
	frequency string
}

var planTemplates = map[string][]template{
	"student": {
		{"Review %s lecture notes", "Review", "Daily"},
		{"Solve five %s practice problems", "Practice", "Daily"},
		{"Summarize one %s chapter", "Reading", "Weekly"},
	},
	"professional": {
		{"Read one article about %s", "Reading", "Daily"},
		{"Apply %s in a small work task", "Practice", "Weekly"},
		{"Share one %s insight with a colleague", "Reflection", "Weekly"},
	},
	"other": {
		{"Spend 30 minutes on %s", "Practice", "Daily"},
		{"Write down one new thing about %s", "Reflection", "Daily"},
		{"Plan next week's %s sessions", "Planning", "Weekly"},
	},
}

func buildPlan(role, subject, goal string) []models.Task {
	templates, ok := planTemplates[role]
	if !ok {
		templates = planTemplates["other"]
	}

	plan := make([]models.Task, 0, len(templates)+2)
	for _, t := range templates {
		plan = append(plan, models.Task{
			Title:     fmt.Sprintf(t.title, subject),
			Category:  t.category,
			Frequency: t.frequency,
		})
	}
	if goal != "" {
		plan = append(plan,
			models.Task{Title: fmt.Sprintf("Break %q into weekly milestones", goal), Category: "Planning", Frequency: "Once"},
			models.Task{Title: fmt.Sprintf("Take a timed mock test for %s", goal), Category: "Assessment", Frequency: "Weekly"},
		)
	}
	return plan
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
