package tasks

import (
	"context"

	"github.com/dmitrijs2005/decipline/internal/server/models"
)

type Repository interface {
	// ReplaceForUser drops the user's tasks and stores tasks in their place,
	// assigning fresh IDs.
	ReplaceForUser(ctx context.Context, userID int64, tasks []models.Task) ([]models.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Task, error)
	SetCompleted(ctx context.Context, userID, taskID int64, completed bool) (models.Task, error)
}
