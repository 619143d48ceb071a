package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/decipline/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestGenerate_BuildsPlanFromProfile(t *testing.T) {
	ctx := context.Background()
	s := NewTaskService(repomanager.NewInMemoryRepositoryManager())
	u := &models.User{ID: 1, Role: strp("student"), Subject: strp("Biology"), Goal: strp("MCAT")}

	plan, err := s.Generate(ctx, u)
	require.NoError(t, err)
	require.Len(t, plan, 5)
	assert.Equal(t, "Review Biology lecture notes", plan[0].Title)
	assert.Equal(t, "Daily", plan[0].Frequency)
	assert.Contains(t, plan[3].Title, `"MCAT"`)

	listed, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, plan, listed)
}

func TestGenerate_ReplacesPreviousPlan(t *testing.T) {
	ctx := context.Background()
	s := NewTaskService(repomanager.NewInMemoryRepositoryManager())
	u := &models.User{ID: 1, Role: strp("other"), Subject: strp("Piano")}

	first, err := s.Generate(ctx, u)
	require.NoError(t, err)
	second, err := s.Generate(ctx, u)
	require.NoError(t, err)

	listed, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, listed, len(second))
	assert.Greater(t, listed[0].ID, first[len(first)-1].ID)
}

func TestGenerate_RequiresCompleteProfile(t *testing.T) {
	s := NewTaskService(repomanager.NewInMemoryRepositoryManager())

	_, err := s.Generate(context.Background(), &models.User{ID: 1, Role: strp("student")})
	require.ErrorIs(t, err, shared.ErrorValidation)
}

func TestBuildPlan_UnknownRoleFallsBack(t *testing.T) {
	plan := buildPlan("astronaut", "Go", "")
	require.Len(t, plan, 3)
	assert.Equal(t, "Spend 30 minutes on Go", plan[0].Title)
}

func TestSetCompleted_UnknownTask(t *testing.T) {
	s := NewTaskService(repomanager.NewInMemoryRepositoryManager())

	_, err := s.SetCompleted(context.Background(), 1, 42, true)
	require.ErrorIs(t, err, shared.ErrorNotFound)

	status, detail := StatusOf(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Task not found", detail)
}

type failingTasks struct {
	tasks.Repository
	err error
}

func (f failingTasks) SetCompleted(context.Context, int64, int64, bool) (models.Task, error) {
	return models.Task{}, f.err
}

type failingManager struct {
	*repomanager.InMemoryRepositoryManager
	tasks failingTasks
}

func (m failingManager) Tasks() tasks.Repository { return m.tasks }

func TestSetCompleted_StorageFailureIsNotNotFound(t *testing.T) {
	boom := errors.New("storage offline")
	s := NewTaskService(failingManager{
		InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager(),
		tasks:                     failingTasks{err: boom},
	})

	_, err := s.SetCompleted(context.Background(), 1, 42, true)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, shared.ErrorNotFound)

	status, _ := StatusOf(err)
	assert.Equal(t, 500, status)
}
