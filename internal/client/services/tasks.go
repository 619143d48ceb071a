package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/state"
)

// TaskService covers the task list on the Dashboard.
type TaskService interface {
	GenerateTasks(ctx context.Context) error
	ToggleTask(ctx context.Context, id int64, completed bool) error
	Refresh(ctx context.Context)
}

var _ TaskService = (*Dispatcher)(nil)

// GenerateTasks asks for a new plan and refetches the list.
func (d *Dispatcher) GenerateTasks(ctx context.Context) (err error) {
	defer d.observe("generate", time.Now(), &err)

	token, epoch := d.state.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	if !d.state.Acquire(state.OpGenerate) {
		return ErrBusy
	}
	d.clearError(epoch)
	defer d.state.Release(state.OpGenerate)

	return d.tasks.Generate(ctx).MutateErr
}

// ToggleTask sets the completion flag of a task. The list changes only
// after the server acknowledged the update; a failure is returned so the
// caller can tell the user the change was not applied.
func (d *Dispatcher) ToggleTask(ctx context.Context, id int64, completed bool) (err error) {
	defer d.observe("toggle", time.Now(), &err)

	if token, _ := d.state.Token(); token == "" {
		return ErrNotAuthenticated
	}
	return d.tasks.Toggle(ctx, id, completed).MutateErr
}

// Refresh refetches the user and the task list. Failures are not surfaced.
func (d *Dispatcher) Refresh(ctx context.Context) {
	if token, _ := d.state.Token(); token == "" {
		return
	}
	d.session.FetchUser(ctx)
	_ = d.tasks.Fetch(ctx)
}
