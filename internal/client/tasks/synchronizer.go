// Package tasks keeps the local task list consistent with the server. The
// list is never edited locally; every change goes through the server and is
// followed by a wholesale refetch.
package tasks

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/logging"
)

var ErrNoSession = errors.New("no active session")

// Remote is the part of the backend contract that concerns tasks.
type Remote interface {
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	GenerateTasks(ctx context.Context, token string) error
	SetTaskCompleted(ctx context.Context, token string, id int64, completed bool) error
}

type Synchronizer struct {
	state *state.Store
	api   Remote
	log   logging.Logger
}

func NewSynchronizer(st *state.Store, api Remote, log logging.Logger) *Synchronizer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Synchronizer{state: st, api: api, log: log}
}

// Fetch replaces the local list with the server's. On failure the stale
// list is kept; the error is returned for reporting only.
func (s *Synchronizer) Fetch(ctx context.Context) error {
	token, epoch := s.state.Token()
	if token == "" {
		return ErrNoSession
	}

	list, err := s.api.ListTasks(ctx, token)
	if err != nil {
		s.log.Debug(ctx, "task fetch failed", "err", err)
		return err
	}

	if !s.state.UpdateIf(epoch, func(st *state.State) { st.Tasks = list }) {
		s.log.Debug(ctx, "task list dropped, session changed")
	}
	return nil
}

// Run executes a two-phase action.
func (s *Synchronizer) Run(ctx context.Context, a Action) Result {
	var res Result
	res.MutateErr = a.Mutate(ctx)
	if res.MutateErr != nil {
		s.log.Debug(ctx, "task mutation failed", "action", a.Name, "err", res.MutateErr)
	}
	if a.shouldRefresh(res.MutateErr) {
		res.Refreshed = true
		res.RefreshErr = s.Fetch(ctx)
	}
	return res
}

// Generate asks the server to generate tasks and then refetches the list.
// The generation response is never applied locally.
func (s *Synchronizer) Generate(ctx context.Context) Result {
	token, _ := s.state.Token()
	return s.Run(ctx, Action{
		Name: "generate",
		Mutate: func(ctx context.Context) error {
			if token == "" {
				return ErrNoSession
			}
			return s.api.GenerateTasks(ctx, token)
		},
		Policy: RefreshAlways,
	})
}

// Toggle sets the completion flag of task id. The local list only changes
// through the refetch that follows a successful update.
func (s *Synchronizer) Toggle(ctx context.Context, id int64, completed bool) Result {
	token, _ := s.state.Token()
	return s.Run(ctx, Action{
		Name: "toggle",
		Mutate: func(ctx context.Context) error {
			if token == "" {
				return ErrNoSession
			}
			return s.api.SetTaskCompleted(ctx, token, id, completed)
		},
		Policy: RefreshOnSuccess,
	})
}
