// Package session owns the authenticated context: acquiring the token on
// login, persisting it, restoring it at startup and destroying it on logout.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/client/view"
	"github.com/dmitrijs2005/decipline/internal/logging"
)

// UserFetcher is the part of the backend contract the store needs.
type UserFetcher interface {
	Me(ctx context.Context, token string) (models.User, error)
}

// TaskFetcher refreshes the task list of the current session.
type TaskFetcher interface {
	Fetch(ctx context.Context) error
}

type Store struct {
	state  *state.Store
	tokens TokenStore
	api    UserFetcher
	tasks  TaskFetcher
	views  *view.Controller
	log    logging.Logger
}

func NewStore(st *state.Store, tokens TokenStore, api UserFetcher, tasks TaskFetcher, views *view.Controller, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{state: st, tokens: tokens, api: api, tasks: tasks, views: views, log: log}
}

// Restore loads the persisted token. Without one the client stays on Auth
// and makes no network call. With one it fetches the user and the task
// list; neither failure is surfaced.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			if cerr := s.tokens.Clear(ctx); cerr != nil {
				s.log.Warn(ctx, "failed to clear expired session", "err", cerr)
			}
		}
		s.log.Debug(ctx, "no session restored", "err", err)
		s.state.Update(func(st *state.State) {
			st.View = models.ViewAuth
		})
		return
	}

	s.state.Update(func(st *state.State) {
		st.Epoch++
		st.Session = models.Session{Token: token}
		st.Tasks = nil
		st.View = models.ViewAuth
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.FetchUser(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := s.tasks.Fetch(ctx); err != nil {
			s.log.Debug(ctx, "restore: task fetch failed", "err", err)
		}
	}()
	wg.Wait()
}

// Commit installs a freshly acquired session and persists its token.
// Persistence failures are logged and otherwise ignored.
func (s *Store) Commit(ctx context.Context, token string, user models.User) {
	s.state.Update(func(st *state.State) {
		st.Epoch++
		st.Session = models.Session{Token: token, User: user.Clone()}
		st.Tasks = nil
		st.Advice = ""
		if err := s.views.Apply(ctx, st, view.Authenticated); err != nil {
			s.log.Warn(ctx, "commit: view unchanged", "err", err)
		}
	})

	if err := s.tokens.Save(ctx, token); err != nil {
		s.log.Warn(ctx, "failed to persist session", "err", err)
	}
}

// FetchUser refreshes the user record of the current session and
// re-evaluates the view. Failures leave the session unchanged.
func (s *Store) FetchUser(ctx context.Context) {
	token, epoch := s.state.Token()
	if token == "" {
		return
	}

	u, err := s.api.Me(ctx, token)
	if err != nil {
		s.log.Debug(ctx, "user fetch failed", "err", err)
		return
	}

	applied := s.state.UpdateIf(epoch, func(st *state.State) {
		st.Session.User = u.Clone()
		// a rejected transition only means the user is already past Auth
		_ = s.views.Apply(ctx, st, view.Restored)
	})
	if !applied {
		s.log.Debug(ctx, "user fetch result dropped, session changed")
	}
}

// Logout destroys the session. It is idempotent and makes no network call.
func (s *Store) Logout(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persisted session", "err", err)
	}

	s.state.Update(func(st *state.State) {
		if st.Session.Authenticated() || st.Session.User != nil {
			st.Epoch++
		}
		st.Session = models.Session{}
		st.Tasks = nil
		st.Advice = ""
		st.Error = ""
		st.Credentials = models.Credentials{}
		st.Profile = models.ProfileDraft{}
		_ = s.views.Apply(ctx, st, view.SignedOut)
	})
}
