// Package services contains the action dispatchers of the Decipline client.
// Each dispatcher clears the error banner, takes the loading flag of its
// operation, performs one backend call and applies the outcome to the state
// container. Flags are released on every exit path.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/client"
	"github.com/dmitrijs2005/decipline/internal/client/metrics"
	"github.com/dmitrijs2005/decipline/internal/client/session"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/client/tasks"
	"github.com/dmitrijs2005/decipline/internal/client/view"
	"github.com/dmitrijs2005/decipline/internal/logging"
	"github.com/microcosm-cc/bluemonday"
)

var (
	// ErrBusy is returned when the same operation is already in flight. No
	// request is issued.
	ErrBusy = errors.New("operation already in progress")
	// ErrNotAuthenticated is returned by actions that need a session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Deps are the collaborators of a Dispatcher.
type Deps struct {
	API     client.Client
	State   *state.Store
	Session *session.Store
	Tasks   *tasks.Synchronizer
	Views   *view.Controller
	Metrics metrics.Recorder
	Logger  logging.Logger
}

type Dispatcher struct {
	api     client.Client
	state   *state.Store
	session *session.Store
	tasks   *tasks.Synchronizer
	views   *view.Controller
	metrics metrics.Recorder
	log     logging.Logger
	policy  *bluemonday.Policy

	wg sync.WaitGroup
}

func NewDispatcher(d Deps) *Dispatcher {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	if d.Views == nil {
		d.Views = view.NewController(d.Logger)
	}
	return &Dispatcher{
		api:     d.API,
		state:   d.State,
		session: d.Session,
		tasks:   d.Tasks,
		views:   d.Views,
		metrics: d.Metrics,
		log:     d.Logger,
		policy:  bluemonday.StrictPolicy(),
	}
}

// Wait blocks until background work started by the dispatcher, such as
// task generation after a profile update, has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// begin takes the loading flag of op and clears the error banner.
func (d *Dispatcher) begin(op state.Op) error {
	if !d.state.Acquire(op) {
		return ErrBusy
	}
	d.state.Update(func(st *state.State) { st.Error = "" })
	return nil
}

// clearError removes the banner left by an earlier action unless the
// session changed since epoch.
func (d *Dispatcher) clearError(epoch uint64) {
	d.state.UpdateIf(epoch, func(st *state.State) { st.Error = "" })
}

// fail shows the message of err in the error banner unless the session
// changed since epoch.
func (d *Dispatcher) fail(epoch uint64, err error) {
	msg := client.Message(err)
	d.state.UpdateIf(epoch, func(st *state.State) { st.Error = msg })
}

func (d *Dispatcher) observe(action string, start time.Time, err *error) {
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(*err, ErrBusy):
		outcome = metrics.OutcomeBusy
	case *err != nil:
		outcome = metrics.OutcomeError
	}
	d.metrics.RecordAction(action, outcome, time.Since(start))
}

// background runs fn detached from the caller's cancellation and tracks it
// for Wait.
func (d *Dispatcher) background(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn(ctx)
	}()
}
