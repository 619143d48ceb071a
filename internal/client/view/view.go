// Package view decides which screen the client shows. Transitions are only
// taken in response to a Trigger, and only along the edges listed in
// allowed; everything else is rejected without touching the state.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/logging"
)

var ErrTransitionNotAllowed = errors.New("view transition not allowed")

// Trigger is the event that asks for a view change.
type Trigger int

const (
	// Authenticated follows a successful signup or login.
	Authenticated Trigger = iota
	// ProfileCommitted follows a successful profile update once task
	// generation has been issued.
	ProfileCommitted
	// Restored follows a successful user fetch for a restored session.
	Restored
	// SignedOut follows logout.
	SignedOut
)

func (t Trigger) String() string {
	switch t {
	case Authenticated:
		return "authenticated"
	case ProfileCommitted:
		return "profile_committed"
	case Restored:
		return "restored"
	case SignedOut:
		return "signed_out"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

type edge struct {
	from, to models.View
	trigger  Trigger
}

var allowed = map[edge]bool{
	{models.ViewAuth, models.ViewOnboarding, Authenticated}:         true,
	{models.ViewOnboarding, models.ViewDashboard, ProfileCommitted}: true,
	{models.ViewAuth, models.ViewDashboard, Restored}:               true,
	{models.ViewOnboarding, models.ViewAuth, SignedOut}:             true,
	{models.ViewDashboard, models.ViewAuth, SignedOut}:              true,
}

// target is the view the trigger asks for given the current user.
func target(from models.View, t Trigger, u *models.User) models.View {
	switch t {
	case Authenticated:
		return models.ViewOnboarding
	case ProfileCommitted, Restored:
		if models.ProfileComplete(u) {
			return models.ViewDashboard
		}
		return from
	case SignedOut:
		return models.ViewAuth
	default:
		return from
	}
}

// Next returns the view that follows from on t. Asking for the current view
// is a no-op and always allowed.
func Next(from models.View, t Trigger, u *models.User) (models.View, error) {
	to := target(from, t, u)
	if to == from {
		return from, nil
	}
	if !allowed[edge{from, to, t}] {
		return from, fmt.Errorf("%w: %s -> %s on %s", ErrTransitionNotAllowed, from, to, t)
	}
	return to, nil
}

type Controller struct {
	log logging.Logger
}

func NewController(log logging.Logger) *Controller {
	if log == nil {
		log = logging.NewNop()
	}
	return &Controller{log: log}
}

// Apply evaluates t against st and moves st.View. It must be called inside
// a state.Store update. Drafts that belong to the screen being left are
// discarded.
func (c *Controller) Apply(ctx context.Context, st *state.State, t Trigger) error {
	from := st.View
	to, err := Next(from, t, st.Session.User)
	if err != nil {
		c.log.Debug(ctx, "view transition rejected", "from", from, "trigger", t.String())
		return err
	}
	if to == from {
		return nil
	}
	switch from {
	case models.ViewAuth:
		st.Credentials = models.Credentials{}
	case models.ViewOnboarding:
		st.Profile = models.ProfileDraft{}
	}
	st.View = to
	c.log.Debug(ctx, "view changed", "from", from, "to", to, "trigger", t.String())
	return nil
}
