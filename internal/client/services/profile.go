package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/client/view"
)

// ProfileService covers the Onboarding screen.
type ProfileService interface {
	UpdateProfile(ctx context.Context, draft models.ProfileDraft) error
}

var _ ProfileService = (*Dispatcher)(nil)

// UpdateProfile submits the onboarding draft. On success it stores the
// returned user, issues task generation in the background and moves to the
// Dashboard if the profile is now complete. Generation is not awaited.
func (d *Dispatcher) UpdateProfile(ctx context.Context, draft models.ProfileDraft) (err error) {
	defer d.observe("update_profile", time.Now(), &err)

	token, epoch := d.state.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	if err := d.begin(state.OpProfile); err != nil {
		return err
	}
	defer d.state.Release(state.OpProfile)

	d.state.UpdateIf(epoch, func(st *state.State) { st.Profile = draft })

	u, err := d.api.UpdateProfile(ctx, token, draft)
	if err != nil {
		d.log.Debug(ctx, "profile update failed", "err", err)
		d.fail(epoch, err)
		return err
	}

	// an in-flight generation counts as issued
	generate := d.state.Acquire(state.OpGenerate)

	applied := d.state.UpdateIf(epoch, func(st *state.State) {
		st.Session.User = u.Clone()
		st.Profile = models.ProfileDraft{}
		if err := d.views.Apply(ctx, st, view.ProfileCommitted); err != nil {
			d.log.Warn(ctx, "profile committed outside onboarding", "err", err)
		}
	})
	if !applied {
		if generate {
			d.state.Release(state.OpGenerate)
		}
		d.log.Debug(ctx, "profile result dropped, session changed")
		return nil
	}

	if generate {
		d.background(ctx, func(ctx context.Context) {
			defer d.state.Release(state.OpGenerate)
			res := d.tasks.Generate(ctx)
			d.metrics.RecordBackground("generate", res.MutateErr, res.RefreshErr)
			if res.MutateErr != nil {
				d.log.Debug(ctx, "background generation failed", "err", res.MutateErr)
			}
		})
	}
	return nil
}
