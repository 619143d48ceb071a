package view

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	incomplete = &models.User{ID: 1, Email: "a@x.com"}
	complete   = &models.User{ID: 1, Email: "a@x.com", Role: models.StringPtr("student"), Subject: models.StringPtr("math")}
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		from    models.View
		trigger Trigger
		user    *models.User
		want    models.View
		wantErr bool
	}{
		{name: "login with incomplete user", from: models.ViewAuth, trigger: Authenticated, user: incomplete, want: models.ViewOnboarding},
		{name: "login with complete user still onboards", from: models.ViewAuth, trigger: Authenticated, user: complete, want: models.ViewOnboarding},
		{name: "profile complete", from: models.ViewOnboarding, trigger: ProfileCommitted, user: complete, want: models.ViewDashboard},
		{name: "profile incomplete stays", from: models.ViewOnboarding, trigger: ProfileCommitted, user: incomplete, want: models.ViewOnboarding},
		{name: "restore complete", from: models.ViewAuth, trigger: Restored, user: complete, want: models.ViewDashboard},
		{name: "restore incomplete stays", from: models.ViewAuth, trigger: Restored, user: incomplete, want: models.ViewAuth},
		{name: "restore nil user stays", from: models.ViewAuth, trigger: Restored, user: nil, want: models.ViewAuth},
		{name: "refresh on dashboard is a no-op", from: models.ViewDashboard, trigger: Restored, user: complete, want: models.ViewDashboard},
		{name: "logout from dashboard", from: models.ViewDashboard, trigger: SignedOut, want: models.ViewAuth},
		{name: "logout from onboarding", from: models.ViewOnboarding, trigger: SignedOut, want: models.ViewAuth},
		{name: "logout from auth", from: models.ViewAuth, trigger: SignedOut, want: models.ViewAuth},

		{name: "login from dashboard", from: models.ViewDashboard, trigger: Authenticated, user: complete, want: models.ViewDashboard, wantErr: true},
		{name: "profile from auth", from: models.ViewAuth, trigger: ProfileCommitted, user: complete, want: models.ViewAuth, wantErr: true},
		{name: "restore skips onboarding", from: models.ViewOnboarding, trigger: Restored, user: complete, want: models.ViewOnboarding, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Next(tc.from, tc.trigger, tc.user)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrTransitionNotAllowed)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestController_ApplyClearsLeftDrafts(t *testing.T) {
	c := NewController(nil)
	ctx := context.Background()

	st := state.State{
		View:        models.ViewAuth,
		Credentials: models.Credentials{Email: "a@x.com", Password: "pw"},
		Session:     models.Session{Token: "t", User: incomplete},
	}
	require.NoError(t, c.Apply(ctx, &st, Authenticated))
	assert.Equal(t, models.ViewOnboarding, st.View)
	assert.Empty(t, st.Credentials)

	st.Profile = models.ProfileDraft{Role: "student", Subject: "math"}
	st.Session.User = complete
	require.NoError(t, c.Apply(ctx, &st, ProfileCommitted))
	assert.Equal(t, models.ViewDashboard, st.View)
	assert.Empty(t, st.Profile)
}

func TestController_RejectedLeavesStateUntouched(t *testing.T) {
	c := NewController(nil)
	st := state.State{
		View:    models.ViewDashboard,
		Profile: models.ProfileDraft{Role: "x"},
		Session: models.Session{Token: "t", User: complete},
	}
	before := st

	err := c.Apply(context.Background(), &st, Authenticated)
	require.ErrorIs(t, err, ErrTransitionNotAllowed)
	assert.Equal(t, before, st)
}

func TestTrigger_String(t *testing.T) {
	assert.Equal(t, "signed_out", SignedOut.String())
	assert.Equal(t, "trigger(42)", Trigger(42).String())
}
