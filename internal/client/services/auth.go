package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
)

// AuthService covers the Auth screen and the session lifecycle.
type AuthService interface {
	Signup(ctx context.Context, creds models.Credentials) error
	Login(ctx context.Context, email, password string) error
	Restore(ctx context.Context)
	Logout(ctx context.Context)
}

var _ AuthService = (*Dispatcher)(nil)

// Signup creates an account and commits the returned session.
func (d *Dispatcher) Signup(ctx context.Context, creds models.Credentials) (err error) {
	defer d.observe("signup", time.Now(), &err)
	return d.authenticate(ctx, creds, func(ctx context.Context) (models.AuthResult, error) {
		return d.api.Signup(ctx, creds)
	})
}

// Login authenticates with email and password and commits the session.
func (d *Dispatcher) Login(ctx context.Context, email, password string) (err error) {
	defer d.observe("login", time.Now(), &err)
	creds := models.Credentials{Email: email, Password: password}
	return d.authenticate(ctx, creds, func(ctx context.Context) (models.AuthResult, error) {
		return d.api.Login(ctx, email, password)
	})
}

func (d *Dispatcher) authenticate(ctx context.Context, draft models.Credentials, call func(context.Context) (models.AuthResult, error)) error {
	if err := d.begin(state.OpAuth); err != nil {
		return err
	}
	defer d.state.Release(state.OpAuth)

	var epoch uint64
	d.state.Update(func(st *state.State) {
		st.Credentials = draft
		epoch = st.Epoch
	})

	res, err := call(ctx)
	if err != nil {
		d.log.Debug(ctx, "authentication failed", "err", err)
		d.fail(epoch, err)
		return err
	}

	d.session.Commit(ctx, res.Token, res.User)
	return nil
}

// Restore brings back a persisted session at startup.
func (d *Dispatcher) Restore(ctx context.Context) {
	d.session.Restore(ctx)
}

// Logout destroys the session locally.
func (d *Dispatcher) Logout(ctx context.Context) {
	d.session.Logout(ctx)
}
