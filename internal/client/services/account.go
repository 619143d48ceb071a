package services

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/client"
	"github.com/dmitrijs2005/decipline/internal/client/state"
)

// AccountService covers billing and advice.
type AccountService interface {
	Upgrade(ctx context.Context) error
	GetAdvice(ctx context.Context) error
}

var _ AccountService = (*Dispatcher)(nil)

// Upgrade switches the account to premium and replaces the user with the
// server's record. Failures are returned but never shown in the banner.
func (d *Dispatcher) Upgrade(ctx context.Context) (err error) {
	defer d.observe("upgrade", time.Now(), &err)

	token, epoch := d.state.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	d.clearError(epoch)

	u, err := d.api.Upgrade(ctx, token)
	if err != nil {
		d.log.Debug(ctx, "upgrade failed", "err", err)
		return err
	}
	d.state.UpdateIf(epoch, func(st *state.State) { st.Session.User = u.Clone() })
	return nil
}

// GetAdvice clears the advice text and replaces it with the server's
// advice, or with the failure message.
func (d *Dispatcher) GetAdvice(ctx context.Context) (err error) {
	defer d.observe("advice", time.Now(), &err)

	token, epoch := d.state.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	d.state.UpdateIf(epoch, func(st *state.State) {
		st.Error = ""
		st.Advice = ""
	})

	text, err := d.api.Advice(ctx, token)
	if err != nil {
		d.log.Debug(ctx, "advice failed", "err", err)
		text = client.Message(err)
	} else {
		text = d.sanitize(text)
	}

	d.state.UpdateIf(epoch, func(st *state.State) { st.Advice = text })
	return err
}

// sanitize strips markup from server-provided text for terminal display.
func (d *Dispatcher) sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(d.policy.Sanitize(s)))
}
