package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/decipline/internal/client/models"
)

// Root restores the persisted session, draws the current screen and runs
// the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Decipline")

	a.auth.Restore(ctx)
	a.Render()

	runREPL(ctx, a, a.statusLine, a.reader)
}

func (a *App) currentView() models.View {
	return a.store.Snapshot().View
}

func (a *App) premium() bool {
	u := a.store.Snapshot().Session.User
	return u != nil && u.Premium
}

// Render draws the current screen to the app's output.
func (a *App) Render() {
	renderScreen(a.out, a.store.Snapshot())
}

func (a *App) statusLine() string {
	st := a.store.Snapshot()
	parts := []string{st.View.String()}
	if u := st.Session.User; st.Session.Authenticated() && u != nil {
		parts = append(parts, u.Email, u.Plan())
	}
	if st.Busy() {
		parts = append(parts, "(working)")
	}
	return strings.Join(parts, " ")
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
