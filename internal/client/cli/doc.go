// Package cli provides the interactive Decipline terminal client.
//
// It wires configuration, the local state database, the backend transport
// and the action dispatchers, and exposes them through a REPL with one
// command set per screen:
//   - Auth: sign up or log in
//   - Onboarding: describe your role, subject and goal
//   - Dashboard: list, generate and complete tasks, upgrade, ask for advice
//
// The REPL is started via App.Run(ctx), which restores the previous session
// and blocks until the user exits.
package cli
