package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/decipline/internal/client/client"
	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/services"
	"github.com/dmitrijs2005/decipline/internal/shared"
)

var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errInvalidInput = errors.New("invalid input")

// report prints failures that have no place on the screen itself. Server
// failures of auth and profile actions are rendered from the error banner.
func report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, services.ErrBusy):
		printlnFn("Please wait, a request is already in progress")
	case errors.Is(err, services.ErrNotAuthenticated):
		printlnFn("Please log in first")
	}
}

// ask prompts for a value and falls back to def on empty input.
func (a *App) ask(prompt, def string) (string, error) {
	return getSimpleText(a.reader, prompt, def, a.out)
}

func (a *App) askPassword() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	s := string(pw)
	shared.WipeByteArray(pw)
	return s, nil
}

// Signup prompts for name, email and password and creates an account.
func (a *App) Signup(ctx context.Context) error {
	draft := a.store.Snapshot().Credentials

	name, err := a.ask("Name", draft.Name)
	if err != nil {
		return err
	}
	email, err := a.ask("Email", draft.Email)
	if err != nil {
		return err
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}

	err = a.auth.Signup(ctx, models.Credentials{Name: name, Email: email, Password: password})
	report(err)
	return err
}

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	draft := a.store.Snapshot().Credentials

	email, err := a.ask("Email", draft.Email)
	if err != nil {
		return err
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}

	err = a.auth.Login(ctx, email, password)
	report(err)
	return err
}

// Profile collects the onboarding answers and submits them. Generation of
// the first plan starts in the background.
func (a *App) Profile(ctx context.Context) error {
	draft := a.store.Snapshot().Profile

	role, err := a.ask("Who are you? ("+strings.Join(models.Roles, ", ")+")", draft.Role)
	if err != nil {
		return err
	}
	role = strings.ToLower(role)
	if role != "" && !slices.Contains(models.Roles, role) {
		printlnFn("Unknown role:", role)
		return errInvalidInput
	}

	subject, err := a.ask("Subject / Skill", draft.Subject)
	if err != nil {
		return err
	}
	goal, err := a.ask("Goal / Exam (optional)", draft.Goal)
	if err != nil {
		return err
	}

	err = a.profile.UpdateProfile(ctx, models.ProfileDraft{Role: role, Subject: subject, Goal: goal})
	report(err)
	if err == nil && a.currentView() == models.ViewDashboard {
		printlnFn("Generating your study plan...")
	}
	return err
}

// ListTasks prints the task list without the rest of the dashboard.
func (a *App) ListTasks(ctx context.Context) error {
	renderTasks(a.out, a.store.Snapshot().Tasks)
	return nil
}

// Generate asks the server for a new plan and waits for the refreshed list.
func (a *App) Generate(ctx context.Context) error {
	err := a.tasks.GenerateTasks(ctx)
	switch {
	case errors.Is(err, services.ErrBusy):
		printlnFn("Task generation is already in progress")
	case errors.Is(err, services.ErrNotAuthenticated):
		report(err)
	case err != nil:
		printlnFn("Could not generate tasks:", client.Message(err))
	}
	return err
}

// SetCompleted marks the task named by args[0] as done or not done. The
// id is prompted for when it is missing.
func (a *App) SetCompleted(ctx context.Context, args []string, completed bool) error {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := getSimpleText(a.reader, "Task id", "", a.out)
		if err != nil {
			return err
		}
		raw = s
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil {
		printlnFn("Invalid task id:", raw)
		return errInvalidInput
	}
	if _, ok := models.FindTask(a.store.Snapshot().Tasks, id); !ok {
		printlnFn(fmt.Sprintf("No task #%d", id))
		return errInvalidInput
	}

	err = a.tasks.ToggleTask(ctx, id, completed)
	if errors.Is(err, services.ErrNotAuthenticated) {
		report(err)
	} else if err != nil {
		printlnFn(fmt.Sprintf("Task #%d was not updated: %s", id, client.Message(err)))
	}
	return err
}

// Upgrade switches the account to the Premium plan. A failure leaves the
// plan unchanged and is not reported.
func (a *App) Upgrade(ctx context.Context) error {
	err := a.account.Upgrade(ctx)
	report(err)
	return err
}

// Advice fetches study advice. The outcome, including a failure message,
// is shown in the advice panel.
func (a *App) Advice(ctx context.Context) error {
	err := a.account.GetAdvice(ctx)
	report(err)
	return err
}

// Refresh refetches the user and the task list.
func (a *App) Refresh(ctx context.Context) error {
	a.tasks.Refresh(ctx)
	return nil
}

// Logout ends the session. It is safe to call without one.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	printlnFn("Logged out")
	return nil
}
