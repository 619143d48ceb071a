package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/decipline/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentView() models.View
	premium() bool
	Render()

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	ListTasks(ctx context.Context) error
	Generate(ctx context.Context) error
	SetCompleted(ctx context.Context, args []string, completed bool) error
	Upgrade(ctx context.Context) error
	Advice(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

// viewCommands lists the commands accepted on each screen, in help order.
var viewCommands = map[models.View][]string{
	models.ViewAuth:       {"signup", "login"},
	models.ViewOnboarding: {"profile"},
	models.ViewDashboard:  {"tasks", "generate", "done", "undo", "upgrade", "advice", "refresh"},
}

var commonCommands = []string{"show", "logout", "help", "exit"}

// helpText lists the commands available on view. The upgrade command is
// hidden for premium users.
func helpText(v models.View, premium bool) string {
	var names []string
	for _, c := range viewCommands[v] {
		if c == "upgrade" && premium {
			continue
		}
		names = append(names, c)
	}
	if v == models.ViewAuth {
		names = append(names, "help", "exit")
	} else {
		names = append(names, commonCommands...)
	}
	return "Available commands: " + strings.Join(names, ", ")
}

func allowed(v models.View, cmd string) bool {
	for _, c := range viewCommands[v] {
		if c == cmd {
			return true
		}
	}
	return false
}

// runREPL starts a simple read–eval–print loop for the Decipline client.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. Commands that belong to another screen are
// rejected. The screen is redrawn after every command that may have changed
// it. The loop exits on EOF, on ctx cancellation, or when the user types
// "exit" or "quit".
//
//	Auth:        signup, login
//	Onboarding:  profile
//	Dashboard:   tasks, generate, done <id>, undo <id>, upgrade, advice, refresh
//	Everywhere:  show, logout, help, exit | quit
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("decipline %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]
		v := a.currentView()

		switch cmd {
		case "help":
			printlnFn(helpText(v, a.premium()))
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "show":
			a.Render()
			continue

		case "logout":
			_ = a.Logout(ctx)
			a.Render()
			continue
		}

		if !allowed(v, cmd) {
			if _, known := commandView(cmd); known {
				printlnFn(fmt.Sprintf("%q is not available on the %s screen", cmd, v))
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "signup":
			_ = a.Signup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "tasks":
			_ = a.ListTasks(ctx)
			continue
		case "generate":
			_ = a.Generate(ctx)
		case "done":
			_ = a.SetCompleted(ctx, args, true)
		case "undo":
			_ = a.SetCompleted(ctx, args, false)
		case "upgrade":
			if a.premium() {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.Upgrade(ctx)
		case "advice":
			_ = a.Advice(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		}

		a.Render()
	}
}

func commandView(cmd string) (models.View, bool) {
	for v, cmds := range viewCommands {
		for _, c := range cmds {
			if c == cmd {
				return v, true
			}
		}
	}
	return "", false
}
