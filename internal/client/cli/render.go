package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
)

// renderScreen writes the screen selected by st.View.
func renderScreen(w io.Writer, st state.State) {
	fmt.Fprintln(w)
	switch st.View {
	case models.ViewOnboarding:
		renderHeader(w, st.Session.User)
		fmt.Fprintln(w, "Tell us about your learning")
		fmt.Fprintln(w, "Type 'profile' to choose your role, subject and goal.")
	case models.ViewDashboard:
		renderHeader(w, st.Session.User)
		if st.Loading[state.OpGenerate] {
			fmt.Fprintln(w, "Generating your study plan...")
		}
		renderTasks(w, st.Tasks)
		if st.Advice != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "AI Study Advice")
			fmt.Fprintln(w, st.Advice)
		}
	default:
		fmt.Fprintln(w, "Welcome to Decipline")
		fmt.Fprintln(w, "Sign up or log in to get your personalized study plan.")
	}

	if st.Error != "" {
		fmt.Fprintln(w, "Error:", st.Error)
	}
}

func renderHeader(w io.Writer, u *models.User) {
	if u == nil {
		return
	}
	fmt.Fprintf(w, "%s | %s plan\n", u.Email, u.Plan())
}

func renderTasks(w io.Writer, tasks []models.Task) {
	fmt.Fprintln(w, "Your Tasks")
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet. Generate to get started.")
		return
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "#%d [%s] %s (%s • %s)\n", t.ID, mark, t.Title, t.Category, t.Frequency)
	}
}
