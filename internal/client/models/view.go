package models

// View is the screen currently shown to the user.
type View string

const (
	ViewAuth       View = "auth"
	ViewOnboarding View = "onboarding"
	ViewDashboard  View = "dashboard"
)

func (v View) String() string {
	return string(v)
}

// Roles offered on the onboarding screen.
var Roles = []string{"student", "professional", "other"}
