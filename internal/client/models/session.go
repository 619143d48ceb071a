package models

// Session is the authenticated context of this client instance. User is only
// meaningful when Token is set; a token without a user is a valid transient
// state while the profile fetch is in flight or after it failed.
type Session struct {
	Token string
	User  *User
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is the input collected on the Auth screen. Name is only sent
// on signup.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileDraft is the uncommitted onboarding input.
type ProfileDraft struct {
	Role    string `json:"role"`
	Subject string `json:"subject"`
	Goal    string `json:"goal"`
}
