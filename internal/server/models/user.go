package models

import "time"

// User is an account of the development server. Role, Subject and Goal stay
// nil until onboarding.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         *string
	Subject      *string
	Goal         *string
	Premium      bool
	CreatedAt    time.Time
}

// UserView is the public JSON shape of a user.
type UserView struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Role    *string `json:"role"`
	Subject *string `json:"subject"`
	Goal    *string `json:"goal"`
	Premium bool    `json:"premium"`
}

func (u *User) View() UserView {
	return UserView{
		ID:      u.ID,
		Email:   u.Email,
		Role:    u.Role,
		Subject: u.Subject,
		Goal:    u.Goal,
		Premium: u.Premium,
	}
}

// AuthView is returned by signup and login.
type AuthView struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
