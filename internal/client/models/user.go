package models

import "strings"

// User is the server's view of the signed-in account. Role, Subject and Goal
// are nil until the user completes onboarding.
type User struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Role    *string `json:"role"`
	Subject *string `json:"subject"`
	Goal    *string `json:"goal"`
	Premium bool    `json:"premium"`
}

// ProfileComplete reports whether u has both a role and a subject. It is the
// only predicate that gates the Onboarding/Dashboard boundary. Blank strings
// count as unset.
func ProfileComplete(u *User) bool {
	if u == nil {
		return false
	}
	return isSet(u.Role) && isSet(u.Subject)
}

// Plan is the human-readable billing plan name.
func (u User) Plan() string {
	if u.Premium {
		return "Premium"
	}
	return "Free"
}

// Clone returns a deep copy so that callers cannot mutate shared state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Role = cloneString(u.Role)
	c.Subject = cloneString(u.Subject)
	c.Goal = cloneString(u.Goal)
	return &c
}

// Deref returns the pointed-to value or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

func isSet(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
