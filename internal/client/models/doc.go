// Package models defines the client-side domain types of the Decipline
// client: the user record, tasks, the session and the view states.
package models
