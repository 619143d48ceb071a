// Package models holds the records of the development server and their
// JSON views.
package models
