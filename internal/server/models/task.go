package models

import "time"

// Task is a generated study task owned by one user.
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Frequency string    `json:"frequency"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"-"`
}
