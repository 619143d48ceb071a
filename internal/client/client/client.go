package client

import (
	"context"

	"github.com/dmitrijs2005/decipline/internal/client/models"
)

// Client is the transport-agnostic contract with the Decipline backend.
// Every method except Signup and Login carries the session token as a
// bearer credential.
type Client interface {
	Close() error
	Signup(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	Login(ctx context.Context, email, password string) (models.AuthResult, error)
	Me(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, token string, draft models.ProfileDraft) (models.User, error)
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	GenerateTasks(ctx context.Context, token string) error
	SetTaskCompleted(ctx context.Context, token string, id int64, completed bool) error
	Upgrade(ctx context.Context, token string) (models.User, error)
	Advice(ctx context.Context, token string) (string, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type completionRequest struct {
	ID        int64 `json:"id,omitempty"`
	Completed bool  `json:"completed"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

type errorBody struct {
	Detail any `json:"detail"`
}
