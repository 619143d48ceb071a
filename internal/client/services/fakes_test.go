package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/session"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/client/tasks"
	"github.com/dmitrijs2005/decipline/internal/client/view"
)

// fakeClient implements client.Client and records every call.
type fakeClient struct {
	mu sync.Mutex

	AuthRet    models.AuthResult
	AuthErr    error
	MeRet      models.User
	MeErr      error
	ProfileRet models.User
	ProfileErr error
	Tasks      []models.Task
	ListErr    error
	GenErr     error
	GenGate    chan struct{}
	SetErr     error
	UpgradeRet models.User
	UpgradeErr error
	AdviceRet  string
	AdviceErr  error
	AuthGate   chan struct{}

	Calls []string
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Signup(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	f.record("signup")
	if f.AuthGate != nil {
		<-f.AuthGate
	}
	return f.AuthRet, f.AuthErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	f.record("login")
	if f.AuthGate != nil {
		<-f.AuthGate
	}
	return f.AuthRet, f.AuthErr
}

func (f *fakeClient) Me(ctx context.Context, token string) (models.User, error) {
	f.record("me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, token string, draft models.ProfileDraft) (models.User, error) {
	f.record("update_profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.Task, len(f.Tasks))
	copy(out, f.Tasks)
	return out, nil
}

func (f *fakeClient) GenerateTasks(ctx context.Context, token string) error {
	f.record("generate")
	if f.GenGate != nil {
		<-f.GenGate
	}
	return f.GenErr
}

func (f *fakeClient) SetTaskCompleted(ctx context.Context, token string, id int64, completed bool) error {
	f.record("set")
	return f.SetErr
}

func (f *fakeClient) Upgrade(ctx context.Context, token string) (models.User, error) {
	f.record("upgrade")
	return f.UpgradeRet, f.UpgradeErr
}

func (f *fakeClient) Advice(ctx context.Context, token string) (string, error) {
	f.record("advice")
	return f.AdviceRet, f.AdviceErr
}

// memTokens is an in-memory session.TokenStore.
type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", session.ErrNoSession
	}
	return m.token, nil
}

func (m *memTokens) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

type harness struct {
	api    *fakeClient
	tokens *memTokens
	state  *state.Store
	d      *Dispatcher
}

func newHarness(api *fakeClient) *harness {
	st := state.New()
	views := view.NewController(nil)
	tokens := &memTokens{}
	syn := tasks.NewSynchronizer(st, api, nil)
	sess := session.NewStore(st, tokens, api, syn, views, nil)
	return &harness{
		api:    api,
		tokens: tokens,
		state:  st,
		d: NewDispatcher(Deps{
			API:     api,
			State:   st,
			Session: sess,
			Tasks:   syn,
			Views:   views,
		}),
	}
}

func completeUser() models.User {
	return models.User{ID: 1, Email: "a@x.com", Role: models.StringPtr("student"), Subject: models.StringPtr("math")}
}

func incompleteUser() models.User {
	return models.User{ID: 1, Email: "a@x.com"}
}
