package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/client/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	loadErr error
	saveErr error
	saved   []string
	clears  int
}

func (f *fakeTokens) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return "", f.loadErr
	}
	if f.token == "" {
		return "", ErrNoSession
	}
	return f.token, nil
}

func (f *fakeTokens) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, token)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	return nil
}

func (f *fakeTokens) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.token = ""
	return nil
}

type fakeAPI struct {
	mu     sync.Mutex
	user   models.User
	err    error
	calls  int
	tokens []string
	gate   chan struct{}
}

func (f *fakeAPI) Me(ctx context.Context, token string) (models.User, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.tokens = append(f.tokens, token)
	return f.user, f.err
}

type fakeTasks struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeTasks) Fetch(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

type fixture struct {
	state  *state.Store
	tokens *fakeTokens
	api    *fakeAPI
	tasks  *fakeTasks
	store  *Store
}

func newFixture() *fixture {
	f := &fixture{
		state:  state.New(),
		tokens: &fakeTokens{},
		api:    &fakeAPI{},
		tasks:  &fakeTasks{},
	}
	f.store = NewStore(f.state, f.tokens, f.api, f.tasks, view.NewController(nil), nil)
	return f
}

func completeUser() models.User {
	return models.User{ID: 1, Email: "a@x.com", Role: models.StringPtr("student"), Subject: models.StringPtr("math")}
}

func TestRestore_NoRecordMakesNoCalls(t *testing.T) {
	f := newFixture()

	f.store.Restore(context.Background())

	snap := f.state.Snapshot()
	assert.Equal(t, models.ViewAuth, snap.View)
	assert.False(t, snap.Session.Authenticated())
	assert.Equal(t, 0, f.api.calls)
	assert.Equal(t, 0, f.tasks.calls)
}

func TestRestore_MalformedRecordMakesNoCalls(t *testing.T) {
	f := newFixture()
	f.tokens.loadErr = errors.Join(ErrNoSession, errors.New("malformed record"))

	f.store.Restore(context.Background())

	assert.Equal(t, models.ViewAuth, f.state.Snapshot().View)
	assert.Equal(t, 0, f.api.calls)
	assert.Equal(t, 0, f.tasks.calls)
	assert.Equal(t, 0, f.tokens.clears)
}

func TestRestore_ExpiredTokenIsCleared(t *testing.T) {
	f := newFixture()
	f.tokens.loadErr = ErrTokenExpired

	f.store.Restore(context.Background())

	assert.Equal(t, 1, f.tokens.clears)
	assert.Equal(t, 0, f.api.calls)
}

func TestRestore_CompleteUserGoesToDashboard(t *testing.T) {
	f := newFixture()
	f.tokens.token = "tok"
	f.api.user = completeUser()

	f.store.Restore(context.Background())

	snap := f.state.Snapshot()
	assert.Equal(t, models.ViewDashboard, snap.View)
	assert.Equal(t, "tok", snap.Session.Token)
	require.NotNil(t, snap.Session.User)
	assert.Equal(t, "a@x.com", snap.Session.User.Email)
	assert.Equal(t, []string{"tok"}, f.api.tokens)
	assert.Equal(t, 1, f.tasks.calls)
}

func TestRestore_IncompleteUserStaysOnAuth(t *testing.T) {
	f := newFixture()
	f.tokens.token = "tok"
	f.api.user = models.User{ID: 1, Email: "a@x.com"}

	f.store.Restore(context.Background())

	snap := f.state.Snapshot()
	assert.Equal(t, models.ViewAuth, snap.View)
	assert.Equal(t, "tok", snap.Session.Token)
	require.NotNil(t, snap.Session.User)
}

func TestRestore_FetchFailuresAreSilent(t *testing.T) {
	f := newFixture()
	f.tokens.token = "tok"
	f.api.err = errors.New("unavailable")
	f.tasks.err = errors.New("unavailable")

	f.store.Restore(context.Background())

	snap := f.state.Snapshot()
	assert.Equal(t, models.ViewAuth, snap.View)
	assert.Equal(t, "tok", snap.Session.Token, "token without user is a valid state")
	assert.Nil(t, snap.Session.User)
	assert.Empty(t, snap.Error)
}

func TestCommit_AlwaysOnboardsAndPersists(t *testing.T) {
	f := newFixture()
	f.state.Update(func(st *state.State) {
		st.Credentials = models.Credentials{Email: "a@x.com", Password: "pw"}
	})

	f.store.Commit(context.Background(), "tok", completeUser())

	snap := f.state.Snapshot()
	assert.Equal(t, models.ViewOnboarding, snap.View)
	assert.Equal(t, "tok", snap.Session.Token)
	assert.Empty(t, snap.Credentials)
	assert.Equal(t, []string{"tok"}, f.tokens.saved)
}

func TestCommit_PersistFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.tokens.saveErr = errors.New("read-only")

	f.store.Commit(context.Background(), "tok", models.User{ID: 1})

	snap := f.state.Snapshot()
	assert.Equal(t, models.ViewOnboarding, snap.View)
	assert.Equal(t, "tok", snap.Session.Token)
	assert.Empty(t, snap.Error)
}

func TestFetchUser_NoToken(t *testing.T) {
	f := newFixture()
	f.store.FetchUser(context.Background())
	assert.Equal(t, 0, f.api.calls)
}

func TestFetchUser_LateResultAfterLogoutIsDropped(t *testing.T) {
	f := newFixture()
	f.api.user = completeUser()
	f.api.gate = make(chan struct{})
	f.store.Commit(context.Background(), "tok", models.User{ID: 1})

	done := make(chan struct{})
	go func() {
		f.store.FetchUser(context.Background())
		close(done)
	}()

	f.store.Logout(context.Background())
	close(f.api.gate)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("FetchUser did not return")
	}

	snap := f.state.Snapshot()
	assert.Equal(t, models.ViewAuth, snap.View)
	assert.Nil(t, snap.Session.User)
	assert.False(t, snap.Session.Authenticated())
}

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	f := newFixture()
	f.store.Commit(context.Background(), "tok", completeUser())
	f.state.Update(func(st *state.State) {
		st.View = models.ViewDashboard
		st.Tasks = []models.Task{{ID: 1}}
		st.Advice = "x"
		st.Error = "y"
	})

	f.store.Logout(context.Background())
	once := f.state.Snapshot()

	f.store.Logout(context.Background())
	twice := f.state.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, models.ViewAuth, twice.View)
	assert.False(t, twice.Session.Authenticated())
	assert.Nil(t, twice.Session.User)
	assert.Empty(t, twice.Tasks)
	assert.Empty(t, twice.Advice)
	assert.Empty(t, twice.Error)
	assert.Equal(t, 0, f.api.calls)

	_, err := f.tokens.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}
