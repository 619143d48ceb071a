package cli

import (
	"bufio"
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/config"
	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/logging"
	srvconfig "github.com/dmitrijs2005/decipline/internal/server/config"
	"github.com/dmitrijs2005/decipline/internal/server/httpapi"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/decipline/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()
	cfg := &srvconfig.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.Deps{
		Users:  services.NewUserService(rm, cfg),
		Tasks:  services.NewTaskService(rm),
		Advice: services.NewAdviceService(rm, 0, time.Hour),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runApp(t *testing.T, cfg *config.Config, script string) (*App, *bytes.Buffer) {
	t.Helper()
	a, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a.reader = bufio.NewReader(strings.NewReader(script))
	a.out = out

	require.NoError(t, a.Run(context.Background()))
	return a, out
}

// Two runs against one backend and one state file: the second picks up the
// session the first one persisted.
func TestApp_JourneyAcrossRestarts(t *testing.T) {
	captureOutput(t)
	stubPassword(t, "secret1")

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = newBackend(t).URL
	cfg.StateDBPath = filepath.Join(t.TempDir(), "state", "decipline.db")

	first, out := runApp(t, cfg, "signup\nAnn\nann@example.com\nprofile\nstudent\nGo\n\nexit\n")
	st := first.store.Snapshot()
	assert.Equal(t, models.ViewDashboard, st.View)
	require.Len(t, st.Tasks, 3)
	assert.Contains(t, out.String(), "Tell us about your learning")

	second, out := runApp(t, cfg, "done 1\nadvice\nexit\n")
	st = second.store.Snapshot()
	assert.Equal(t, models.ViewDashboard, st.View)
	require.NotNil(t, st.Session.User)
	assert.Equal(t, "ann@example.com", st.Session.User.Email)
	assert.True(t, st.Tasks[0].Completed)
	assert.Contains(t, st.Advice, "You have completed 1 of 3 tasks.")
	assert.Contains(t, out.String(), "#1 [x]")

	third, _ := runApp(t, cfg, "logout\nexit\n")
	assert.Equal(t, models.ViewAuth, third.store.Snapshot().View)

	fourth, _ := runApp(t, cfg, "exit\n")
	assert.Equal(t, models.ViewAuth, fourth.store.Snapshot().View)
	assert.False(t, fourth.store.Snapshot().Session.Authenticated())
}
