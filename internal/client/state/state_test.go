package state

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartsOnAuth(t *testing.T) {
	s := New().Snapshot()
	assert.Equal(t, models.ViewAuth, s.View)
	assert.False(t, s.Session.Authenticated())
	assert.False(t, s.Busy())
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := New()
	s.Update(func(st *State) {
		st.Session = models.Session{Token: "t", User: &models.User{Email: "a@x.com", Role: models.StringPtr("student")}}
		st.Tasks = []models.Task{{ID: 1, Title: "a"}}
	})

	snap := s.Snapshot()
	snap.Tasks[0].Title = "changed"
	*snap.Session.User.Role = "other"
	snap.Loading[OpAuth] = true

	again := s.Snapshot()
	assert.Equal(t, "a", again.Tasks[0].Title)
	assert.Equal(t, "student", *again.Session.User.Role)
	assert.False(t, again.Loading[OpAuth])
}

func TestAcquireRelease(t *testing.T) {
	s := New()

	require.True(t, s.Acquire(OpAuth))
	assert.False(t, s.Acquire(OpAuth))
	assert.True(t, s.Acquire(OpProfile), "flags are per operation")
	assert.True(t, s.Snapshot().Busy())

	s.Release(OpAuth)
	assert.True(t, s.Acquire(OpAuth))
}

func TestAcquire_ConcurrentSingleWinner(t *testing.T) {
	s := New()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Acquire(OpGenerate) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestUpdateIf_DropsStaleEpoch(t *testing.T) {
	s := New()
	_, epoch := s.Token()

	s.Update(func(st *State) { st.Epoch++ })

	applied := s.UpdateIf(epoch, func(st *State) { st.Advice = "late" })
	assert.False(t, applied)
	assert.Empty(t, s.Snapshot().Advice)

	_, epoch = s.Token()
	assert.True(t, s.UpdateIf(epoch, func(st *State) { st.Advice = "fresh" }))
	assert.Equal(t, "fresh", s.Snapshot().Advice)
}

func TestZeroStore_AcquireAndRelease(t *testing.T) {
	var s Store

	require.True(t, s.Acquire(OpGenerate))
	assert.False(t, s.Acquire(OpGenerate))
	assert.True(t, s.Snapshot().Busy())

	s.Release(OpGenerate)
	assert.False(t, s.Snapshot().Busy())
}
