package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUnregister(t *testing.T) {
	m := NewManager(nil)

	a := m.Register("alice")
	b := m.Register("bob")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "bob", b.User)
	assert.Equal(t, 2, m.Count())

	m.Unregister(a.ID)
	m.Unregister(a.ID)
	m.Unregister(999)
	assert.Equal(t, 1, m.Count())
}

func TestShutdownWithoutSessions(t *testing.T) {
	m := NewManager(nil)
	assert.True(t, m.Shutdown(time.Second))
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	m := NewManager(nil)

	var wg sync.WaitGroup
	for _, user := range []string{"a", "b", "c"} {
		h := m.Register(user)
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := <-h.Notices
			assert.Equal(t, NoticeShutdown, n)
			m.Unregister(h.ID)
		}()
	}

	require.True(t, m.Shutdown(5*time.Second))
	wg.Wait()
	assert.Zero(t, m.Count())
}

func TestShutdownTimeout(t *testing.T) {
	m := NewManager(nil)
	h := m.Register("stuck")

	start := time.Now()
	assert.False(t, m.Shutdown(100*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, NoticeShutdown, <-h.Notices)
	assert.Equal(t, 1, m.Count())
}

func TestNoticeString(t *testing.T) {
	assert.Equal(t, "shutdown", NoticeShutdown.String())
	assert.Equal(t, "unknown", Notice(7).String())
}

func TestHandleTracksWindowSize(t *testing.T) {
	m := NewManager(nil)
	h := m.Register("alice")
	h.Resize(80, 24)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Resize(100+i, 30)
			_, _, _ = h.TermSize()
		}(i)
	}
	wg.Wait()

	h.Resize(120, 40)
	w, ht, err := h.TermSize()
	require.NoError(t, err)
	assert.Equal(t, []int{120, 40}, []int{w, ht})
}
