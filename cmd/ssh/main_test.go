package main

import (
	"net"
	"testing"

	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/eggcatch/internal/session"
)

func TestFollowWindow(t *testing.T) {
	h := session.NewManager(nil).Register("alice")
	h.Resize(80, 24)

	windows := make(chan ssh.Window, 2)
	windows <- ssh.Window{Width: 100, Height: 30}
	windows <- ssh.Window{Width: 120, Height: 40}
	close(windows)
	followWindow(h, windows)

	w, ht, err := h.TermSize()
	require.NoError(t, err)
	assert.Equal(t, []int{120, 40}, []int{w, ht})
}

func TestNoDelayPassesConnThrough(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	assert.Same(t, a, noDelay(nil, a), "non-TCP connections are returned untouched")
}
