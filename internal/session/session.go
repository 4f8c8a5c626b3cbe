// Package session tracks the games running for connected SSH users so the
// server can tell them about a shutdown and wait for them to leave.
//
// Every session runs its own independent game; the manager only holds the
// handles used to reach them.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/eggcatch/internal/logging"
)

// Notice is a message from the server to a running session.
type Notice int

const (
	NoticeShutdown Notice = iota // Server is stopping; finish up and disconnect
)

func (n Notice) String() string {
	switch n {
	case NoticeShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Handle is one registered session.
type Handle struct {
	ID      int
	User    string
	Notices chan Notice // Buffered; the session drains it once per frame

	mu            sync.RWMutex
	width, height int
}

// Resize records the client's current window size.
func (h *Handle) Resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
}

// TermSize reports the last recorded window size. It has the shape of
// draw.TermSizeFunc so the game loop can poll it every frame.
func (h *Handle) TermSize() (width, height int, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.width, h.height, nil
}

// Manager is a registry of live sessions. It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int]*Handle
	nextID   int
	logger   *log.Logger
}

// NewManager creates an empty registry. A nil logger discards.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		sessions: make(map[int]*Handle),
		nextID:   1,
		logger:   logger,
	}
}

// Register adds a session for user and returns its handle.
func (m *Manager) Register(user string) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := &Handle{
		ID:      m.nextID,
		User:    user,
		Notices: make(chan Notice, 4),
	}
	m.nextID++
	m.sessions[h.ID] = h
	m.logger.Info("session registered", "id", h.ID, "user", user, "live", len(m.sessions))
	return h
}

// Unregister removes a session. Unknown ids are ignored.
func (m *Manager) Unregister(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return
	}
	delete(m.sessions, id)
	m.logger.Info("session unregistered", "id", id, "live", len(m.sessions))
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown notifies every session that the server is stopping and waits
// until all of them have unregistered or timeout lapses. It reports whether
// every session left in time.
func (m *Manager) Shutdown(timeout time.Duration) bool {
	m.mu.RLock()
	for _, h := range m.sessions {
		select {
		case h.Notices <- NoticeShutdown:
		default:
		}
	}
	m.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if m.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			m.logger.Warn("sessions still open after shutdown timeout", "live", m.Count())
			return false
		case <-ticker.C:
		}
	}
}
