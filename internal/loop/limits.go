package loop

import "time"

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered play area so the per-frame output stays bounded over SSH.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Inactivity
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
)

// Shutdown
const (
	ShutdownDisplay = 10 * time.Second // How long the shutdown notice stays up before disconnecting
)
