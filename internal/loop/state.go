package loop

import "time"

// Screen is the phase the terminal front end is in.
type Screen int

const (
	ScreenStart    Screen = iota // Title screen
	ScreenPlaying                // Active gameplay
	ScreenShutdown               // Server is shutting down
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// FrameClock measures the wall time between frames.
type FrameClock struct {
	last time.Time
}

// Tick returns the seconds since the previous Tick. The first tick
// returns 0, as does a clock that went backwards.
func (c *FrameClock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return max(dt, 0)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = min(termHeight, MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
