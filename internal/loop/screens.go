package loop

import (
	"fmt"
	"time"
)

// drawUI draws the text overlay for the current screen.
func (rn *runner) drawUI(now time.Time) {
	termWidth := rn.canvas.TerminalWidth()
	termHeight := rn.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if rn.screen == ScreenShutdown {
		rn.drawShutdownScreen(centerX, centerY)
		return
	}

	if rn.inactive {
		rn.drawInactivityScreen(centerX, centerY, now)
		return
	}

	switch rn.screen {
	case ScreenStart:
		rn.drawStartScreen(centerX, centerY, now)
	case ScreenPlaying:
		rn.drawPlayingHUD(termWidth, termHeight)
	}
}

var titleArt = []string{
	`  ___ ___  ___    ___   _ _____ ___ _  _ `,
	` | __/ __|/ __|  / __| /_\_   _/ __| || |`,
	` | _| (_ | (_ | | (__ / _ \| || (__| __ |`,
	` |___\___|\___|  \___/_/ \_\_| \___|_||_|`,
}

var controlLines = []string{
	"A D / < >  . . . Left / right",
	"W S / ^ v  . . . Back / front",
	"SPACE / click  .  Drop an egg",
	"ESC  . . . . . . . . . . Menu",
	"Q  . . . . . . . . . . . Quit",
}

// drawStartScreen draws the title screen over the idle scene.
func (rn *runner) drawStartScreen(centerX, centerY int, now time.Time) {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	out := rn.out
	titleStartY := centerY - 7
	for i, line := range titleArt {
		out.WriteStyledAt(centerX-titleWidth/2, titleStartY+i, "1;33", line)
	}

	subtitle := "~ catch what the hen drops ~"
	out.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	for i, line := range controlLines {
		out.WriteAt(centerX-len(line)/2, controlsY+i, line)
	}

	// Blinking start prompt
	if now.UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		out.WriteStyledAt(centerX-len(prompt)/2, controlsY+len(controlLines)+1, "1", prompt)
	}
}

// drawPlayingHUD draws the score and egg counters.
func (rn *runner) drawPlayingHUD(termWidth, termHeight int) {
	out := rn.out
	out.WriteStyledAt(2, 1, "1", rn.score.String())

	counters := fmt.Sprintf("Eggs: %d  Missed: %d", len(rn.game.Eggs), rn.game.Missed)
	out.WriteAt(termWidth-len(counters)-1, 1, counters)

	hint := "SPACE drop  ESC menu  Q quit"
	if len(hint)+2 < termWidth {
		out.WriteAt(2, termHeight, hint)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (rn *runner) drawInactivityScreen(centerX, centerY int, now time.Time) {
	out := rn.out
	title := "INACTIVITY WARNING"
	out.WriteStyledAt(centerX-len(title)/2, centerY-2, "1;33", title)

	left := InactivityDisconnect - now.Sub(rn.lastInput)
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(left.Seconds()),
	)
	out.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	out.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (rn *runner) drawShutdownScreen(centerX, centerY int) {
	out := rn.out
	title := "SERVER SHUTTING DOWN"
	out.WriteStyledAt(centerX-len(title)/2, centerY-3, "1;31", title)

	final := "Final " + rn.score.String()
	out.WriteAt(centerX-len(final)/2, centerY-1, final)

	msg := "Please reconnect in a moment."
	out.WriteAt(centerX-len(msg)/2, centerY, msg)

	remaining := int(rn.shutdownLeft.Seconds()) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	out.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	out.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
