// Package loop runs the egg-catch game in a terminal with the standard
// Input → Update → Draw cycle, one game update per frame.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/draw"
	"github.com/tomz197/eggcatch/internal/game"
	"github.com/tomz197/eggcatch/internal/input"
	"github.com/tomz197/eggcatch/internal/logging"
	"github.com/tomz197/eggcatch/internal/session"
)

// Options configures Run.
type Options struct {
	Tuning          config.Tuning
	TermSizeFunc    draw.TermSizeFunc     // Defaults to the size of os.Stdout
	Logger          *log.Logger           // Defaults to discarding
	Notices         <-chan session.Notice // Server notices; nil when running locally
	Inactivity      bool                  // Disconnect players idle past InactivityDisconnect
	ShutdownDisplay time.Duration         // Defaults to ShutdownDisplay
}

// runner is the state of one terminal front end. Everything here is only
// touched from the goroutine executing Run.
type runner struct {
	opts     Options
	logger   *log.Logger
	game     *game.Game
	score    *game.ScoreLabel
	camera   *draw.Camera
	renderer *draw.Renderer
	canvas   *draw.Canvas
	out      *draw.TextWriter
	writer   io.Writer
	stream   *input.Stream
	clock    FrameClock

	screen       Screen
	prevScreen   Screen
	running      bool
	lastInput    time.Time
	inactive     bool
	wasInactive  bool
	shutdownLeft time.Duration
}

// Run plays the game on a terminal: r delivers raw key and mouse bytes, w
// receives the frames. It returns when the player quits, the input ends,
// the context is cancelled or a server shutdown notice has been shown.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	rn := newRunner(r, w, opts)
	return rn.run(ctx)
}

func newRunner(r io.Reader, w io.Writer, opts Options) *runner {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.ShutdownDisplay <= 0 {
		opts.ShutdownDisplay = ShutdownDisplay
	}

	score := &game.ScoreLabel{}
	g := game.New(opts.Tuning, game.WithLogger(opts.Logger), game.WithDisplay(score))

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	g.SetViewWidth(canvas.TerminalWidth())

	return &runner{
		opts:       opts,
		logger:     opts.Logger,
		game:       g,
		score:      score,
		camera:     draw.NewCamera(opts.Tuning.Camera),
		renderer:   draw.NewRenderer(),
		canvas:     canvas,
		out:        draw.NewTextWriter(w, canvas),
		writer:     w,
		stream:     input.StartStream(r, opts.Tuning.Display.KeyHold()),
		screen:     ScreenStart,
		prevScreen: ScreenStart,
		running:    true,
		lastInput:  time.Now(),
	}
}

func (rn *runner) run(ctx context.Context) error {
	draw.HideCursor(rn.writer)
	input.EnableMouse(rn.writer)
	draw.ClearScreen(rn.writer)
	defer rn.stream.Stop()
	defer func() {
		input.DisableMouse(rn.writer)
		draw.ResetStyle(rn.writer)
		draw.ClearScreen(rn.writer)
		draw.ShowCursor(rn.writer)
	}()

	frameTime := rn.opts.Tuning.Display.FrameTime()
	for rn.running {
		frameStart := time.Now()
		dt := rn.clock.Tick(frameStart)

		// ===== INPUT PHASE =====
		rn.processNotices()
		rn.processInput(frameStart)
		if !rn.running {
			break
		}

		// ===== UPDATE PHASE =====
		rn.updateScreen()
		switch rn.screen {
		case ScreenPlaying:
			rn.game.Update(dt)
		case ScreenShutdown:
			rn.shutdownLeft -= time.Duration(dt * float64(time.Second))
			if rn.shutdownLeft <= 0 {
				rn.running = false
			}
		}

		// ===== DRAW PHASE =====
		if err := rn.drawFrame(frameStart); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		wait := frameTime - time.Since(frameStart)
		select {
		case <-ctx.Done():
			rn.logger.Debug("frame loop cancelled", "err", ctx.Err())
			return nil
		case <-time.After(max(wait, 0)):
		}
	}
	return nil
}

// processNotices drains server notices without blocking.
func (rn *runner) processNotices() {
	for {
		select {
		case n, ok := <-rn.opts.Notices:
			if !ok {
				rn.running = false
				return
			}
			if n == session.NoticeShutdown && rn.screen != ScreenShutdown {
				rn.logger.Info("shutdown notice received", "score", rn.game.Score)
				rn.screen = ScreenShutdown
				rn.shutdownLeft = rn.opts.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// processInput polls the input stream and applies every event in order.
func (rn *runner) processInput(now time.Time) {
	events := rn.stream.Poll(now)

	if len(events) > 0 {
		rn.lastInput = now
		rn.inactive = false
	} else if rn.opts.Inactivity {
		idle := now.Sub(rn.lastInput)
		if idle > InactivityDisconnect {
			rn.logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
			rn.running = false
			return
		}
		rn.inactive = idle > InactivityWarn
	}

	for _, ev := range events {
		rn.handleEvent(ev)
		if !rn.running {
			return
		}
	}

	if rn.stream.Closed() {
		rn.running = false
	}
}

// handleEvent routes one event through the screen state machine.
func (rn *runner) handleEvent(ev input.Event) {
	if ev.Type == input.EventKeyDown && ev.Key == input.KeyQuit {
		rn.running = false
		return
	}

	switch rn.screen {
	case ScreenStart:
		start := ev.Type == input.EventClick ||
			ev.Type == input.EventKeyDown && (ev.Key == input.KeySpace || ev.Key == input.KeyEnter)
		if start {
			rn.startGame()
		}
	case ScreenPlaying:
		if ev.Type == input.EventKeyDown && ev.Key == input.KeyEscape {
			rn.logger.Debug("back to title", "score", rn.game.Score)
			rn.screen = ScreenStart
			return
		}
		if ev.Type == input.EventClick || ev.Type == input.EventPointerMove {
			// Terminal columns are 1-based and include the centring offset.
			ev.X -= rn.canvas.OffsetCol() + 1
		}
		rn.game.HandleEvent(ev)
	}
}

// startGame starts a fresh round.
func (rn *runner) startGame() {
	rn.stream.Reset()
	rn.game.Reset()
	rn.screen = ScreenPlaying
	rn.logger.Info("game started")
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (rn *runner) updateScreen() {
	termWidth, termHeight, err := rn.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != rn.canvas.TerminalWidth() || renderHeight != rn.canvas.TerminalHeight() ||
		offsetCol != rn.canvas.OffsetCol() || offsetRow != rn.canvas.OffsetRow() {
		rn.out.WriteString("\033[H\033[2J")
		rn.canvas.ForceRedraw()
		rn.logger.Debug("terminal resized", "width", termWidth, "height", termHeight)
	}

	rn.canvas.Resize(renderWidth, renderHeight)
	rn.canvas.SetOffset(offsetCol, offsetRow)
	rn.game.SetViewWidth(rn.canvas.TerminalWidth())
}

// drawFrame renders the scene and the overlay for the current screen.
func (rn *runner) drawFrame(now time.Time) error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if rn.screen != rn.prevScreen || rn.inactive != rn.wasInactive {
		rn.out.WriteString("\033[H\033[2J")
		rn.canvas.ForceRedraw()
		rn.prevScreen = rn.screen
		rn.wasInactive = rn.inactive
	}

	rn.renderer.Render(rn.canvas, rn.camera, rn.game.World.Scene)
	rn.canvas.Render(rn.out)
	rn.canvas.RenderBorder(rn.out)
	rn.drawUI(now)

	return rn.out.Flush()
}
