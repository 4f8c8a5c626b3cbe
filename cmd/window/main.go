package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/draw"
	"github.com/tomz197/eggcatch/internal/game"
	"github.com/tomz197/eggcatch/internal/input"
	"github.com/tomz197/eggcatch/internal/logging"
	"github.com/tomz197/eggcatch/internal/loop"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// keyMap lists the ebiten keys behind every logical key.
var keyMap = []struct {
	key  ebiten.Key
	game input.Key
}{
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeySpace, input.KeySpace},
}

// Game adapts game.Game to ebiten's Update/Draw/Layout cycle.
type Game struct {
	game     *game.Game
	score    *game.ScoreLabel
	camera   *draw.Camera
	renderer *draw.Renderer
	surface  surface
	clock    loop.FrameClock
	cursorX  int
	cursorY  int
}

func main() {
	logger := logging.New(os.Stderr, config.GetEnv("LOG_LEVEL", "info"))

	tuning, err := config.FromEnv()
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Egg Catch")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tuning.Display.FPS)

	score := &game.ScoreLabel{}
	g := &Game{
		game:     game.New(tuning, game.WithLogger(logger), game.WithDisplay(score)),
		score:    score,
		camera:   draw.NewCamera(tuning.Camera),
		renderer: draw.NewRenderer(),
	}

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game error", "err", err)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, ev := range g.events() {
		g.game.HandleEvent(ev)
	}
	g.game.Update(g.clock.Tick(time.Now()))
	return nil
}

// events turns this tick's ebiten input edges into game events.
func (g *Game) events() []input.Event {
	var events []input.Event
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			events = append(events, input.Event{Type: input.EventKeyDown, Key: m.game})
		}
		if inpututil.IsKeyJustReleased(m.key) && !g.otherHeld(m.key, m.game) {
			events = append(events, input.Event{Type: input.EventKeyUp, Key: m.game})
		}
	}

	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		events = append(events, input.Event{Type: input.EventPointerMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events = append(events, input.Event{Type: input.EventClick, X: x, Y: y})
	}
	return events
}

// otherHeld reports whether another physical key for the same logical key
// is still down, so releasing A while holding Left keeps moving.
func (g *Game) otherHeld(released ebiten.Key, k input.Key) bool {
	for _, m := range keyMap {
		if m.game == k && m.key != released && ebiten.IsKeyPressed(m.key) {
			return true
		}
	}
	return false
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.img = screen
	g.renderer.Render(&g.surface, g.camera, g.game.World.Scene)

	ebitenutil.DebugPrintAt(screen, g.score.String(), 12, 10)
	ebitenutil.DebugPrintAt(screen, "Arrows/WASD move  SPACE or click drop  Q quit", 12, screen.Bounds().Dy()-24)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.game.SetViewWidth(outsideWidth)
	if w, h := g.camera.Size(); w != outsideWidth || h != outsideHeight {
		g.camera.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
