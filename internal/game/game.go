// Package game holds the egg-catch state and the per-frame update step.
//
// A Game owns everything that changes while playing: the live eggs, the
// score, the held movement keys. It touches the visuals only through the
// scene capability interfaces, so it runs the same under the terminal
// canvas, the desktop window or a test with no renderer at all.
package game

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/input"
	"github.com/tomz197/eggcatch/internal/logging"
	"github.com/tomz197/eggcatch/internal/object"
	"github.com/tomz197/eggcatch/internal/physics"
	"github.com/tomz197/eggcatch/internal/scene"
)

// ErrEggLimit is returned by SpawnEgg when the live egg cap is reached.
var ErrEggLimit = errors.New("game: live egg limit reached")

// Controls is the held-key state fed by HandleEvent.
type Controls struct {
	Left, Right   bool
	Forward, Back bool
	PointerX      float64 // Last pointer x in [-1, 1]; tracked, not used by the update
}

// ScoreDisplay receives the score every time it changes.
type ScoreDisplay interface {
	SetScore(score int)
}

// ScoreLabel is a ScoreDisplay that keeps the rendered text.
type ScoreLabel struct {
	text string
}

// SetScore implements ScoreDisplay.
func (l *ScoreLabel) SetScore(score int) { l.text = ScoreText(score) }

func (l *ScoreLabel) String() string {
	if l.text == "" {
		return ScoreText(0)
	}
	return l.text
}

// ScoreText formats a score the way every display shows it.
func ScoreText(score int) string {
	return "Score: " + strconv.Itoa(score)
}

// Frame summarises one Update call.
type Frame struct {
	Delta  float64 // The clamped step actually simulated
	Caught int
	Missed int
}

// Game is the complete mutable game state.
type Game struct {
	Tuning   config.Tuning
	World    *scene.World
	Hen      *object.Hen
	Basket   *object.Basket
	Eggs     []*object.Egg // Live eggs in spawn order
	Score    int
	Missed   int
	Controls Controls
	Elapsed  float64 // Simulated seconds, sum of clamped deltas
	Clock    float64 // Wall seconds, sum of unclamped deltas; times the hen's bob
	Display  ScoreDisplay
	Logger   *log.Logger

	root      scene.Root
	newEgg    func() scene.Node
	viewWidth int // Pointer normalisation width, in the host's pointer units
	nextID    int
}

// Option customises a Game at construction.
type Option func(*Game)

// WithLogger sets the logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.Logger = l }
}

// WithDisplay sets the score display.
func WithDisplay(d ScoreDisplay) Option {
	return func(g *Game) { g.Display = d }
}

// WithRoot attaches eggs to root instead of the world's scene.
func WithRoot(root scene.Root) Option {
	return func(g *Game) { g.root = root }
}

// WithEggNodes replaces the egg visual factory.
func WithEggNodes(newNode func() scene.Node) Option {
	return func(g *Game) { g.newEgg = newNode }
}

// New builds the world for t and returns a game ready to update.
func New(t config.Tuning, opts ...Option) *Game {
	world := scene.Build(t)
	g := &Game{
		Tuning:  t,
		World:   world,
		Hen:     object.NewHen(world.Hen, t.Hen.BobAmplitude, t.Hen.BobFrequency),
		Basket:  object.NewBasket(world.Basket, t.Basket.CatchHeight, t.Basket.CatchRadius, t.Basket.CatchBand),
		Display: &ScoreLabel{},
		Logger:  logging.Discard(),
		root:    world.Scene,
		newEgg:  func() scene.Node { return scene.NewEggMesh(t.Eggs.Radius) },
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Display.SetScore(0)
	return g
}

// SetViewWidth sets the width pointer positions are normalised against.
func (g *Game) SetViewWidth(width int) {
	g.viewWidth = width
}

// HandleEvent applies one input event. Movement keys set or clear their
// flag; a space press or a click drops an egg.
func (g *Game) HandleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventKeyDown, input.EventKeyUp:
		down := ev.Type == input.EventKeyDown
		switch ev.Key {
		case input.KeyLeft:
			g.Controls.Left = down
		case input.KeyRight:
			g.Controls.Right = down
		case input.KeyUp:
			g.Controls.Forward = down
		case input.KeyDown:
			g.Controls.Back = down
		case input.KeySpace:
			if down {
				g.trySpawn()
			}
		}
	case input.EventClick:
		g.trySpawn()
	case input.EventPointerMove:
		if g.viewWidth > 0 {
			g.Controls.PointerX = physics.Clamp(float64(ev.X)/float64(g.viewWidth)*2-1, -1, 1)
		}
	}
}

func (g *Game) trySpawn() {
	if _, err := g.SpawnEgg(); err != nil {
		g.Logger.Warn("egg spawn rejected", "err", err, "live", len(g.Eggs))
	}
}

// SpawnEgg drops a new egg at rest from the hen's current position.
func (g *Game) SpawnEgg() (*object.Egg, error) {
	if limit := g.Tuning.Eggs.MaxLive; limit > 0 && len(g.Eggs) >= limit {
		return nil, ErrEggLimit
	}

	node := g.newEgg()
	g.nextID++
	egg := object.NewEgg(g.nextID, node, g.Hen.DropPoint(g.Tuning.Eggs.SpawnOffset), g.Tuning.Eggs.Spin)
	if err := g.root.Add(node); err != nil {
		return nil, err
	}
	g.Eggs = append(g.Eggs, egg)

	g.Logger.Debug("egg spawned", "id", egg.ID, "pos", egg.Position(), "live", len(g.Eggs))
	return egg, nil
}

// Update advances the game by dt seconds. dt is clamped to the tuned
// maximum first, so a stalled frame never produces a large step.
func (g *Game) Update(dt float64) Frame {
	g.Clock += max(dt, 0)
	dt = physics.ClampDelta(dt, g.Tuning.Physics.MaxDelta)
	g.Elapsed += dt
	frame := Frame{Delta: dt}

	g.Hen.Bob(g.Clock)
	g.moveBasket(dt)

	catch := g.Basket.CatchVolume()
	floor := g.Tuning.Eggs.Floor

	// Reverse order keeps the remaining indices valid across removals.
	for i := len(g.Eggs) - 1; i >= 0; i-- {
		egg := g.Eggs[i]
		egg.Integrate(g.Tuning.Physics.Gravity, dt)
		pos := egg.Position()

		if catch.Contains(pos) {
			egg.MarkCaught()
			g.removeEgg(i)
			g.Score++
			g.Display.SetScore(g.Score)
			frame.Caught++
			g.Logger.Debug("egg caught", "id", egg.ID, "score", g.Score)
			continue
		}

		if pos.Y() < floor {
			egg.MarkMissed()
			g.removeEgg(i)
			g.Missed++
			frame.Missed++
			g.Logger.Debug("egg missed", "id", egg.ID, "missed", g.Missed)
		}
	}

	return frame
}

func (g *Game) moveBasket(dt float64) {
	var dirX, dirZ float64
	if g.Controls.Left {
		dirX--
	}
	if g.Controls.Right {
		dirX++
	}
	if g.Controls.Forward {
		dirZ--
	}
	if g.Controls.Back {
		dirZ++
	}
	b := g.Tuning.Basket
	g.Basket.Move(dirX, dirZ, b.Speed*dt, b.Bounds, b.NormalizeDiagonal)
}

// removeEgg drops the egg at i from the live list and its node from the
// scene together, so neither outlives the other.
func (g *Game) removeEgg(i int) {
	egg := g.Eggs[i]
	if err := g.root.Remove(egg.Node()); err != nil {
		g.Logger.Error("egg node already detached", "id", egg.ID, "err", err)
	}
	g.Eggs = append(g.Eggs[:i], g.Eggs[i+1:]...)
}

// Reset removes every live egg and zeroes the score, the miss count and
// the held keys. The basket returns to the origin.
func (g *Game) Reset() {
	for i := len(g.Eggs) - 1; i >= 0; i-- {
		g.removeEgg(i)
	}
	g.Score = 0
	g.Missed = 0
	g.Elapsed = 0
	g.Clock = 0
	g.Controls = Controls{}
	g.Basket.Node().SetPosition(mgl64.Vec3{})
	g.Display.SetScore(0)
}
