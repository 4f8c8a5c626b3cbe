package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed tuning.schema.json
var tuningSchema string

// ErrInvalidTuning is wrapped by every validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay and presentation constant.
type Tuning struct {
	Physics Physics `yaml:"physics"`
	Hen     Hen     `yaml:"hen"`
	Basket  Basket  `yaml:"basket"`
	Eggs    Eggs    `yaml:"eggs"`
	Camera  Camera  `yaml:"camera"`
	Display Display `yaml:"display"`
}

type Physics struct {
	Gravity  float64 `yaml:"gravity"`   // Vertical acceleration, negative is down
	MaxDelta float64 `yaml:"max_delta"` // Upper bound for a single frame step (seconds)
}

type Hen struct {
	Position     mgl64.Vec3 `yaml:"position"`
	BobAmplitude float64    `yaml:"bob_amplitude"`
	BobFrequency float64    `yaml:"bob_frequency"` // Radians per second
}

type Basket struct {
	Speed             float64 `yaml:"speed"`        // Units per second per axis
	CatchRadius       float64 `yaml:"catch_radius"` // Half-width of the catch box on x and z
	CatchHeight       float64 `yaml:"catch_height"` // Catch band centre above the basket origin
	CatchBand         float64 `yaml:"catch_band"`   // Half-height of the catch band
	Bounds            float64 `yaml:"bounds"`       // Half-extent of allowed x/z movement, 0 = unbounded
	NormalizeDiagonal bool    `yaml:"normalize_diagonal"`
}

type Eggs struct {
	SpawnOffset mgl64.Vec3 `yaml:"spawn_offset"` // Relative to the hen's world position
	Spin        mgl64.Vec3 `yaml:"spin"`         // Cosmetic rotation rate per axis (rad/s)
	Floor       float64    `yaml:"floor"`        // Eggs below this height are missed
	MaxLive     int        `yaml:"max_live"`     // Live egg cap, 0 = unbounded
	Radius      float64    `yaml:"radius"`
}

type Camera struct {
	Position mgl64.Vec3 `yaml:"position"`
	Target   mgl64.Vec3 `yaml:"target"`
	FOV      float64    `yaml:"fov"` // Vertical field of view in degrees
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
}

type Display struct {
	FPS       int `yaml:"fps"`
	KeyHoldMs int `yaml:"key_hold_ms"` // How long a terminal key stays held after its last repeat
}

// FrameTime is the target duration of one rendered frame.
func (d Display) FrameTime() time.Duration {
	if d.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(d.FPS)
}

// KeyHold is KeyHoldMs as a duration.
func (d Display) KeyHold() time.Duration {
	return time.Duration(d.KeyHoldMs) * time.Millisecond
}

// Default returns the built-in tuning.
func Default() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultsYAML, &t); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return t
}

// Load reads a tuning file. Keys missing from the file keep their defaults.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	return Parse(raw)
}

// Parse decodes a tuning document on top of the defaults, checks it against
// the tuning schema and then validates the merged result.
func Parse(raw []byte) (Tuning, error) {
	if err := validateSchema(raw); err != nil {
		return Tuning{}, err
	}

	t := Default()
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate checks invariants the schema cannot express on its own.
func (t Tuning) Validate() error {
	switch {
	case t.Physics.Gravity >= 0:
		return fmt.Errorf("%w: physics.gravity must be negative, got %v", ErrInvalidTuning, t.Physics.Gravity)
	case t.Physics.MaxDelta <= 0:
		return fmt.Errorf("%w: physics.max_delta must be positive", ErrInvalidTuning)
	case t.Basket.CatchRadius <= 0 || t.Basket.CatchBand <= 0:
		return fmt.Errorf("%w: basket catch volume must have positive size", ErrInvalidTuning)
	case t.Basket.Bounds < 0:
		return fmt.Errorf("%w: basket.bounds must not be negative", ErrInvalidTuning)
	case t.Eggs.MaxLive < 0:
		return fmt.Errorf("%w: eggs.max_live must not be negative", ErrInvalidTuning)
	case t.Eggs.Radius <= 0:
		return fmt.Errorf("%w: eggs.radius must be positive", ErrInvalidTuning)
	case t.Camera.Near <= 0 || t.Camera.Far <= t.Camera.Near:
		return fmt.Errorf("%w: camera clip planes must satisfy 0 < near < far", ErrInvalidTuning)
	case t.Display.FPS < 1 || t.Display.FPS > 240:
		return fmt.Errorf("%w: display.fps must be within [1, 240]", ErrInvalidTuning)
	case t.Display.KeyHoldMs < 1:
		return fmt.Errorf("%w: display.key_hold_ms must be positive", ErrInvalidTuning)
	}
	return nil
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("tuning.schema.json", tuningSchema)
})

// validateSchema runs the raw YAML document through the JSON schema. The
// document is round-tripped through encoding/json so the validator sees
// plain JSON values.
func validateSchema(raw []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("tuning schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(encoded, &v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	return nil
}
